package fetch

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/cloudchase/modelfetch/logger"
)

// DefaultChunkSize matches the block size most HTTP retrieval helpers report.
const DefaultChunkSize = 8192

// ErrBadStatus is returned when the server answers with a non-2xx status.
var ErrBadStatus = errors.New("unexpected HTTP status")

// Options configures a Downloader.
type Options struct {
	// Timeout bounds the whole request, body included. Zero means no timeout.
	Timeout   time.Duration
	UserAgent string
	ChunkSize int
}

// DefaultOptions returns options with no timeout and the default chunk size.
func DefaultOptions() Options {
	return Options{
		UserAgent: "modelfetch",
		ChunkSize: DefaultChunkSize,
	}
}

// Downloader fetches a single Target over HTTP(S) and streams it to disk.
type Downloader struct {
	client    *resty.Client
	chunkSize int
	logger    zerolog.Logger
}

// NewDownloader creates a Downloader. Redirects are followed by the
// underlying HTTP client.
func NewDownloader(opts Options, log *logger.Logger) *Downloader {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	l := log.WithComponent("fetch").Logger

	client := resty.New().SetLogger(restyLogger{l})
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		client.SetHeader("User-Agent", opts.UserAgent)
	}

	return &Downloader{
		client:    client,
		chunkSize: opts.ChunkSize,
		logger:    l,
	}
}

// Download fetches t.URL into t.Path, overwriting any existing file, and
// returns the size of the file on disk. onProgress may be nil.
func (d *Downloader) Download(ctx context.Context, t Target, onProgress ProgressFunc) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if err := EnsureDir(t.Path); err != nil {
		return 0, err
	}

	d.logger.Debug().Str("url", t.URL).Str("path", t.Path).Msg("Starting download")

	resp, err := d.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(t.URL)
	if err != nil {
		return 0, errors.Wrapf(err, "GET %s", t.URL)
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		d.logger.Debug().Int("status", resp.StatusCode()).Str("url", t.URL).Msg("Download rejected")
		return 0, errors.Wrapf(ErrBadStatus, "GET %s: %s", t.URL, resp.Status())
	}

	total := resp.RawResponse.ContentLength
	if total < 0 {
		total = 0
	}

	f, err := os.OpenFile(t.Path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return 0, errors.Wrap(err, "create file ["+t.Path+"] failed")
	}

	written, err := d.copy(f, body, total, onProgress)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return 0, errors.Wrap(err, "saving ["+t.Path+"] failed")
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return 0, errors.Wrap(err, "stat ["+t.Path+"] failed")
	}

	d.logger.Debug().
		Str("url", t.URL).
		Str("path", t.Path).
		Int64("bytes", written).
		Int64("size", info.Size()).
		Msg("Download finished")

	return info.Size(), nil
}

// copy streams src into dst one chunk at a time, reporting after each chunk.
func (d *Downloader) copy(dst io.Writer, src io.Reader, total int64, onProgress ProgressFunc) (int64, error) {
	report := func(Progress) {}
	if onProgress != nil {
		report = onProgress
	}

	buf := make([]byte, d.chunkSize)
	p := Progress{ChunkSize: d.chunkSize, Total: total}
	report(p)

	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return p.Downloaded, werr
			}
			p.Chunks++
			p.Downloaded += int64(n)
			report(p)
		}
		if rerr == io.EOF {
			return p.Downloaded, nil
		}
		if rerr != nil {
			return p.Downloaded, rerr
		}
	}
}

// restyLogger routes resty's internal messages through zerolog.
type restyLogger struct {
	l zerolog.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) { r.l.Error().Msgf(format, v...) }
func (r restyLogger) Warnf(format string, v ...interface{})  { r.l.Warn().Msgf(format, v...) }
func (r restyLogger) Debugf(format string, v ...interface{}) { r.l.Debug().Msgf(format, v...) }
