package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cloudchase/modelfetch/console"
	"github.com/cloudchase/modelfetch/fetch"
)

type fetchOptions struct {
	url     string
	dest    string
	name    string
	style   string
	timeout time.Duration
	record  bool
}

func (o *fetchOptions) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.url, "url", fetch.DefaultURL, "URL to download the model from")
	fs.StringVar(&o.dest, "dest", fetch.DefaultPath, "file path to save the model to")
	fs.StringVar(&o.name, "name", "", "name to record the model under (default: file name without extension)")
	fs.StringVar(&o.style, "style", "text", "progress style: text or bar")
	fs.DurationVar(&o.timeout, "timeout", 0, "overall request timeout, 0 for none")
	fs.BoolVar(&o.record, "record", false, "record the downloaded model in the registry for list/info/rm")
}

func newFetchCmd(a *app) *cobra.Command {
	fo := &fetchOptions{}
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the model file",
		Long: `Download the model file once, showing progress. Failures are reported
together with a manual download link; the command still exits normally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runFetch(cmd, fo)
		},
	}
	fo.addFlags(fetchCmd.Flags())
	return fetchCmd
}

// applyFlags overrides configuration with flags set on the command line.
func (a *app) applyFlags(cmd *cobra.Command, o *fetchOptions) {
	flags := cmd.Flags()
	if flags.Changed("url") {
		a.cfg.Model.URL = o.url
	}
	if flags.Changed("dest") {
		a.cfg.Model.Path = o.dest
	}
	if flags.Changed("name") {
		a.cfg.Model.Name = o.name
	}
	if flags.Changed("style") {
		a.cfg.Progress.Style = o.style
	}
	if flags.Changed("timeout") {
		a.cfg.HTTP.Timeout = o.timeout
	}
	if flags.Changed("record") {
		a.cfg.Registry.Record = o.record
	}
}

func (a *app) runFetch(cmd *cobra.Command, o *fetchOptions) error {
	a.applyFlags(cmd, o)

	style, err := console.ParseStyle(a.cfg.Progress.Style)
	if err != nil {
		return err
	}

	target := a.cfg.Target()
	if target.FallbackURL == "" {
		target.FallbackURL = fetch.DefaultFallbackURL
	}

	out := console.New(cmd.OutOrStdout(), style)
	out.Banner(target)

	dl := fetch.NewDownloader(a.cfg.DownloadOptions(), a.log)
	size, err := dl.Download(cmd.Context(), target, out.Progress)
	if err != nil {
		a.log.Debug().Err(err).Str("url", target.URL).Str("path", target.Path).Msg("Download failed")
		out.Failure(err, target)
		return nil
	}

	out.Success(size)
	if a.cfg.Registry.Record {
		a.recordFetch(target)
	}
	out.PrintNextSteps()
	return nil
}

// recordFetch stores a manifest for the downloaded file. Failures are logged
// and never change the outcome of the fetch.
func (a *app) recordFetch(t fetch.Target) {
	mgr, err := a.manager()
	if err != nil {
		a.log.Warn().Err(err).Msg("Could not open model registry")
		return
	}
	m, err := mgr.RecordFetch(t.ModelName(), t.Path, t.URL)
	if err != nil {
		a.log.Warn().Err(err).Str("name", t.ModelName()).Msg("Could not record fetched model")
		return
	}
	a.log.Debug().Str("name", m.Name).Str("path", m.Path).Int64("size", m.Size).Msg("Recorded fetched model")
}
