// Package console renders the fetch command's human-readable output: the
// banner, an in-place progress line (or bar), the success summary with next
// steps, and the error block with manual download instructions.
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	"github.com/cloudchase/modelfetch/fetch"
)

// Style selects how download progress is drawn.
type Style string

const (
	StyleText Style = "text"
	StyleBar  Style = "bar"
)

// ParseStyle converts a config or flag value to a Style.
func ParseStyle(s string) (Style, error) {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case "", StyleText:
		return StyleText, nil
	case StyleBar:
		return StyleBar, nil
	default:
		return "", errors.Errorf("unknown progress style %q (want %q or %q)", s, StyleText, StyleBar)
	}
}

const rule = "=================================================="

// DefaultTitle is printed between the banner rules.
const DefaultTitle = "FaceNet Model Download Script"

// DefaultNextSteps are printed after a successful download.
var DefaultNextSteps = []string{
	"Run: flutter pub get",
	"Delete all employees from the app",
	"Re-register employees with new model",
	"Test face recognition accuracy",
}

var (
	successColor = color.New(color.FgHiGreen).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
)

// Printer writes fetch output to a single writer, normally stdout.
type Printer struct {
	out       io.Writer
	style     Style
	bar       *progressbar.ProgressBar
	Title     string
	NextSteps []string
}

// New creates a Printer with the default title and next steps.
func New(out io.Writer, style Style) *Printer {
	return &Printer{
		out:       out,
		style:     style,
		Title:     DefaultTitle,
		NextSteps: DefaultNextSteps,
	}
}

// Banner prints the title block and the download target.
func (p *Printer) Banner(t fetch.Target) {
	fmt.Fprintln(p.out, rule)
	fmt.Fprintln(p.out, p.Title)
	fmt.Fprintln(p.out, rule)
	fmt.Fprintf(p.out, "\nDownloading from: %s\n", t.URL)
	fmt.Fprintf(p.out, "Destination: %s\n\n", t.Path)
}

// Progress draws the current transfer state. Its signature matches fetch.ProgressFunc.
func (p *Printer) Progress(pr fetch.Progress) {
	if p.style == StyleBar {
		p.drawBar(pr)
		return
	}
	fmt.Fprintf(p.out, "\rProgress: %.1f%% (%.1f/%.1f MB)", pr.Percent(), pr.DownloadedMB(), pr.TotalMB())
}

func (p *Printer) drawBar(pr fetch.Progress) {
	if p.bar == nil {
		total := pr.Total
		if total <= 0 {
			total = -1
		}
		p.bar = progressbar.NewOptions64(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription("Progress:"),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(30),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "=",
				SaucerHead:    ">",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		)
	}
	_ = p.bar.Set64(pr.Downloaded)
}

// Success prints the completion message and the final file size.
func (p *Printer) Success(size int64) {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
	fmt.Fprintf(p.out, "\n\n%s\n", successColor("✓ Model downloaded successfully!"))
	fmt.Fprintf(p.out, "  File size: %.2f MB\n", fetch.ToMB(size))
}

// PrintNextSteps prints the numbered follow-up instructions.
func (p *Printer) PrintNextSteps() {
	fmt.Fprintln(p.out, "\n"+rule)
	fmt.Fprintln(p.out, "Next Steps:")
	fmt.Fprintln(p.out, rule)
	for i, step := range p.NextSteps {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, step)
	}
	fmt.Fprintln(p.out)
}

// Failure prints the error and where to get the model by hand.
func (p *Printer) Failure(err error, t fetch.Target) {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
	fmt.Fprintf(p.out, "\n%s\n", errorColor(fmt.Sprintf("✗ Error: %v", err)))
	fmt.Fprintln(p.out, "\nAlternative: Download manually from:")
	fmt.Fprintln(p.out, t.FallbackURL)
	fmt.Fprintf(p.out, "Save as: %s\n\n", t.Path)
}
