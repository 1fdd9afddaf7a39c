package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudchase/modelfetch/fetch"
)

var facenet = fetch.Target{
	URL:         fetch.DefaultURL,
	Path:        fetch.DefaultPath,
	FallbackURL: fetch.DefaultFallbackURL,
}

func newTestPrinter(style Style) (*Printer, *bytes.Buffer) {
	color.NoColor = true
	var buf bytes.Buffer
	return New(&buf, style), &buf
}

func TestParseStyle(t *testing.T) {
	s, err := ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleText, s)

	s, err = ParseStyle(" BAR ")
	require.NoError(t, err)
	assert.Equal(t, StyleBar, s)

	_, err = ParseStyle("fancy")
	assert.Error(t, err)
}

func TestPrinter_Banner(t *testing.T) {
	p, buf := newTestPrinter(StyleText)
	p.Banner(facenet)

	want := rule + "\n" +
		"FaceNet Model Download Script\n" +
		rule + "\n" +
		"\nDownloading from: " + fetch.DefaultURL + "\n" +
		"Destination: assets/models/facenet.tflite\n\n"
	assert.Equal(t, want, buf.String())
}

func TestPrinter_ProgressText(t *testing.T) {
	p, buf := newTestPrinter(StyleText)

	p.Progress(fetch.Progress{Downloaded: 1024 * 1024, Total: 4 * 1024 * 1024})
	assert.Equal(t, "\rProgress: 25.0% (1.0/4.0 MB)", buf.String())

	buf.Reset()
	p.Progress(fetch.Progress{Downloaded: 4 * 1024 * 1024, Total: 4 * 1024 * 1024})
	assert.Equal(t, "\rProgress: 100.0% (4.0/4.0 MB)", buf.String())

	buf.Reset()
	p.Progress(fetch.Progress{Downloaded: 512 * 1024})
	assert.Equal(t, "\rProgress: 0.0% (0.5/0.0 MB)", buf.String())
}

func TestPrinter_ProgressBar(t *testing.T) {
	p, buf := newTestPrinter(StyleBar)

	total := int64(2 * 1024 * 1024)
	p.Progress(fetch.Progress{Total: total})
	p.Progress(fetch.Progress{Downloaded: total, Total: total})
	p.Success(total)

	require.NotNil(t, p.bar)
	assert.Contains(t, buf.String(), "✓ Model downloaded successfully!")
}

func TestPrinter_SuccessAndNextSteps(t *testing.T) {
	p, buf := newTestPrinter(StyleText)
	p.Success(23195000)
	p.PrintNextSteps()

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "\n\n✓ Model downloaded successfully!\n  File size: 22.12 MB\n"))
	assert.Contains(t, out, "Next Steps:\n"+rule+"\n1. Run: flutter pub get\n")
	assert.Contains(t, out, "4. Test face recognition accuracy\n\n")
}

func TestPrinter_Failure(t *testing.T) {
	p, buf := newTestPrinter(StyleText)
	p.Failure(errors.New("no route to host"), facenet)

	want := "\n✗ Error: no route to host\n" +
		"\nAlternative: Download manually from:\n" +
		fetch.DefaultFallbackURL + "\n" +
		"Save as: assets/models/facenet.tflite\n\n"
	assert.Equal(t, want, buf.String())
}
