package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/briandowns/spinner"

	"github.com/sirchsolutions/sirchweb/internal/presenter"
)

// terminalRenderer prints presenter views as result lines. While submitting
// it shows a spinner when interactive, or a plain line otherwise.
type terminalRenderer struct {
	out     io.Writer
	spinner *spinner.Spinner
}

func newTerminalRenderer(out io.Writer, interactive bool) *terminalRenderer {
	r := &terminalRenderer{out: out}
	if interactive {
		r.spinner = spinner.New(spinner.CharSets[14], interactiveDelay, spinner.WithWriter(out))
	}
	return r
}

func (r *terminalRenderer) Render(v presenter.View) {
	if v.State == presenter.StateSubmitting {
		if r.spinner != nil {
			r.spinner.Suffix = " " + v.Message
			r.spinner.Start()
			return
		}
		fmt.Fprintln(r.out, v.Message)
		return
	}

	r.stop()

	switch v.State {
	case presenter.StateSuccess:
		fmt.Fprintf(r.out, "✅ %s\n", v.Message)
	case presenter.StateError:
		fmt.Fprintf(r.out, "❌ %s\n", v.Message)
	default:
		if v.Message != "" {
			fmt.Fprintln(r.out, v.Message)
		}
	}
	printFieldErrors(r.out, v.FieldErrors)
}

func (r *terminalRenderer) stop() {
	if r.spinner != nil {
		r.spinner.Stop()
	}
}

func printFieldErrors(out io.Writer, errs map[string]string) {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(out, "  - %s: %s\n", field, errs[field])
	}
}
