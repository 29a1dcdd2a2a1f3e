package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/goxlang/gox/internal/diagnostics"
)

const (
	ansiRed   = "\x1b[31m"
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// reportDiagnostics prints every collected diagnostic, one per line, with
// ANSI colors when writing to a terminal.
func reportDiagnostics(w io.Writer, errs []*diagnostics.DiagnosticError) {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	for _, err := range errs {
		if colored {
			fmt.Fprintf(w, "%s%serror:%s %s\n", ansiBold, ansiRed, ansiReset, err.Error())
		} else {
			fmt.Fprintf(w, "error: %s\n", err.Error())
		}
	}
	fmt.Fprintf(w, "%d error(s) found\n", len(errs))
}
