package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/bardasz/etp/pkg/etperr"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

// Format returns a multi-line message for terminal display.
func Format(e *etperr.EtpError) string {
	var b strings.Builder

	b.WriteString(color(colorRed+colorBold, "ERROR "))
	b.WriteString(e.FormatCompact())
	b.WriteString("\n")

	if e.Category != "" {
		writeCategory(&b, e.Category)
	}
	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(color(colorGray, "cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n")
	}

	return b.String()
}

func writeCategory(b *strings.Builder, c etperr.Category) {
	b.WriteString("  ")
	b.WriteString(color(colorGray, "category: "+string(c)))
	b.WriteString("\n")
}

// PrintError prints a formatted error to w.
func PrintError(w io.Writer, err error) {
	var ee *etperr.EtpError
	if stderrors.As(err, &ee) {
		fmt.Fprint(w, Format(ee))
		return
	}

	var b strings.Builder
	b.WriteString(color(colorRed+colorBold, "ERROR"))
	b.WriteString(" ")
	b.WriteString(err.Error())
	b.WriteString("\n")
	if c := etperr.CategoryOf(err); c != "" {
		writeCategory(&b, c)
	}
	fmt.Fprint(w, b.String())
}
