// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/hard75/internal/core/styles"
)

type ctxKey struct{}

// Printer writes human readable output. Status lines go to the writer given
// to New; commands write machine readable output to stdout themselves.
type Printer struct {
	w io.Writer
}

// New creates a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

func (p *Printer) line(style lipgloss.Style, icon, msg string) {
	_, _ = fmt.Fprintln(p.w, style.Render(icon)+" "+msg)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, args ...any) {
	p.line(styles.HeaderStyle, styles.IconNotifyInfo, fmt.Sprintf(format, args...))
}

// Successf writes a success line.
func (p *Printer) Successf(format string, args ...any) {
	p.line(styles.SuccessStyle, styles.IconCheck, fmt.Sprintf(format, args...))
}

// Success writes a success title followed by a muted detail.
func (p *Printer) Success(title, detail string) {
	msg := title
	if detail != "" {
		msg += " " + styles.MutedStyle.Render(detail)
	}
	p.line(styles.SuccessStyle, styles.IconCheck, msg)
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	p.line(styles.WarningStyle, styles.IconNotifyWarning, fmt.Sprintf(format, args...))
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	p.line(styles.ErrorStyle, styles.IconNotifyError, fmt.Sprintf(format, args...))
}

// Header writes a bold title and a divider.
func (p *Printer) Header(title string) {
	_, _ = fmt.Fprintln(p.w, styles.HeaderStyle.Render(title))
	p.Divider()
}

// Divider writes a horizontal rule.
func (p *Printer) Divider() {
	_, _ = fmt.Fprintln(p.w, styles.DividerStyle.Render("────────────────────────────────────────"))
}
