package browser

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/studiowebux/doh/internal/entry"
)

// progressWriter draws a byte progress bar on out as data is written
// through it. The bar is redrawn only when the whole percentage changes.
type progressWriter struct {
	out     io.Writer
	bar     progress.Model
	total   int64
	written int64
	shown   int
}

func newProgressWriter(out io.Writer, total int64, width int) *progressWriter {
	// Leave room for the byte counters after the bar
	barWidth := max(width-24, 10)
	return &progressWriter{
		out:   out,
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth)),
		total: total,
		shown: -1,
	}
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if percent := p.percent(); percent != p.shown {
		p.shown = percent
		if err := p.draw(); err != nil {
			return 0, err
		}
	}
	return len(b), nil
}

func (p *progressWriter) percent() int {
	if p.total <= 0 {
		return 100
	}
	return int(min(p.written*100/p.total, 100))
}

func (p *progressWriter) draw() error {
	_, err := fmt.Fprintf(p.out, "\r%s %s/%s",
		p.bar.ViewAs(float64(p.percent())/100),
		entry.HumanReadableSize(uint64(p.written)),
		entry.HumanReadableSize(uint64(max(p.total, 0))))
	return err
}

// Finish draws the final state and ends the line
func (p *progressWriter) Finish() error {
	if err := p.draw(); err != nil {
		return err
	}
	_, err := io.WriteString(p.out, "\n")
	return err
}
