// Package output renders stories and refresh reports for the terminal.
package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"

	"HackerNews/internal/domain"
	"HackerNews/internal/livefeed"
	"HackerNews/internal/usecase"
)

// Sentiment bands used for coloring.
const (
	positiveThreshold = 0.25
	negativeThreshold = -0.25
)

// ColorMode represents color output mode.
type ColorMode int

const (
	// ColorAuto enables colors unless NO_COLOR or a dumb terminal says otherwise.
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses a string into a ColorMode.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors determines whether to use colors based on mode and environment.
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		return os.Getenv("TERM") != "dumb"
	}
}

// Printer writes human readable output.
type Printer struct {
	out       io.Writer
	useColors bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, useColors bool) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w, useColors: useColors}
}

// Stories renders the feed as a ranked table.
func (p *Printer) Stories(stories []domain.Story) {
	table := NewTableWithWriter(p.out, []string{"#", "Score", "Sentiment", "Title", "Link"})
	for i, s := range stories {
		table.AddRow([]string{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			p.sentiment(s),
			s.Title,
			link(s),
		})
	}
	table.Render()
}

// Event prints a single feed mutation, used in watch mode.
func (p *Printer) Event(ev livefeed.Event) {
	switch ev.Kind {
	case livefeed.EventCleared:
		fmt.Fprintln(p.out, p.paint(color.FgHiBlack, "-- feed cleared --"))
	case livefeed.EventInserted:
		fmt.Fprintf(p.out, "+ [%d] %5d  %s  %s\n", ev.Index+1, ev.Story.Score, p.sentiment(ev.Story), ev.Story.Title)
	}
}

// Report prints the refresh summary line.
func (p *Printer) Report(r usecase.Report) {
	attr := color.FgGreen
	switch r.Status {
	case usecase.StatusCancelled:
		attr = color.FgYellow
	case usecase.StatusFailed:
		attr = color.FgRed
	}
	fmt.Fprintf(p.out, "%s: %d inserted, %d duplicates, %d enriched, %d without sentiment in %s\n",
		p.paint(attr, string(r.Status)),
		r.Inserted, r.Duplicates, r.Enriched, r.EnrichmentFailures,
		r.Duration.Round(time.Millisecond),
	)
}

func (p *Printer) sentiment(s domain.Story) string {
	value, ok := s.Sentiment()
	if !ok {
		return p.paint(color.FgHiBlack, "n/a")
	}
	text := strconv.FormatFloat(value, 'f', 2, 64)
	switch {
	case value >= positiveThreshold:
		return p.paint(color.FgGreen, text)
	case value <= negativeThreshold:
		return p.paint(color.FgRed, text)
	default:
		return p.paint(color.FgYellow, text)
	}
}

func (p *Printer) paint(attr color.Attribute, text string) string {
	c := color.New(attr)
	if p.useColors {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(text)
}

func link(s domain.Story) string {
	if s.HasLink() {
		return s.URL
	}
	return "https://news.ycombinator.com/item?id=" + s.ID.String()
}
