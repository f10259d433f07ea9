// Package report renders the completed workout history for reading outside the terminal.
package report

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/myrjola/sixsplit/internal/workout"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const dateLayout = "Mon 2 Jan 2006"

// Format selects the output of Write.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat returns the format named v.
func ParseFormat(v string) (Format, error) {
	switch f := Format(v); f {
	case FormatText, FormatMarkdown, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q", v)
	}
}

// Write renders the completed sessions newest first in format f. Dates are shown in loc.
func Write(w io.Writer, f Format, sessions []workout.Session, loc *time.Location) error {
	switch f {
	case FormatText:
		return Text(w, sessions, loc)
	case FormatMarkdown:
		return Markdown(w, sessions, loc)
	case FormatHTML:
		return HTML(w, sessions, loc)
	default:
		return fmt.Errorf("unknown report format %q", f)
	}
}

// newestFirst returns the completed sessions sorted by date descending.
func newestFirst(sessions []workout.Session) []workout.Session {
	var out []workout.Session
	for _, s := range sessions {
		if s.IsCompleted {
			out = append(out, s)
		}
	}
	slices.SortStableFunc(out, func(a, b workout.Session) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// FormatSet renders one set as "100 kg × 5", or "100 kg" without reps.
func FormatSet(set workout.SetRecord) string {
	weight := strconv.FormatFloat(set.Weight, 'f', -1, 64) + " kg"
	if set.Reps == nil {
		return weight
	}
	return weight + " × " + strconv.Itoa(*set.Reps)
}

func formatSets(sets []workout.SetRecord) string {
	parts := make([]string, len(sets))
	for i, set := range sets {
		parts[i] = FormatSet(set)
	}
	return strings.Join(parts, ", ")
}

func summaryLine(s workout.Session) string {
	return fmt.Sprintf("%d min · %d kcal · %d sets", s.Duration, s.Calories, s.TotalSets())
}

// Text renders the history as plain text.
func Text(w io.Writer, sessions []workout.Session, loc *time.Location) error {
	var b strings.Builder
	completed := newestFirst(sessions)
	if len(completed) == 0 {
		b.WriteString("No completed workouts yet.\n")
	}
	for i, s := range completed {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s\n", s.Date.In(loc).Format(dateLayout), s.DayTitle)
		fmt.Fprintf(&b, "  %s\n", summaryLine(s))
		for _, l := range s.Exercises {
			fmt.Fprintf(&b, "  - %s (%d): %s\n", l.Name, len(l.Sets), formatSets(l.Sets))
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text report: %w", err)
	}
	return nil
}

//nolint:gochecknoglobals // stateless replacer.
var tableEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// Markdown renders the history as a Markdown document with one table per session.
func Markdown(w io.Writer, sessions []workout.Session, loc *time.Location) error {
	if _, err := io.WriteString(w, markdown(sessions, loc)); err != nil {
		return fmt.Errorf("write markdown report: %w", err)
	}
	return nil
}

func markdown(sessions []workout.Session, loc *time.Location) string {
	var b strings.Builder
	b.WriteString("# Workout history\n")
	completed := newestFirst(sessions)
	if len(completed) == 0 {
		b.WriteString("\n_No completed workouts yet._\n")
		return b.String()
	}
	for _, s := range completed {
		fmt.Fprintf(&b, "\n## %s · %s\n\n", tableEscaper.Replace(s.DayTitle), s.Date.In(loc).Format(dateLayout))
		fmt.Fprintf(&b, "%s\n\n", summaryLine(s))
		b.WriteString("| Exercise | Sets | Performed |\n| --- | ---: | --- |\n")
		for _, l := range s.Exercises {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", tableEscaper.Replace(l.Name), len(l.Sets), formatSets(l.Sets))
		}
	}
	return b.String()
}

// HTML renders the Markdown report to an HTML fragment.
func HTML(w io.Writer, sessions []workout.Session, loc *time.Location) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown(sessions, loc)), &buf); err != nil {
		return fmt.Errorf("convert markdown: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	return nil
}
