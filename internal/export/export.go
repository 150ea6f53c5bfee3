// Package export renders a lesson into portable formats for handouts and
// spreadsheets. Rendering is pure reformatting of the lesson record; it
// never touches the store or the generation pipeline.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lessonforge/lessonforge/internal/lesson"
)

// Format names a supported export rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ParseFormat validates a user-supplied format name. An empty name defaults
// to text.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case "", FormatText:
		return FormatText, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", name)
	}
}

// Render produces the lesson in the requested format.
func Render(l lesson.Lesson, f Format) (string, error) {
	switch f {
	case FormatText:
		return renderText(l), nil
	case FormatMarkdown:
		return renderMarkdown(l), nil
	case FormatCSV:
		return renderCSV(l)
	default:
		return "", fmt.Errorf("unsupported export format %q", f)
	}
}

func renderText(l lesson.Lesson) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lesson: %s\n", l.ClassSettings.Name)
	fmt.Fprintf(&b, "Subject: %s (grade %d)\n", l.ClassSettings.Subject, l.ClassSettings.GradeLevel)
	fmt.Fprintf(&b, "Length: %s\n", l.LessonLength)
	fmt.Fprintf(&b, "Style: %s\n", l.StoryStyle)
	fmt.Fprintf(&b, "Status: %s\n", l.Status)
	fmt.Fprintf(&b, "Created: %s\n\n", l.CreatedAt.UTC().Format(time.RFC3339))

	tw := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTIME\tTITLE\tSTATUS\tIMAGE")
	for i, f := range l.Frames {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, f.Timestamp, f.Title, f.Status, f.ImageURL)
	}
	tw.Flush()

	if l.Quiz != nil && len(l.Quiz.Questions) > 0 {
		b.WriteString("\nQuiz\n")
		for i, q := range l.Quiz.Questions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
			for _, opt := range q.Options {
				fmt.Fprintf(&b, "   - %s\n", opt)
			}
			fmt.Fprintf(&b, "   Answer: %s\n", q.Answer)
		}
	}
	return b.String()
}

func renderMarkdown(l lesson.Lesson) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", l.ClassSettings.Name)
	fmt.Fprintf(&b, "- **Subject:** %s (grade %d)\n", l.ClassSettings.Subject, l.ClassSettings.GradeLevel)
	fmt.Fprintf(&b, "- **Length:** %s\n", l.LessonLength)
	fmt.Fprintf(&b, "- **Style:** %s\n", l.StoryStyle)
	fmt.Fprintf(&b, "- **Status:** %s\n\n", l.Status)

	b.WriteString("| # | Time | Title | Status | Image |\n")
	b.WriteString("|---|------|-------|--------|-------|\n")
	for i, f := range l.Frames {
		image := ""
		if f.ImageURL != "" {
			image = fmt.Sprintf("[link](%s)", f.ImageURL)
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			i+1, f.Timestamp, escapePipes(f.Title), f.Status, image)
	}

	if l.Quiz != nil && len(l.Quiz.Questions) > 0 {
		b.WriteString("\n## Quiz\n\n")
		for i, q := range l.Quiz.Questions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, q.Question)
			for _, opt := range q.Options {
				fmt.Fprintf(&b, "   - %s\n", opt)
			}
			fmt.Fprintf(&b, "\n   **Answer:** %s\n", q.Answer)
		}
	}
	return b.String()
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func renderCSV(l lesson.Lesson) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"index", "timestamp", "title", "status", "image_url", "error"}); err != nil {
		return "", fmt.Errorf("writing csv header: %w", err)
	}
	for i, f := range l.Frames {
		record := []string{
			fmt.Sprintf("%d", i+1), f.Timestamp, f.Title, string(f.Status), f.ImageURL, f.Error,
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing frame %d: %w", i, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing csv: %w", err)
	}
	return buf.String(), nil
}
