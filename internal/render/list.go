// Package render projects comments and their average rating into display
// form for the web page and the terminal.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/marsadembi/portfolio/internal/comment"
)

// TimeLayout is the display format for a comment's creation time.
const TimeLayout = "Jan 2, 2006 15:04"

// Card is one displayed comment.
type Card struct {
	Name      string
	When      string
	Message   string
	Stars     string
	Rating    int
	HasRating bool
}

// View is the displayed comment section.
type View struct {
	Cards       []Card
	Average     string
	ShowAverage bool
}

// NewView builds the comment section in insertion order. With no comments
// it has no cards and no average line. loc may be nil for UTC.
func NewView(comments []*comment.Comment, avg float64, loc *time.Location) View {
	if len(comments) == 0 {
		return View{}
	}
	if loc == nil {
		loc = time.UTC
	}

	v := View{
		Cards:       make([]Card, 0, len(comments)),
		Average:     FormatAverage(avg),
		ShowAverage: true,
	}
	for _, c := range comments {
		card := Card{
			Name:    c.Name,
			When:    c.CreatedAt.In(loc).Format(TimeLayout),
			Message: c.Message,
		}
		if c.Rating != nil {
			card.Stars = FormatStars(*c.Rating)
			card.Rating = *c.Rating
			card.HasRating = true
		}
		v.Cards = append(v.Cards, card)
	}
	return v
}

// FormatAverage renders an average with one decimal place, e.g. "4.7 / 5".
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.1f / %d", avg, comment.MaxRating)
}

// FormatStars renders a single rating, e.g. "⭐ 3 / 5".
func FormatStars(rating int) string {
	return fmt.Sprintf("⭐ %d / %d", rating, comment.MaxRating)
}

// StarGlyphs returns n filled stars padded with empty ones, e.g. "★★★☆☆".
func StarGlyphs(n int) string {
	n = max(0, min(n, comment.MaxRating))
	return strings.Repeat("★", n) + strings.Repeat("☆", comment.MaxRating-n)
}

// Text writes the comment section for a terminal.
func Text(w io.Writer, v View) error {
	if len(v.Cards) == 0 {
		_, err := fmt.Fprintln(w, "No comments yet.")
		return err
	}

	if _, err := fmt.Fprintf(w, "⭐ Average rating: %s\n\n", v.Average); err != nil {
		return fmt.Errorf("writing average: %w", err)
	}
	for _, c := range v.Cards {
		if _, err := fmt.Fprintf(w, "%s (%s)\n  %s\n", c.Name, c.When, c.Message); err != nil {
			return fmt.Errorf("writing comment: %w", err)
		}
		if c.HasRating {
			if _, err := fmt.Fprintf(w, "  %s\n", c.Stars); err != nil {
				return fmt.Errorf("writing rating: %w", err)
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
