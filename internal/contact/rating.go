// Package contact implements the visitor-facing comment and chat flows:
// the star rating input, form submission with list refresh, and the chat box.
package contact

import "github.com/marsadembi/portfolio/internal/comment"

// RatingInput holds the committed star rating (0 = unset) and a transient
// hover position used only for preview. Hover is never submitted.
type RatingInput struct {
	committed int
	hover     int
}

func validPosition(k int) bool {
	return k >= comment.MinRating && k <= comment.MaxRating
}

// Select commits position k, replacing any earlier choice.
func (r *RatingInput) Select(k int) {
	if validPosition(k) {
		r.committed = k
	}
}

// Hover previews position k.
func (r *RatingInput) Hover(k int) {
	if validPosition(k) {
		r.hover = k
	}
}

// Leave clears the hover preview.
func (r *RatingInput) Leave() {
	r.hover = 0
}

// Reset clears both the committed rating and the preview.
func (r *RatingInput) Reset() {
	*r = RatingInput{}
}

// Committed returns the chosen rating, or 0 when unset.
func (r RatingInput) Committed() int {
	return r.committed
}

// Preview returns the hover position if any, else the committed rating.
func (r RatingInput) Preview() int {
	if r.hover > 0 {
		return r.hover
	}
	return r.committed
}

// Lit reports whether star position pos is highlighted.
func (r RatingInput) Lit(pos int) bool {
	return r.Preview() >= pos
}
