package comment

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/marsadembi/portfolio/internal/db"
)

func snapshot(t *testing.T, repo *Repository) *Listing {
	t.Helper()
	l, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return l
}

func TestAddAndList(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	c, err := repo.Add(ctx, Input{Name: "Ana", Email: "ana@example.com", Message: "Great work", Rating: IntPtr(5)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if c.Name != "Ana" {
		t.Errorf("name = %q, want %q", c.Name, "Ana")
	}
	if c.Rating == nil || *c.Rating != 5 {
		t.Errorf("rating = %v, want 5", c.Rating)
	}
	if c.CreatedAt.IsZero() {
		t.Error("expected server-assigned created_at")
	}

	comments := snapshot(t, repo).Comments
	if len(comments) != 1 {
		t.Fatalf("got %d comments, want 1", len(comments))
	}
	if comments[0].Message != "Great work" {
		t.Errorf("message = %q, want %q", comments[0].Message, "Great work")
	}
}

func TestAddNullRating(t *testing.T) {
	repo := testRepo(t)

	c, err := repo.Add(context.Background(), Input{Name: "Bo", Email: "bo@example.com", Message: "no stars"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if c.Rating != nil {
		t.Errorf("rating = %d, want nil", *c.Rating)
	}
}

func TestAddRatingOutOfRange(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.Add(context.Background(), Input{Name: "Cy", Email: "cy@example.com", Message: "hi", Rating: IntPtr(6)})
	if err == nil {
		t.Fatal("expected constraint error for rating 6")
	}
}

func TestListInsertionOrder(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	for _, msg := range []string{"first", "second", "third"} {
		if _, err := repo.Add(ctx, Input{Name: "n", Email: "n@example.com", Message: msg}); err != nil {
			t.Fatalf("add %q: %v", msg, err)
		}
	}

	comments := snapshot(t, repo).Comments
	if len(comments) != 3 {
		t.Fatalf("got %d comments, want 3", len(comments))
	}
	if comments[0].Message != "first" {
		t.Errorf("first comment = %q, want %q", comments[0].Message, "first")
	}
	if comments[2].Message != "third" {
		t.Errorf("last comment = %q, want %q", comments[2].Message, "third")
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name    string
		ratings []*int
		want    float64
	}{
		{"no comments", nil, 0},
		{"only unrated", []*int{nil, nil}, 0},
		{"mixed ratings", []*int{IntPtr(5), nil, IntPtr(3)}, 4},
		{"repeating fraction", []*int{IntPtr(5), IntPtr(5), IntPtr(4)}, 14.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testRepo(t)
			ctx := context.Background()
			for _, r := range tt.ratings {
				if _, err := repo.Add(ctx, Input{Name: "n", Email: "n@example.com", Message: "m", Rating: r}); err != nil {
					t.Fatalf("add: %v", err)
				}
			}

			got := snapshot(t, repo).AverageRating
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("average = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshotEmpty(t *testing.T) {
	repo := testRepo(t)

	l, err := repo.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if l.Comments == nil {
		t.Error("expected non-nil empty comment slice")
	}
	if len(l.Comments) != 0 || l.AverageRating != 0 {
		t.Errorf("got %d comments avg %v, want empty and 0", len(l.Comments), l.AverageRating)
	}
}

func TestDelete(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	c, err := repo.Add(ctx, Input{Name: "n", Email: "n@example.com", Message: "spam"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := repo.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	comments := snapshot(t, repo).Comments
	if len(comments) != 0 {
		t.Errorf("got %d comments after delete, want 0", len(comments))
	}
}

func TestDeleteNotFound(t *testing.T) {
	repo := testRepo(t)

	err := repo.Delete(context.Background(), 9999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

// testRepo creates a comment repository over a temporary database.
func testRepo(t *testing.T) *Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	d, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return NewRepository(d)
}
