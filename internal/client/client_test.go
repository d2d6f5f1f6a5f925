package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marsadembi/portfolio/internal/comment"
)

func TestListComments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/comments" {
			t.Errorf("%s %s, want GET /api/comments", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := io.WriteString(w, `{"comments":[{"id":1,"name":"Ana","rating":5},{"id":2,"name":"Bo","rating":null}],"averageRating":5}`); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	c := New(srv.URL + "/")
	l, err := c.ListComments(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(l.Comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(l.Comments))
	}
	if l.Comments[1].Rating != nil {
		t.Error("expected null rating to decode as nil")
	}
	if l.AverageRating != 5 {
		t.Errorf("average = %v, want 5", l.AverageRating)
	}
}

func TestListCommentsNullList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.WriteString(w, `{"comments":null,"averageRating":0}`); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	l, err := New(srv.URL).ListComments(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if l.Comments == nil {
		t.Error("expected empty, non-nil comment slice")
	}
}

func TestAddComment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content-type = %q", r.Header.Get("Content-Type"))
		}
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["name"] != "Ana" || body["email"] != "ana@example.com" || body["message"] != "Hi" {
			t.Errorf("body = %v", body)
		}
		if body["rating"] != float64(4) {
			t.Errorf("rating = %v, want 4", body["rating"])
		}
		if len(body) != 4 {
			t.Errorf("expected exactly name/email/message/rating, got %v", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	in := comment.Input{Name: "Ana", Email: "ana@example.com", Message: "Hi", Rating: comment.IntPtr(4), RemoteAddr: "10.0.0.1"}
	if err := New(srv.URL).AddComment(context.Background(), in); err != nil {
		t.Fatalf("add: %v", err)
	}
}

func TestChat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %q", r.URL.Path)
		}
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if string(raw) != `{"message":"hello"}` {
			t.Errorf("body = %s, want {\"message\":\"hello\"}", raw)
		}
		if _, err := io.WriteString(w, `{"reply":"hi there"}`); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	reply, err := New(srv.URL).Chat(context.Background(), "hello")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("reply = %q", reply)
	}
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(map[string]string{"error": "invalid comment: name is required"}); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}))
	defer srv.Close()

	err := New(srv.URL).AddComment(context.Background(), comment.Input{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.Status)
	}
	if err.Error() != "invalid comment: name is required" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestPlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListComments(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "server error: Bad Gateway" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	if _, err := New(url).Chat(context.Background(), "hello"); err == nil {
		t.Fatal("expected transport error")
	}
}
