package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewUpstream(t *testing.T) {
	tests := []struct {
		name    string
		cfg     UpstreamConfig
		wantErr bool
	}{
		{"valid", UpstreamConfig{BaseURL: "http://llm", Model: "m"}, false},
		{"missing url", UpstreamConfig{Model: "m"}, true},
		{"missing model", UpstreamConfig{BaseURL: "http://llm"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUpstream(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if u.cfg.SystemPrompt == "" {
				t.Error("expected default system prompt")
			}
		})
	}
}

func TestUpstreamReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("authorization = %q", r.Header.Get("Authorization"))
		}

		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Model != "tiny" || req.Stream {
			t.Errorf("model = %q stream = %v", req.Model, req.Stream)
		}
		if len(req.Messages) != 2 || req.Messages[1].Content != "hello" {
			t.Errorf("messages = %+v", req.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":" hi there "}}]}`)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}))
	defer srv.Close()

	u, err := NewUpstream(UpstreamConfig{BaseURL: srv.URL + "/v1/", APIKey: "sk-test", Model: "tiny"})
	if err != nil {
		t.Fatalf("new upstream: %v", err)
	}

	reply, err := u.Reply(context.Background(), "hello")
	if err != nil {
		t.Fatalf("reply: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("reply = %q, want %q", reply, "hi there")
	}
}

func TestUpstreamReplyErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"invalid json", http.StatusOK, `not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				if _, err := w.Write([]byte(tt.body)); err != nil {
					t.Fatalf("write: %v", err)
				}
			}))
			defer srv.Close()

			u, err := NewUpstream(UpstreamConfig{BaseURL: srv.URL, Model: "tiny"})
			if err != nil {
				t.Fatalf("new upstream: %v", err)
			}
			if _, err := u.Reply(context.Background(), "hello"); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestUpstreamReplyEmpty(t *testing.T) {
	u, err := NewUpstream(UpstreamConfig{BaseURL: "http://unused", Model: "tiny"})
	if err != nil {
		t.Fatalf("new upstream: %v", err)
	}
	if _, err := u.Reply(context.Background(), " "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("err = %v, want ErrEmptyMessage", err)
	}
}
