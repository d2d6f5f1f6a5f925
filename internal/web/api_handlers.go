package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/marsadembi/portfolio/internal/chat"
	"github.com/marsadembi/portfolio/internal/comment"
)

const maxBodyBytes = 64 << 10

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// decodeJSON reads a bounded JSON request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}

// handleAPIComments routes /api/comments requests.
func (s *Server) handleAPIComments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.apiListComments(w, r)
	case http.MethodPost:
		s.apiAddComment(w, r)
	default:
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) apiListComments(w http.ResponseWriter, r *http.Request) {
	listing, err := s.comments.Listing(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "listing comments", "error", err)
		apiError(w, "failed to load comments", http.StatusInternalServerError)
		return
	}
	apiJSON(w, listing, http.StatusOK)
}

func (s *Server) apiAddComment(w http.ResponseWriter, r *http.Request) {
	var in comment.Input
	if err := decodeJSON(w, r, &in); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	in.RemoteAddr = r.RemoteAddr

	if !s.limiter.allow(r.RemoteAddr) {
		apiError(w, errRateLimited.Error(), http.StatusTooManyRequests)
		return
	}

	c, err := s.comments.Submit(r.Context(), in)
	if err != nil {
		var ve *comment.ValidationError
		if errors.As(err, &ve) {
			apiError(w, ve.Error(), http.StatusBadRequest)
			return
		}
		slog.ErrorContext(r.Context(), "adding comment", "error", err)
		apiError(w, "failed to save comment", http.StatusInternalServerError)
		return
	}

	apiJSON(w, c, http.StatusCreated)
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

// handleAPIChat answers POST /api/chat.
func (s *Server) handleAPIChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	reply, err := s.chat.Reply(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			apiError(w, "message is required", http.StatusBadRequest)
			return
		}
		slog.ErrorContext(r.Context(), "chat reply", "error", err)
		apiError(w, "chat is unavailable", http.StatusBadGateway)
		return
	}

	apiJSON(w, chatResponse{Reply: reply}, http.StatusOK)
}
