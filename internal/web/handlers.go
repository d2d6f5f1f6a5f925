package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/marsadembi/portfolio/internal/contact"
	"github.com/marsadembi/portfolio/internal/render"
	"github.com/marsadembi/portfolio/internal/settings"
)

type pageData struct {
	Theme    settings.Theme
	Profile  Profile
	Sections []string
	Skills   []string
	Projects []Project
	Contact  contactData
	Chat     chatData
}

type contactData struct {
	Name      string
	Email     string
	Message   string
	Rating    contact.RatingInput
	Notices   []contact.Notice
	Celebrate bool
	Comments  render.View
}

type chatData struct {
	Input string
	Reply string
}

// noticeRecorder collects the flow's alerts for rendering.
type noticeRecorder struct {
	notices []contact.Notice
}

func (n *noticeRecorder) Notify(notice contact.Notice) {
	n.notices = append(n.notices, notice)
}

// celebration marks the response so the page script plays the effect.
type celebration struct {
	done bool
}

func (c *celebration) Celebrate() { c.done = true }

// handlePage renders the full portfolio page.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	view, err := s.loadComments(r.Context(), r)
	if err != nil {
		http.Error(w, "Error loading comments", http.StatusInternalServerError)
		return
	}

	s.render(w, "page.html", pageData{
		Theme:    s.theme(w, r),
		Profile:  profile,
		Sections: sections,
		Skills:   skills,
		Projects: projects,
		Contact:  contactData{Comments: s.commentView(view)},
	})
}

// handleContactPost runs the comment submission flow for a form post.
// HTMX requests get the contact section only.
func (s *Server) handleContactPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	notices := &noticeRecorder{}
	cel := &celebration{}
	flow := contact.NewSubmissionFlow(s.localComments(r), notices, cel)
	if err := flow.Load(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "loading comments", "error", err)
		http.Error(w, "Error loading comments", http.StatusInternalServerError)
		return
	}

	form := &contact.Form{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}
	if k, err := strconv.Atoi(r.FormValue("rating")); err == nil {
		form.Rating.Select(k)
	}

	// Outcomes are reported through notices; write failures are logged by the flow.
	_ = flow.Submit(r.Context(), form)

	data := contactData{
		Name:      form.Name,
		Email:     form.Email,
		Message:   form.Message,
		Rating:    form.Rating,
		Notices:   notices.notices,
		Celebrate: cel.done,
		Comments:  s.commentView(flow.View()),
	}

	if isHTMX(r) {
		s.renderPartial(w, "contact-partial", data)
		return
	}

	s.render(w, "page.html", pageData{
		Theme:    s.theme(w, r),
		Profile:  profile,
		Sections: sections,
		Skills:   skills,
		Projects: projects,
		Contact:  data,
	})
}

// handleChatPost runs one chat exchange. A failed reply keeps the previous
// one, which the form carries in a hidden field.
func (s *Server) handleChatPost(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	flow := contact.NewChatFlow(localChat{svc: s.chat})
	flow.SetInput(r.FormValue("message"))
	flow.SetReply(r.FormValue("reply"))

	if err := flow.Send(r.Context()); err != nil {
		slog.DebugContext(r.Context(), "chat reply failed", "error", err)
	}

	data := chatData{Input: flow.Input(), Reply: flow.Reply()}

	if isHTMX(r) {
		s.renderPartial(w, "chat-partial", data)
		return
	}

	view, err := s.loadComments(r.Context(), r)
	if err != nil {
		http.Error(w, "Error loading comments", http.StatusInternalServerError)
		return
	}

	s.render(w, "page.html", pageData{
		Theme:    s.theme(w, r),
		Profile:  profile,
		Sections: sections,
		Skills:   skills,
		Projects: projects,
		Contact:  contactData{Comments: s.commentView(view)},
		Chat:     data,
	})
}

func (s *Server) localComments(r *http.Request) localComments {
	return localComments{svc: s.comments, limiter: s.limiter, remoteAddr: r.RemoteAddr}
}

// loadComments performs the flow's initial load, which captures the list
// and the average together.
func (s *Server) loadComments(ctx context.Context, r *http.Request) (contact.View, error) {
	flow := contact.NewSubmissionFlow(s.localComments(r), nil, nil)
	if err := flow.Load(ctx); err != nil {
		slog.ErrorContext(ctx, "loading comments", "error", err)
		return contact.View{}, err
	}
	return flow.View(), nil
}

func (s *Server) commentView(v contact.View) render.View {
	return render.NewView(v.Comments, v.AverageRating, s.loc)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// render executes a full page template with layout.
func (s *Server) render(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
	}
}

// renderPartial executes a named template block (no layout).
func (s *Server) renderPartial(w http.ResponseWriter, name string, data interface{}) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering partial: %v", err), http.StatusInternalServerError)
	}
}
