package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"quizmaster/internal/model"
	"quizmaster/internal/report"
	"quizmaster/internal/store"
	"quizmaster/internal/view"
)

// Config holds runtime handler parameters set via CLI flags.
type Config struct {
	SecureCookies bool
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store    *store.Store
	render   *view.Renderer
	charts   *report.Publisher
	validate *validator.Validate
	config   Config
}

// New creates a new Handler.
func New(s *store.Store, r *view.Renderer, charts *report.Publisher, cfg Config) *Handler {
	return &Handler{
		store:    s,
		render:   r,
		charts:   charts,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		config:   cfg,
	}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	})
	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLogin)
	r.Get("/register", h.handleRegisterPage)
	r.Post("/register", h.handleRegister)

	r.Handle("/static/charts/*", http.StripPrefix("/static/charts/",
		http.FileServer(http.Dir(h.charts.Dir()))))

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.requireRole(model.RoleAdmin))
		r.Get("/", h.handleAdminDashboard)
		r.Get("/logout", h.handleLogout)

		r.Get("/subjects/new", h.handleSubjectForm)
		r.Post("/subjects", h.handleCreateSubject)
		r.Get("/subjects/{subjectID}", h.handleViewSubject)
		r.Get("/subjects/{subjectID}/edit", h.handleEditSubjectForm)
		r.Post("/subjects/{subjectID}/edit", h.handleEditSubject)
		r.Post("/subjects/{subjectID}/delete", h.handleDeleteSubject)

		r.Get("/subjects/{subjectID}/chapters/new", h.handleChapterForm)
		r.Post("/subjects/{subjectID}/chapters", h.handleCreateChapter)
		r.Get("/chapters/{chapterID}", h.handleViewChapter)
		r.Get("/chapters/{chapterID}/edit", h.handleEditChapterForm)
		r.Post("/chapters/{chapterID}/edit", h.handleEditChapter)
		r.Post("/chapters/{chapterID}/delete", h.handleDeleteChapter)

		r.Get("/chapters/{chapterID}/quizzes/new", h.handleQuizForm)
		r.Post("/chapters/{chapterID}/quizzes", h.handleCreateQuiz)
		r.Get("/quizzes/{quizID}", h.handleViewQuiz)
		r.Get("/quizzes/{quizID}/edit", h.handleEditQuizForm)
		r.Post("/quizzes/{quizID}/edit", h.handleEditQuiz)
		r.Post("/quizzes/{quizID}/delete", h.handleDeleteQuiz)

		r.Get("/quizzes/{quizID}/questions/new", h.handleQuestionForm)
		r.Post("/quizzes/{quizID}/questions", h.handleCreateQuestion)
		r.Get("/questions/{questionID}/edit", h.handleEditQuestionForm)
		r.Post("/questions/{questionID}/edit", h.handleEditQuestion)
		r.Post("/questions/{questionID}/delete", h.handleDeleteQuestion)

		r.Get("/search", h.handleSearch)
		r.Get("/summary", h.handleSummary)
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(h.requireRole(model.RoleUser))
		r.Get("/", h.handleUserDashboard)
		r.Get("/logout", h.handleLogout)
		r.Get("/quiz/{quizID}/start", h.handleStartQuiz)
		r.Get("/quiz/{quizID}", h.handleQuizPage)
		r.Post("/quiz/{quizID}/submit", h.handleSubmitQuiz)
		r.Get("/history", h.handleHistory)
		r.Get("/scores.json", h.handleScoresJSON)
	})
}

// page assembles the template envelope: title, principal, pending flash.
func (h *Handler) page(w http.ResponseWriter, r *http.Request, title string, data any) view.Page {
	return view.Page{
		Title:     title,
		Flash:     h.popFlash(w, r),
		Principal: model.PrincipalFromContext(r.Context()),
		Data:      data,
	}
}

// urlID parses a numeric URL parameter.
func urlID(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, key), 10, 64)
}

// serverError logs the error and renders the framework's generic 500 response.
func serverError(w http.ResponseWriter, err error) {
	slog.Error("request failed", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
