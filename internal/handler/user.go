package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	appI18n "quizmaster/internal/i18n"
	"quizmaster/internal/model"
)

type userDashboardData struct {
	SubjectsCount  int
	AttemptedCount int
	Quizzes        []model.Quiz
}

func (h *Handler) handleUserDashboard(w http.ResponseWriter, r *http.Request) {
	p := model.PrincipalFromContext(r.Context())

	quizzes, err := h.store.ListQuizzes()
	if err != nil {
		serverError(w, err)
		return
	}
	subjectsCount, err := h.store.CountSubjects()
	if err != nil {
		serverError(w, err)
		return
	}
	attemptedCount, err := h.store.CountScoresByUser(p.User.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	h.render.Render(w, "user_dashboard.html", h.page(w, r, "Dashboard", userDashboardData{
		SubjectsCount:  subjectsCount,
		AttemptedCount: attemptedCount,
		Quizzes:        quizzes,
	}))
}

func quizStartKey(quizID int64) string {
	return "quiz_start:" + strconv.FormatInt(quizID, 10)
}

// quizExpired reports whether a quiz can no longer be started. A quiz stays
// startable on its scheduled day and for one day after, dates compared in UTC.
func quizExpired(dateOfQuiz, now time.Time) bool {
	today := now.UTC().Truncate(24 * time.Hour)
	date := dateOfQuiz.UTC().Truncate(24 * time.Hour)
	return date.Before(today.AddDate(0, 0, -1))
}

func (h *Handler) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	p := model.PrincipalFromContext(r.Context())

	id, err := urlID(r, "quizID")
	if err != nil {
		h.notFound(w, r, "QuizNotFound", "/user")
		return
	}
	quiz, err := h.store.GetQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if quiz == nil {
		h.notFound(w, r, "QuizNotFound", "/user")
		return
	}

	if quizExpired(quiz.DateOfQuiz, time.Now()) {
		h.setFlash(w, "danger", appI18n.T(r.Context(), "QuizExpired"))
		http.Redirect(w, r, "/user", http.StatusSeeOther)
		return
	}

	questions, err := h.store.ListQuestionsByQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if len(questions) == 0 {
		h.setFlash(w, "warning", appI18n.T(r.Context(), "QuizNoQuestions"))
		http.Redirect(w, r, "/user", http.StatusSeeOther)
		return
	}

	startedAt := time.Now().UTC().Format(time.RFC3339)
	if err := h.store.SetSessionValue(p.SessionID, quizStartKey(id), startedAt); err != nil {
		serverError(w, err)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/user/quiz/%d", id), http.StatusSeeOther)
}

type quizTakeData struct {
	Quiz      model.Quiz
	Questions []model.Question
}

func (h *Handler) handleQuizPage(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "quizID")
	if err != nil {
		h.notFound(w, r, "QuizNotFound", "/user")
		return
	}
	quiz, err := h.store.GetQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if quiz == nil {
		h.notFound(w, r, "QuizNotFound", "/user")
		return
	}
	questions, err := h.store.ListQuestionsByQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}
	h.render.Render(w, "quiz_take.html", h.page(w, r, quiz.Name, quizTakeData{
		Quiz:      *quiz,
		Questions: questions,
	}))
}

type quizResultData struct {
	Message string
}

func (h *Handler) handleSubmitQuiz(w http.ResponseWriter, r *http.Request) {
	p := model.PrincipalFromContext(r.Context())

	id, err := urlID(r, "quizID")
	if err != nil {
		h.notFound(w, r, "QuizNotFound", "/user")
		return
	}
	quiz, err := h.store.GetQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if quiz == nil {
		h.notFound(w, r, "QuizNotFound", "/user")
		return
	}

	startedRaw, err := h.store.GetSessionValue(p.SessionID, quizStartKey(id))
	if err != nil {
		serverError(w, err)
		return
	}
	if startedRaw == "" {
		h.setFlash(w, "warning", appI18n.T(r.Context(), "QuizNotStarted"))
		http.Redirect(w, r, "/user", http.StatusSeeOther)
		return
	}
	startedAt, err := time.Parse(time.RFC3339, startedRaw)
	if err != nil {
		startedAt = time.Now().UTC()
	}

	questions, err := h.store.ListQuestionsByQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}

	correct := 0
	for _, q := range questions {
		answer := r.FormValue(strconv.FormatInt(q.ID, 10))
		if answer == "" {
			h.setFlash(w, "warning", appI18n.T(r.Context(), "IncompleteSubmission"))
			http.Redirect(w, r, fmt.Sprintf("/user/quiz/%d", id), http.StatusSeeOther)
			return
		}
		if answer == q.CorrectAnswer {
			correct++
		}
	}

	// The recorded timestamp is when the attempt started, not when it was
	// submitted.
	_, err = h.store.CreateScore(model.Score{
		QuizID:      id,
		UserID:      p.User.ID,
		Score:       correct,
		TotalScored: len(questions),
		Timestamp:   startedAt,
	})
	if err != nil {
		serverError(w, err)
		return
	}

	if err := h.store.DeleteSessionValue(p.SessionID, quizStartKey(id)); err != nil {
		serverError(w, err)
		return
	}

	h.render.Render(w, "quiz_result.html", h.page(w, r, "Result", quizResultData{
		Message: appI18n.Td(r.Context(), "YourScore", map[string]any{
			"Score": correct,
			"Total": len(questions),
		}),
	}))
}

type historyData struct {
	Scores []model.ScoreRow
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	p := model.PrincipalFromContext(r.Context())

	scores, err := h.store.ListScoresByUser(p.User.ID)
	if err != nil {
		serverError(w, err)
		return
	}
	h.render.Render(w, "history.html", h.page(w, r, "Quiz history", historyData{Scores: scores}))
}

type scoreJSON struct {
	QuizID     int64 `json:"quiz_id"`
	Attempt    int   `json:"attempt"`
	TotalScore int   `json:"total_score"`
}

// handleScoresJSON exposes the learner's attempt history as JSON for the
// dashboard widgets.
func (h *Handler) handleScoresJSON(w http.ResponseWriter, r *http.Request) {
	p := model.PrincipalFromContext(r.Context())

	scores, err := h.store.ListScoresByUser(p.User.ID)
	if err != nil {
		serverError(w, err)
		return
	}

	out := make([]scoreJSON, 0, len(scores))
	for i, s := range scores {
		out = append(out, scoreJSON{
			QuizID:     s.QuizID,
			Attempt:    i + 1,
			TotalScore: s.Score.Score,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		serverError(w, err)
	}
}
