package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	appI18n "quizmaster/internal/i18n"
	"quizmaster/internal/model"
	"quizmaster/internal/report"
)

type adminDashboardData struct {
	Subjects     []model.Subject
	Scores       []model.ScoreRow
	UsersCount   int
	QuizzesCount int
}

func (h *Handler) handleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.store.ListSubjects()
	if err != nil {
		serverError(w, err)
		return
	}
	scores, err := h.store.LatestScores(50)
	if err != nil {
		serverError(w, err)
		return
	}
	usersCount, err := h.store.CountLearners()
	if err != nil {
		serverError(w, err)
		return
	}
	quizzesCount, err := h.store.CountQuizzes()
	if err != nil {
		serverError(w, err)
		return
	}
	h.render.Render(w, "admin_dashboard.html", h.page(w, r, "Admin dashboard", adminDashboardData{
		Subjects:     subjects,
		Scores:       scores,
		UsersCount:   usersCount,
		QuizzesCount: quizzesCount,
	}))
}

// notFound flashes the given message and sends the admin back to a safe page.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, msgID, target string) {
	h.setFlash(w, "danger", appI18n.T(r.Context(), msgID))
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// --- Subjects ---

type entityFormData struct {
	Action      string
	Name        string
	Description string
	Error       string
}

func (h *Handler) handleSubjectForm(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, "subject_form.html", h.page(w, r, "New subject", entityFormData{
		Action: "/admin/subjects",
	}))
}

func (h *Handler) handleCreateSubject(w http.ResponseWriter, r *http.Request) {
	form := subjectForm{Name: r.FormValue("name"), Description: r.FormValue("description")}
	echo := entityFormData{Action: "/admin/subjects", Name: form.Name, Description: form.Description}

	if msgID := h.validateForm(form); msgID != "" {
		echo.Error = appI18n.T(r.Context(), msgID)
		h.render.Render(w, "subject_form.html", h.page(w, r, "New subject", echo))
		return
	}

	_, err := h.store.CreateSubject(model.Subject{Name: form.Name, Description: form.Description})
	if isUniqueViolation(err) {
		echo.Error = appI18n.T(r.Context(), "SubjectNameTaken")
		h.render.Render(w, "subject_form.html", h.page(w, r, "New subject", echo))
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	h.setFlash(w, "success", appI18n.T(r.Context(), "SubjectCreated"))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

type subjectViewData struct {
	Subject  model.Subject
	Chapters []model.Chapter
}

func (h *Handler) handleViewSubject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "subjectID")
	if err != nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}
	subject, err := h.store.GetSubject(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if subject == nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}
	chapters, err := h.store.ListChaptersBySubject(id)
	if err != nil {
		serverError(w, err)
		return
	}
	h.render.Render(w, "subject_view.html", h.page(w, r, subject.Name, subjectViewData{
		Subject:  *subject,
		Chapters: chapters,
	}))
}

func (h *Handler) handleEditSubjectForm(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "subjectID")
	if err != nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}
	subject, err := h.store.GetSubject(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if subject == nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}
	h.render.Render(w, "subject_form.html", h.page(w, r, "Edit subject", entityFormData{
		Action:      fmt.Sprintf("/admin/subjects/%d/edit", id),
		Name:        subject.Name,
		Description: subject.Description,
	}))
}

func (h *Handler) handleEditSubject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "subjectID")
	if err != nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}
	subject, err := h.store.GetSubject(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if subject == nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}

	form := subjectForm{Name: r.FormValue("name"), Description: r.FormValue("description")}
	echo := entityFormData{
		Action:      fmt.Sprintf("/admin/subjects/%d/edit", id),
		Name:        form.Name,
		Description: form.Description,
	}
	if msgID := h.validateForm(form); msgID != "" {
		echo.Error = appI18n.T(r.Context(), msgID)
		h.render.Render(w, "subject_form.html", h.page(w, r, "Edit subject", echo))
		return
	}

	err = h.store.UpdateSubject(model.Subject{ID: id, Name: form.Name, Description: form.Description})
	if isUniqueViolation(err) {
		echo.Error = appI18n.T(r.Context(), "SubjectNameTaken")
		h.render.Render(w, "subject_form.html", h.page(w, r, "Edit subject", echo))
		return
	}
	if err != nil {
		serverError(w, err)
		return
	}

	h.setFlash(w, "success", appI18n.T(r.Context(), "SubjectUpdated"))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *Handler) handleDeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "subjectID")
	if err != nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}
	subject, err := h.store.GetSubject(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if subject == nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}
	if err := h.store.DeleteSubject(id); err != nil {
		serverError(w, err)
		return
	}
	h.setFlash(w, "success", appI18n.T(r.Context(), "SubjectDeleted"))
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// --- Chapters ---

func (h *Handler) handleChapterForm(w http.ResponseWriter, r *http.Request) {
	subjectID, err := urlID(r, "subjectID")
	if err != nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}
	h.render.Render(w, "chapter_form.html", h.page(w, r, "New chapter", entityFormData{
		Action: fmt.Sprintf("/admin/subjects/%d/chapters", subjectID),
	}))
}

func (h *Handler) handleCreateChapter(w http.ResponseWriter, r *http.Request) {
	subjectID, err := urlID(r, "subjectID")
	if err != nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}
	subject, err := h.store.GetSubject(subjectID)
	if err != nil {
		serverError(w, err)
		return
	}
	if subject == nil {
		h.notFound(w, r, "SubjectNotFound", "/admin")
		return
	}

	form := chapterForm{Name: r.FormValue("name"), Description: r.FormValue("description")}
	echo := entityFormData{
		Action:      fmt.Sprintf("/admin/subjects/%d/chapters", subjectID),
		Name:        form.Name,
		Description: form.Description,
	}
	if msgID := h.validateForm(form); msgID != "" {
		echo.Error = appI18n.T(r.Context(), msgID)
		h.render.Render(w, "chapter_form.html", h.page(w, r, "New chapter", echo))
		return
	}

	_, err = h.store.CreateChapter(model.Chapter{
		Name:        form.Name,
		Description: form.Description,
		SubjectID:   subjectID,
	})
	if err != nil {
		serverError(w, err)
		return
	}

	h.setFlash(w, "success", appI18n.T(r.Context(), "ChapterCreated"))
	http.Redirect(w, r, fmt.Sprintf("/admin/subjects/%d", subjectID), http.StatusSeeOther)
}

type chapterViewData struct {
	Chapter model.Chapter
	Quizzes []model.Quiz
}

func (h *Handler) handleViewChapter(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "chapterID")
	if err != nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}
	chapter, err := h.store.GetChapter(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if chapter == nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}
	quizzes, err := h.store.ListQuizzesByChapter(id)
	if err != nil {
		serverError(w, err)
		return
	}
	h.render.Render(w, "chapter_view.html", h.page(w, r, chapter.Name, chapterViewData{
		Chapter: *chapter,
		Quizzes: quizzes,
	}))
}

func (h *Handler) handleEditChapterForm(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "chapterID")
	if err != nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}
	chapter, err := h.store.GetChapter(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if chapter == nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}
	h.render.Render(w, "chapter_form.html", h.page(w, r, "Edit chapter", entityFormData{
		Action:      fmt.Sprintf("/admin/chapters/%d/edit", id),
		Name:        chapter.Name,
		Description: chapter.Description,
	}))
}

func (h *Handler) handleEditChapter(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "chapterID")
	if err != nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}
	chapter, err := h.store.GetChapter(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if chapter == nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}

	form := chapterForm{Name: r.FormValue("name"), Description: r.FormValue("description")}
	if msgID := h.validateForm(form); msgID != "" {
		h.render.Render(w, "chapter_form.html", h.page(w, r, "Edit chapter", entityFormData{
			Action:      fmt.Sprintf("/admin/chapters/%d/edit", id),
			Name:        form.Name,
			Description: form.Description,
			Error:       appI18n.T(r.Context(), msgID),
		}))
		return
	}

	err = h.store.UpdateChapter(model.Chapter{ID: id, Name: form.Name, Description: form.Description})
	if err != nil {
		serverError(w, err)
		return
	}

	h.setFlash(w, "success", appI18n.T(r.Context(), "ChapterUpdated"))
	http.Redirect(w, r, fmt.Sprintf("/admin/subjects/%d", chapter.SubjectID), http.StatusSeeOther)
}

func (h *Handler) handleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "chapterID")
	if err != nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}
	chapter, err := h.store.GetChapter(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if chapter == nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}
	if err := h.store.DeleteChapter(id); err != nil {
		serverError(w, err)
		return
	}
	h.setFlash(w, "success", appI18n.T(r.Context(), "ChapterDeleted"))
	http.Redirect(w, r, fmt.Sprintf("/admin/subjects/%d", chapter.SubjectID), http.StatusSeeOther)
}

// --- Quizzes ---

type quizFormData struct {
	Action   string
	Name     string
	Date     string
	Duration string
	Remarks  string
	Error    string
}

func (h *Handler) handleQuizForm(w http.ResponseWriter, r *http.Request) {
	chapterID, err := urlID(r, "chapterID")
	if err != nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}
	h.render.Render(w, "quiz_form.html", h.page(w, r, "New quiz", quizFormData{
		Action: fmt.Sprintf("/admin/chapters/%d/quizzes", chapterID),
	}))
}

func (h *Handler) parseQuizForm(r *http.Request) (quizForm, quizFormData) {
	duration, _ := strconv.Atoi(r.FormValue("time_duration"))
	form := quizForm{
		Name:     r.FormValue("name"),
		Date:     r.FormValue("date_of_quiz"),
		Duration: duration,
		Remarks:  r.FormValue("remarks"),
	}
	echo := quizFormData{
		Name:     form.Name,
		Date:     form.Date,
		Duration: r.FormValue("time_duration"),
		Remarks:  form.Remarks,
	}
	return form, echo
}

func (h *Handler) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	chapterID, err := urlID(r, "chapterID")
	if err != nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}
	chapter, err := h.store.GetChapter(chapterID)
	if err != nil {
		serverError(w, err)
		return
	}
	if chapter == nil {
		h.notFound(w, r, "ChapterNotFound", "/admin")
		return
	}

	form, echo := h.parseQuizForm(r)
	echo.Action = fmt.Sprintf("/admin/chapters/%d/quizzes", chapterID)
	if msgID := h.validateForm(form); msgID != "" {
		echo.Error = appI18n.T(r.Context(), msgID)
		h.render.Render(w, "quiz_form.html", h.page(w, r, "New quiz", echo))
		return
	}

	date, err := time.Parse("2006-01-02", form.Date)
	if err != nil {
		echo.Error = appI18n.T(r.Context(), "InvalidDateFormat")
		h.render.Render(w, "quiz_form.html", h.page(w, r, "New quiz", echo))
		return
	}

	_, err = h.store.CreateQuiz(model.Quiz{
		Name:         form.Name,
		DateOfQuiz:   date,
		TimeDuration: form.Duration,
		Remarks:      form.Remarks,
		ChapterID:    chapterID,
	})
	if err != nil {
		serverError(w, err)
		return
	}

	h.setFlash(w, "success", appI18n.T(r.Context(), "QuizCreated"))
	http.Redirect(w, r, fmt.Sprintf("/admin/chapters/%d", chapterID), http.StatusSeeOther)
}

type quizViewData struct {
	Quiz      model.Quiz
	Questions []model.Question
}

func (h *Handler) handleViewQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "quizID")
	if err != nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}
	quiz, err := h.store.GetQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if quiz == nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}
	questions, err := h.store.ListQuestionsByQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}
	h.render.Render(w, "quiz_view.html", h.page(w, r, quiz.Name, quizViewData{
		Quiz:      *quiz,
		Questions: questions,
	}))
}

func (h *Handler) handleEditQuizForm(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "quizID")
	if err != nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}
	quiz, err := h.store.GetQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if quiz == nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}
	h.render.Render(w, "quiz_form.html", h.page(w, r, "Edit quiz", quizFormData{
		Action:   fmt.Sprintf("/admin/quizzes/%d/edit", id),
		Name:     quiz.Name,
		Date:     quiz.DateOfQuiz.Format("2006-01-02"),
		Duration: strconv.Itoa(quiz.TimeDuration),
		Remarks:  quiz.Remarks,
	}))
}

func (h *Handler) handleEditQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "quizID")
	if err != nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}
	quiz, err := h.store.GetQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if quiz == nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}

	form, echo := h.parseQuizForm(r)
	echo.Action = fmt.Sprintf("/admin/quizzes/%d/edit", id)
	if msgID := h.validateForm(form); msgID != "" {
		echo.Error = appI18n.T(r.Context(), msgID)
		h.render.Render(w, "quiz_form.html", h.page(w, r, "Edit quiz", echo))
		return
	}

	date, err := time.Parse("2006-01-02", form.Date)
	if err != nil {
		echo.Error = appI18n.T(r.Context(), "InvalidDateFormat")
		h.render.Render(w, "quiz_form.html", h.page(w, r, "Edit quiz", echo))
		return
	}

	err = h.store.UpdateQuiz(model.Quiz{
		ID:           id,
		Name:         form.Name,
		DateOfQuiz:   date,
		TimeDuration: form.Duration,
		Remarks:      form.Remarks,
	})
	if err != nil {
		serverError(w, err)
		return
	}

	h.setFlash(w, "success", appI18n.T(r.Context(), "QuizUpdated"))
	http.Redirect(w, r, fmt.Sprintf("/admin/chapters/%d", quiz.ChapterID), http.StatusSeeOther)
}

func (h *Handler) handleDeleteQuiz(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "quizID")
	if err != nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}
	quiz, err := h.store.GetQuiz(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if quiz == nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}
	if err := h.store.DeleteQuiz(id); err != nil {
		serverError(w, err)
		return
	}
	h.setFlash(w, "success", appI18n.T(r.Context(), "QuizDeleted"))
	http.Redirect(w, r, fmt.Sprintf("/admin/chapters/%d", quiz.ChapterID), http.StatusSeeOther)
}

// --- Questions ---

type questionFormData struct {
	Action        string
	Text          string
	Option1       string
	Option2       string
	Option3       string
	Option4       string
	CorrectOption string
	Error         string
}

func (h *Handler) handleQuestionForm(w http.ResponseWriter, r *http.Request) {
	quizID, err := urlID(r, "quizID")
	if err != nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}
	h.render.Render(w, "question_form.html", h.page(w, r, "New question", questionFormData{
		Action: fmt.Sprintf("/admin/quizzes/%d/questions", quizID),
	}))
}

func parseQuestionForm(r *http.Request) (questionForm, questionFormData) {
	form := questionForm{
		Text:          r.FormValue("question_statement"),
		Option1:       r.FormValue("option_1"),
		Option2:       r.FormValue("option_2"),
		Option3:       r.FormValue("option_3"),
		Option4:       r.FormValue("option_4"),
		CorrectOption: r.FormValue("correct_option"),
	}
	echo := questionFormData{
		Text:          form.Text,
		Option1:       form.Option1,
		Option2:       form.Option2,
		Option3:       form.Option3,
		Option4:       form.Option4,
		CorrectOption: form.CorrectOption,
	}
	return form, echo
}

func (h *Handler) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	quizID, err := urlID(r, "quizID")
	if err != nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}
	quiz, err := h.store.GetQuiz(quizID)
	if err != nil {
		serverError(w, err)
		return
	}
	if quiz == nil {
		h.notFound(w, r, "QuizNotFound", "/admin")
		return
	}

	form, echo := parseQuestionForm(r)
	echo.Action = fmt.Sprintf("/admin/quizzes/%d/questions", quizID)
	if msgID := h.validateForm(form); msgID != "" {
		echo.Error = appI18n.T(r.Context(), msgID)
		h.render.Render(w, "question_form.html", h.page(w, r, "New question", echo))
		return
	}

	_, err = h.store.CreateQuestion(model.Question{
		QuizID:        quizID,
		Text:          form.Text,
		Option1:       form.Option1,
		Option2:       form.Option2,
		Option3:       form.Option3,
		Option4:       form.Option4,
		CorrectAnswer: form.CorrectOption,
	})
	if err != nil {
		serverError(w, err)
		return
	}

	h.setFlash(w, "success", appI18n.T(r.Context(), "QuestionCreated"))
	http.Redirect(w, r, fmt.Sprintf("/admin/quizzes/%d", quizID), http.StatusSeeOther)
}

func (h *Handler) handleEditQuestionForm(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "questionID")
	if err != nil {
		h.notFound(w, r, "QuestionNotFound", "/admin")
		return
	}
	question, err := h.store.GetQuestion(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if question == nil {
		h.notFound(w, r, "QuestionNotFound", "/admin")
		return
	}
	h.render.Render(w, "question_form.html", h.page(w, r, "Edit question", questionFormData{
		Action:        fmt.Sprintf("/admin/questions/%d/edit", id),
		Text:          question.Text,
		Option1:       question.Option1,
		Option2:       question.Option2,
		Option3:       question.Option3,
		Option4:       question.Option4,
		CorrectOption: question.CorrectAnswer,
	}))
}

func (h *Handler) handleEditQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "questionID")
	if err != nil {
		h.notFound(w, r, "QuestionNotFound", "/admin")
		return
	}
	question, err := h.store.GetQuestion(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if question == nil {
		h.notFound(w, r, "QuestionNotFound", "/admin")
		return
	}

	form, echo := parseQuestionForm(r)
	echo.Action = fmt.Sprintf("/admin/questions/%d/edit", id)
	if msgID := h.validateForm(form); msgID != "" {
		echo.Error = appI18n.T(r.Context(), msgID)
		h.render.Render(w, "question_form.html", h.page(w, r, "Edit question", echo))
		return
	}

	err = h.store.UpdateQuestion(model.Question{
		ID:            id,
		Text:          form.Text,
		Option1:       form.Option1,
		Option2:       form.Option2,
		Option3:       form.Option3,
		Option4:       form.Option4,
		CorrectAnswer: form.CorrectOption,
	})
	if err != nil {
		serverError(w, err)
		return
	}

	h.setFlash(w, "success", appI18n.T(r.Context(), "QuestionUpdated"))
	http.Redirect(w, r, fmt.Sprintf("/admin/quizzes/%d", question.QuizID), http.StatusSeeOther)
}

func (h *Handler) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r, "questionID")
	if err != nil {
		h.notFound(w, r, "QuestionNotFound", "/admin")
		return
	}
	question, err := h.store.GetQuestion(id)
	if err != nil {
		serverError(w, err)
		return
	}
	if question == nil {
		h.notFound(w, r, "QuestionNotFound", "/admin")
		return
	}
	if err := h.store.DeleteQuestion(id); err != nil {
		serverError(w, err)
		return
	}
	h.setFlash(w, "success", appI18n.T(r.Context(), "QuestionDeleted"))
	http.Redirect(w, r, fmt.Sprintf("/admin/quizzes/%d", question.QuizID), http.StatusSeeOther)
}

// --- Search and reporting ---

type searchData struct {
	Query   string
	Results model.SearchResults
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	results, err := h.store.SearchByName(query)
	if err != nil {
		serverError(w, err)
		return
	}
	h.render.Render(w, "search.html", h.page(w, r, "Search", searchData{
		Query:   query,
		Results: results,
	}))
}

type summaryData struct {
	BarURL string
	PieURL string
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	quizCounts, err := h.store.QuizCountBySubject()
	if err != nil {
		serverError(w, err)
		return
	}
	attempts, err := h.store.AttemptsPerUser()
	if err != nil {
		serverError(w, err)
		return
	}

	var data summaryData
	if len(quizCounts) > 0 {
		name, err := h.charts.Publish("quizzes-by-subject", func(w io.Writer) error {
			return report.QuizzesPerSubject(w, quizCounts)
		})
		if err != nil {
			serverError(w, err)
			return
		}
		data.BarURL = "/static/charts/" + name
	}

	totalAttempts := 0
	for _, nc := range attempts {
		totalAttempts += nc.Count
	}
	if totalAttempts > 0 {
		name, err := h.charts.Publish("attempts-by-user", func(w io.Writer) error {
			return report.AttemptsPerUser(w, attempts)
		})
		if err != nil {
			serverError(w, err)
			return
		}
		data.PieURL = "/static/charts/" + name
	}

	h.render.Render(w, "summary.html", h.page(w, r, "Summary", data))
}
