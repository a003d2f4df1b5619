package store

import (
	"testing"
	"time"

	"quizmaster/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createTestUser(t *testing.T, s *Store, name, email string, admin bool) int64 {
	t.Helper()
	id, err := s.CreateUser(model.User{
		Name:          name,
		Email:         email,
		Password:      "secret",
		Qualification: "BSc",
		DOB:           time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		IsAdmin:       admin,
	})
	if err != nil {
		t.Fatalf("createTestUser: %v", err)
	}
	return id
}

func createTestSubject(t *testing.T, s *Store, name string) int64 {
	t.Helper()
	id, err := s.CreateSubject(model.Subject{Name: name, Description: "about " + name})
	if err != nil {
		t.Fatalf("createTestSubject: %v", err)
	}
	return id
}

func createTestChapter(t *testing.T, s *Store, subjectID int64, name string) int64 {
	t.Helper()
	id, err := s.CreateChapter(model.Chapter{
		Name:        name,
		Description: "about " + name,
		SubjectID:   subjectID,
	})
	if err != nil {
		t.Fatalf("createTestChapter: %v", err)
	}
	return id
}

func createTestQuiz(t *testing.T, s *Store, chapterID int64, name string) int64 {
	t.Helper()
	id, err := s.CreateQuiz(model.Quiz{
		Name:         name,
		DateOfQuiz:   time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		TimeDuration: 30,
		Remarks:      "remarks for " + name,
		ChapterID:    chapterID,
	})
	if err != nil {
		t.Fatalf("createTestQuiz: %v", err)
	}
	return id
}

func createTestQuestion(t *testing.T, s *Store, quizID int64, text, correct string) int64 {
	t.Helper()
	id, err := s.CreateQuestion(model.Question{
		QuizID:        quizID,
		Text:          text,
		Option1:       "a",
		Option2:       "b",
		Option3:       "c",
		Option4:       "d",
		CorrectAnswer: correct,
	})
	if err != nil {
		t.Fatalf("createTestQuestion: %v", err)
	}
	return id
}

func TestUserCRUD(t *testing.T) {
	s := newTestStore(t)

	// Missing email yields nil without error.
	u, err := s.GetUserByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}

	id := createTestUser(t, s, "Alice", "alice@example.com", false)
	u, err = s.GetUserByID(id)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if u == nil || u.Name != "Alice" {
		t.Fatalf("expected Alice, got %+v", u)
	}
	if u.Password != "secret" {
		t.Errorf("expected password stored verbatim, got %q", u.Password)
	}
	if u.Role() != model.RoleUser {
		t.Errorf("expected role user, got %q", u.Role())
	}

	// Duplicate email is rejected by the unique constraint.
	_, err = s.CreateUser(model.User{
		Name: "Alice2", Email: "alice@example.com", Password: "x",
		Qualification: "x", DOB: time.Now(),
	})
	if err == nil {
		t.Error("expected unique constraint error for duplicate email")
	}

	createTestUser(t, s, "Admin", "admin@example.com", true)
	count, err := s.CountLearners()
	if err != nil {
		t.Fatalf("CountLearners: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 learner, got %d", count)
	}
}

func TestSubjectCRUD(t *testing.T) {
	s := newTestStore(t)

	id := createTestSubject(t, s, "Physics")
	sub, err := s.GetSubject(id)
	if err != nil {
		t.Fatalf("GetSubject: %v", err)
	}
	if sub == nil || sub.Name != "Physics" {
		t.Fatalf("expected Physics, got %+v", sub)
	}

	// Missing subject yields nil without error.
	sub, err = s.GetSubject(9999)
	if err != nil {
		t.Fatalf("GetSubject missing: %v", err)
	}
	if sub != nil {
		t.Fatalf("expected nil subject, got %+v", sub)
	}

	// Duplicate name is rejected.
	if _, err := s.CreateSubject(model.Subject{Name: "Physics", Description: "x"}); err == nil {
		t.Error("expected unique constraint error for duplicate subject name")
	}

	if err := s.UpdateSubject(model.Subject{ID: id, Name: "Applied Physics", Description: "new"}); err != nil {
		t.Fatalf("UpdateSubject: %v", err)
	}
	sub, _ = s.GetSubject(id)
	if sub.Name != "Applied Physics" || sub.Description != "new" {
		t.Errorf("update not applied: %+v", sub)
	}

	// ListSubjects orders by name.
	createTestSubject(t, s, "Chemistry")
	subjects, err := s.ListSubjects()
	if err != nil {
		t.Fatalf("ListSubjects: %v", err)
	}
	if len(subjects) != 2 || subjects[0].Name != "Applied Physics" || subjects[1].Name != "Chemistry" {
		t.Errorf("unexpected order: %+v", subjects)
	}
}

func TestDeleteSubjectCascades(t *testing.T) {
	s := newTestStore(t)

	userID := createTestUser(t, s, "Bob", "bob@example.com", false)

	// A full subtree under the doomed subject.
	subID := createTestSubject(t, s, "Doomed")
	chID := createTestChapter(t, s, subID, "Ch1")
	quizID := createTestQuiz(t, s, chID, "Q1")
	createTestQuestion(t, s, quizID, "q", "1")
	_, err := s.CreateScore(model.Score{
		UserID: userID, QuizID: quizID, Score: 1, TotalScored: 1, Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateScore: %v", err)
	}

	// A sibling subtree that must survive.
	otherSubID := createTestSubject(t, s, "Survivor")
	otherChID := createTestChapter(t, s, otherSubID, "Ch2")
	otherQuizID := createTestQuiz(t, s, otherChID, "Q2")
	otherQID := createTestQuestion(t, s, otherQuizID, "q2", "2")
	_, err = s.CreateScore(model.Score{
		UserID: userID, QuizID: otherQuizID, Score: 1, TotalScored: 1, Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateScore: %v", err)
	}

	if err := s.DeleteSubject(subID); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}

	if sub, _ := s.GetSubject(subID); sub != nil {
		t.Error("subject not deleted")
	}
	if ch, _ := s.GetChapter(chID); ch != nil {
		t.Error("chapter not deleted")
	}
	if q, _ := s.GetQuiz(quizID); q != nil {
		t.Error("quiz not deleted")
	}
	if n, _ := s.CountScoresByUser(userID); n != 1 {
		t.Errorf("expected 1 surviving score, got %d", n)
	}

	// Nothing outside the subtree was touched.
	if sub, _ := s.GetSubject(otherSubID); sub == nil {
		t.Error("sibling subject deleted")
	}
	if ch, _ := s.GetChapter(otherChID); ch == nil {
		t.Error("sibling chapter deleted")
	}
	if q, _ := s.GetQuiz(otherQuizID); q == nil {
		t.Error("sibling quiz deleted")
	}
	if q, _ := s.GetQuestion(otherQID); q == nil {
		t.Error("sibling question deleted")
	}
}

func TestDeleteQuizCascades(t *testing.T) {
	s := newTestStore(t)

	userID := createTestUser(t, s, "Bob", "bob@example.com", false)
	subID := createTestSubject(t, s, "S")
	chID := createTestChapter(t, s, subID, "C")
	quizID := createTestQuiz(t, s, chID, "Q")
	qID := createTestQuestion(t, s, quizID, "q", "1")
	_, err := s.CreateScore(model.Score{
		UserID: userID, QuizID: quizID, Score: 0, TotalScored: 1, Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("CreateScore: %v", err)
	}

	if err := s.DeleteQuiz(quizID); err != nil {
		t.Fatalf("DeleteQuiz: %v", err)
	}
	if q, _ := s.GetQuestion(qID); q != nil {
		t.Error("question not deleted")
	}
	if n, _ := s.CountScoresByUser(userID); n != 0 {
		t.Errorf("expected 0 scores, got %d", n)
	}
	// The parent chapter is untouched.
	if ch, _ := s.GetChapter(chID); ch == nil {
		t.Error("chapter should survive quiz deletion")
	}
}

func TestScoresAndHistory(t *testing.T) {
	s := newTestStore(t)

	userID := createTestUser(t, s, "Carol", "carol@example.com", false)
	subID := createTestSubject(t, s, "S")
	chID := createTestChapter(t, s, subID, "C")
	quizID := createTestQuiz(t, s, chID, "Algebra basics")

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := s.CreateScore(model.Score{
			UserID:      userID,
			QuizID:      quizID,
			Score:       i,
			TotalScored: 3,
			Timestamp:   base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("CreateScore: %v", err)
		}
	}

	history, err := s.ListScoresByUser(userID)
	if err != nil {
		t.Fatalf("ListScoresByUser: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 attempts, got %d", len(history))
	}
	if history[0].QuizName != "Algebra basics" || history[0].UserName != "Carol" {
		t.Errorf("join names wrong: %+v", history[0])
	}
	// Ordered by insertion.
	if history[0].Score.Score != 0 || history[2].Score.Score != 2 {
		t.Errorf("unexpected order: %+v", history)
	}

	// LatestScores returns newest first and honors the limit.
	latest, err := s.LatestScores(2)
	if err != nil {
		t.Fatalf("LatestScores: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(latest))
	}
	if latest[0].Score.Score != 2 || latest[1].Score.Score != 1 {
		t.Errorf("expected newest first, got %+v", latest)
	}

	if n, _ := s.CountScoresByUser(userID); n != 3 {
		t.Errorf("expected 3 attempts, got %d", n)
	}
	if n, _ := s.CountScores(); n != 3 {
		t.Errorf("expected 3 total attempts, got %d", n)
	}
}

func TestReportAggregations(t *testing.T) {
	s := newTestStore(t)

	mathID := createTestSubject(t, s, "Math")
	createTestSubject(t, s, "Zoology") // no quizzes
	chID := createTestChapter(t, s, mathID, "Algebra")
	q1 := createTestQuiz(t, s, chID, "Quiz 1")
	createTestQuiz(t, s, chID, "Quiz 2")

	counts, err := s.QuizCountBySubject()
	if err != nil {
		t.Fatalf("QuizCountBySubject: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 subjects, got %d", len(counts))
	}
	if counts[0].Name != "Math" || counts[0].Count != 2 {
		t.Errorf("expected Math=2, got %+v", counts[0])
	}
	if counts[1].Name != "Zoology" || counts[1].Count != 0 {
		t.Errorf("expected Zoology=0, got %+v", counts[1])
	}

	aliceID := createTestUser(t, s, "Alice", "alice@example.com", false)
	createTestUser(t, s, "Bob", "bob@example.com", false) // no attempts
	for i := 0; i < 2; i++ {
		_, err := s.CreateScore(model.Score{
			UserID: aliceID, QuizID: q1, Score: 1, TotalScored: 1, Timestamp: time.Now(),
		})
		if err != nil {
			t.Fatalf("CreateScore: %v", err)
		}
	}

	attempts, err := s.AttemptsPerUser()
	if err != nil {
		t.Fatalf("AttemptsPerUser: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 users, got %d", len(attempts))
	}
	if attempts[0].Name != "Alice" || attempts[0].Count != 2 {
		t.Errorf("expected Alice=2, got %+v", attempts[0])
	}
	if attempts[1].Name != "Bob" || attempts[1].Count != 0 {
		t.Errorf("expected Bob=0, got %+v", attempts[1])
	}
}

func TestSearchByName(t *testing.T) {
	s := newTestStore(t)

	createTestUser(t, s, "Maria Curie", "maria@example.com", false)
	subID := createTestSubject(t, s, "Mathematics")
	chID := createTestChapter(t, s, subID, "Linear Algebra")
	createTestQuiz(t, s, chID, "Matrices 101")
	createTestSubject(t, s, "History")

	tests := []struct {
		name                                       string
		query                                      string
		wantUsers, wantSubjects, wantChaps, wantQz int
	}{
		{"empty query", "", 0, 0, 0, 0},
		{"whitespace only", "   ", 0, 0, 0, 0},
		{"case-insensitive partial", "ma", 1, 1, 0, 1},
		{"uppercase", "MATH", 0, 1, 0, 0},
		{"chapter hit", "algebra", 0, 0, 1, 0},
		{"no match", "zzz", 0, 0, 0, 0},
		{"like metachar literal", "100%", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.SearchByName(tt.query)
			if err != nil {
				t.Fatalf("SearchByName: %v", err)
			}
			if len(res.Users) != tt.wantUsers {
				t.Errorf("users: expected %d, got %d", tt.wantUsers, len(res.Users))
			}
			if len(res.Subjects) != tt.wantSubjects {
				t.Errorf("subjects: expected %d, got %d", tt.wantSubjects, len(res.Subjects))
			}
			if len(res.Chapters) != tt.wantChaps {
				t.Errorf("chapters: expected %d, got %d", tt.wantChaps, len(res.Chapters))
			}
			if len(res.Quizzes) != tt.wantQz {
				t.Errorf("quizzes: expected %d, got %d", tt.wantQz, len(res.Quizzes))
			}
		})
	}
}

func TestWebSessionLifecycle(t *testing.T) {
	s := newTestStore(t)

	userID := createTestUser(t, s, "Dana", "dana@example.com", false)

	token, err := s.CreateWebSession(userID, model.RoleUser)
	if err != nil {
		t.Fatalf("CreateWebSession: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	sess, err := s.GetWebSession(token)
	if err != nil {
		t.Fatalf("GetWebSession: %v", err)
	}
	if sess == nil || sess.UserID != userID || sess.Role != model.RoleUser {
		t.Fatalf("unexpected session: %+v", sess)
	}

	// Unknown token yields nil without error.
	sess, err = s.GetWebSession("no-such-token")
	if err != nil {
		t.Fatalf("GetWebSession unknown: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}

	if err := s.DeleteWebSession(token); err != nil {
		t.Fatalf("DeleteWebSession: %v", err)
	}
	sess, _ = s.GetWebSession(token)
	if sess != nil {
		t.Error("session should be gone after delete")
	}
}

func TestSessionValues(t *testing.T) {
	s := newTestStore(t)

	userID := createTestUser(t, s, "Eve", "eve@example.com", false)
	token, err := s.CreateWebSession(userID, model.RoleUser)
	if err != nil {
		t.Fatalf("CreateWebSession: %v", err)
	}

	// Missing key yields empty string without error.
	v, err := s.GetSessionValue(token, "quiz_start:1")
	if err != nil {
		t.Fatalf("GetSessionValue: %v", err)
	}
	if v != "" {
		t.Errorf("expected empty value, got %q", v)
	}

	if err := s.SetSessionValue(token, "quiz_start:1", "2026-03-01T10:00:00Z"); err != nil {
		t.Fatalf("SetSessionValue: %v", err)
	}
	v, _ = s.GetSessionValue(token, "quiz_start:1")
	if v != "2026-03-01T10:00:00Z" {
		t.Errorf("expected stored value, got %q", v)
	}

	// Upsert overwrites.
	if err := s.SetSessionValue(token, "quiz_start:1", "2026-03-01T11:00:00Z"); err != nil {
		t.Fatalf("SetSessionValue update: %v", err)
	}
	v, _ = s.GetSessionValue(token, "quiz_start:1")
	if v != "2026-03-01T11:00:00Z" {
		t.Errorf("expected updated value, got %q", v)
	}

	if err := s.DeleteSessionValue(token, "quiz_start:1"); err != nil {
		t.Fatalf("DeleteSessionValue: %v", err)
	}
	v, _ = s.GetSessionValue(token, "quiz_start:1")
	if v != "" {
		t.Errorf("expected value gone, got %q", v)
	}

	// Deleting the session removes its values too.
	if err := s.SetSessionValue(token, "k", "v"); err != nil {
		t.Fatalf("SetSessionValue: %v", err)
	}
	if err := s.DeleteWebSession(token); err != nil {
		t.Fatalf("DeleteWebSession: %v", err)
	}
	v, _ = s.GetSessionValue(token, "k")
	if v != "" {
		t.Errorf("expected value gone with session, got %q", v)
	}
}

func TestQuestionCRUD(t *testing.T) {
	s := newTestStore(t)

	subID := createTestSubject(t, s, "S")
	chID := createTestChapter(t, s, subID, "C")
	quizID := createTestQuiz(t, s, chID, "Q")

	id := createTestQuestion(t, s, quizID, "What is 2+2?", "3")
	q, err := s.GetQuestion(id)
	if err != nil {
		t.Fatalf("GetQuestion: %v", err)
	}
	if q == nil || q.Text != "What is 2+2?" || q.CorrectAnswer != "3" {
		t.Fatalf("unexpected question: %+v", q)
	}

	q.CorrectAnswer = "4"
	if err := s.UpdateQuestion(*q); err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	q, _ = s.GetQuestion(id)
	if q.CorrectAnswer != "4" {
		t.Errorf("expected updated answer, got %q", q.CorrectAnswer)
	}

	createTestQuestion(t, s, quizID, "Second", "1")
	qs, err := s.ListQuestionsByQuiz(quizID)
	if err != nil {
		t.Fatalf("ListQuestionsByQuiz: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}

	if err := s.DeleteQuestion(id); err != nil {
		t.Fatalf("DeleteQuestion: %v", err)
	}
	if q, _ := s.GetQuestion(id); q != nil {
		t.Error("question not deleted")
	}
}
