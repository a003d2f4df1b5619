package store

import (
	"database/sql"

	"quizmaster/internal/model"
)

// CreateQuiz inserts a new quiz under its chapter.
func (s *Store) CreateQuiz(q model.Quiz) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO quizzes (name, date_of_quiz, time_duration, remarks, chapter_id)
		 VALUES (?, ?, ?, ?, ?)`,
		q.Name, q.DateOfQuiz, q.TimeDuration, q.Remarks, q.ChapterID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetQuiz returns a quiz by ID, or nil if none exists.
func (s *Store) GetQuiz(id int64) (*model.Quiz, error) {
	var q model.Quiz
	err := s.db.QueryRow(
		`SELECT id, name, date_of_quiz, time_duration, remarks, chapter_id
		 FROM quizzes WHERE id = ?`, id,
	).Scan(&q.ID, &q.Name, &q.DateOfQuiz, &q.TimeDuration, &q.Remarks, &q.ChapterID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuizzes returns every quiz ordered by ID.
func (s *Store) ListQuizzes() ([]model.Quiz, error) {
	return s.listQuizzes(`SELECT id, name, date_of_quiz, time_duration, remarks, chapter_id
		FROM quizzes ORDER BY id`)
}

// ListQuizzesByChapter returns a chapter's quizzes ordered by ID.
func (s *Store) ListQuizzesByChapter(chapterID int64) ([]model.Quiz, error) {
	return s.listQuizzes(`SELECT id, name, date_of_quiz, time_duration, remarks, chapter_id
		FROM quizzes WHERE chapter_id = ? ORDER BY id`, chapterID)
}

func (s *Store) listQuizzes(query string, args ...any) ([]model.Quiz, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var quizzes []model.Quiz
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Name, &q.DateOfQuiz, &q.TimeDuration, &q.Remarks, &q.ChapterID); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// CountQuizzes returns the total number of quizzes.
func (s *Store) CountQuizzes() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM quizzes`).Scan(&count)
	return count, err
}

// UpdateQuiz overwrites every field of the quiz except its parent.
func (s *Store) UpdateQuiz(q model.Quiz) error {
	_, err := s.db.Exec(
		`UPDATE quizzes SET name = ?, date_of_quiz = ?, time_duration = ?, remarks = ? WHERE id = ?`,
		q.Name, q.DateOfQuiz, q.TimeDuration, q.Remarks, q.ID,
	)
	return err
}

// DeleteQuiz removes a quiz and its questions and scores.
func (s *Store) DeleteQuiz(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := deleteQuizTx(tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteQuizTx(tx *sql.Tx, id int64) error {
	if _, err := tx.Exec(`DELETE FROM questions WHERE quiz_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM scores WHERE quiz_id = ?`, id); err != nil {
		return err
	}
	_, err := tx.Exec(`DELETE FROM quizzes WHERE id = ?`, id)
	return err
}

// QuizCountBySubject returns, per subject name, the number of quizzes across
// all of the subject's chapters. Subjects with no quizzes appear with count 0.
func (s *Store) QuizCountBySubject() ([]model.NameCount, error) {
	rows, err := s.db.Query(
		`SELECT s.name, COUNT(q.id)
		 FROM subjects s
		 LEFT JOIN chapters c ON c.subject_id = s.id
		 LEFT JOIN quizzes q ON q.chapter_id = c.id
		 GROUP BY s.id
		 ORDER BY s.name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var counts []model.NameCount
	for rows.Next() {
		var nc model.NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, nc)
	}
	return counts, rows.Err()
}
