package store

import (
	"database/sql"

	"quizmaster/internal/model"
)

// CreateQuestion inserts a new question under its quiz.
func (s *Store) CreateQuestion(q model.Question) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO questions (question_text, option_1, option_2, option_3, option_4, correct_answer, quiz_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		q.Text, q.Option1, q.Option2, q.Option3, q.Option4, q.CorrectAnswer, q.QuizID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetQuestion returns a question by ID, or nil if none exists.
func (s *Store) GetQuestion(id int64) (*model.Question, error) {
	var q model.Question
	err := s.db.QueryRow(
		`SELECT id, question_text, option_1, option_2, option_3, option_4, correct_answer, quiz_id
		 FROM questions WHERE id = ?`, id,
	).Scan(&q.ID, &q.Text, &q.Option1, &q.Option2, &q.Option3, &q.Option4, &q.CorrectAnswer, &q.QuizID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// ListQuestionsByQuiz returns a quiz's questions ordered by ID.
func (s *Store) ListQuestionsByQuiz(quizID int64) ([]model.Question, error) {
	rows, err := s.db.Query(
		`SELECT id, question_text, option_1, option_2, option_3, option_4, correct_answer, quiz_id
		 FROM questions WHERE quiz_id = ? ORDER BY id`, quizID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Text, &q.Option1, &q.Option2, &q.Option3, &q.Option4, &q.CorrectAnswer, &q.QuizID); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// UpdateQuestion overwrites every field of the question except its parent.
func (s *Store) UpdateQuestion(q model.Question) error {
	_, err := s.db.Exec(
		`UPDATE questions SET question_text = ?, option_1 = ?, option_2 = ?, option_3 = ?, option_4 = ?, correct_answer = ?
		 WHERE id = ?`,
		q.Text, q.Option1, q.Option2, q.Option3, q.Option4, q.CorrectAnswer, q.ID,
	)
	return err
}

// DeleteQuestion removes a single question.
func (s *Store) DeleteQuestion(id int64) error {
	_, err := s.db.Exec(`DELETE FROM questions WHERE id = ?`, id)
	return err
}
