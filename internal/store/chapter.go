package store

import (
	"database/sql"

	"quizmaster/internal/model"
)

// CreateChapter inserts a new chapter under its subject.
func (s *Store) CreateChapter(ch model.Chapter) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO chapters (name, description, subject_id) VALUES (?, ?, ?)`,
		ch.Name, ch.Description, ch.SubjectID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetChapter returns a chapter by ID, or nil if none exists.
func (s *Store) GetChapter(id int64) (*model.Chapter, error) {
	var ch model.Chapter
	err := s.db.QueryRow(
		`SELECT id, name, description, subject_id FROM chapters WHERE id = ?`, id,
	).Scan(&ch.ID, &ch.Name, &ch.Description, &ch.SubjectID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// ListChaptersBySubject returns a subject's chapters ordered by ID.
func (s *Store) ListChaptersBySubject(subjectID int64) ([]model.Chapter, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, subject_id FROM chapters WHERE subject_id = ? ORDER BY id`,
		subjectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var chapters []model.Chapter
	for rows.Next() {
		var ch model.Chapter
		if err := rows.Scan(&ch.ID, &ch.Name, &ch.Description, &ch.SubjectID); err != nil {
			return nil, err
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

// UpdateChapter overwrites every field of the chapter except its parent.
func (s *Store) UpdateChapter(ch model.Chapter) error {
	_, err := s.db.Exec(
		`UPDATE chapters SET name = ?, description = ? WHERE id = ?`,
		ch.Name, ch.Description, ch.ID,
	)
	return err
}

// DeleteChapter removes a chapter and everything below it.
func (s *Store) DeleteChapter(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := deleteChapterTx(tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteChapterTx(tx *sql.Tx, id int64) error {
	quizIDs, err := childIDs(tx, `SELECT id FROM quizzes WHERE chapter_id = ?`, id)
	if err != nil {
		return err
	}
	for _, qID := range quizIDs {
		if err := deleteQuizTx(tx, qID); err != nil {
			return err
		}
	}
	_, err = tx.Exec(`DELETE FROM chapters WHERE id = ?`, id)
	return err
}
