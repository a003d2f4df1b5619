package store

import (
	"database/sql"

	"quizmaster/internal/model"
)

// CreateSubject inserts a new subject.
func (s *Store) CreateSubject(sub model.Subject) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO subjects (name, description) VALUES (?, ?)`,
		sub.Name, sub.Description,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetSubject returns a subject by ID, or nil if none exists.
func (s *Store) GetSubject(id int64) (*model.Subject, error) {
	var sub model.Subject
	err := s.db.QueryRow(
		`SELECT id, name, description FROM subjects WHERE id = ?`, id,
	).Scan(&sub.ID, &sub.Name, &sub.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// ListSubjects returns all subjects ordered by name.
func (s *Store) ListSubjects() ([]model.Subject, error) {
	rows, err := s.db.Query(`SELECT id, name, description FROM subjects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subjects []model.Subject
	for rows.Next() {
		var sub model.Subject
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Description); err != nil {
			return nil, err
		}
		subjects = append(subjects, sub)
	}
	return subjects, rows.Err()
}

// CountSubjects returns the total number of subjects.
func (s *Store) CountSubjects() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM subjects`).Scan(&count)
	return count, err
}

// UpdateSubject overwrites every field of the subject.
func (s *Store) UpdateSubject(sub model.Subject) error {
	_, err := s.db.Exec(
		`UPDATE subjects SET name = ?, description = ? WHERE id = ?`,
		sub.Name, sub.Description, sub.ID,
	)
	return err
}

// DeleteSubject removes a subject and, depth-first, every chapter, quiz,
// question, and score below it, all in one transaction.
func (s *Store) DeleteSubject(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	chapterIDs, err := childIDs(tx, `SELECT id FROM chapters WHERE subject_id = ?`, id)
	if err != nil {
		return err
	}
	for _, chID := range chapterIDs {
		if err := deleteChapterTx(tx, chID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`DELETE FROM subjects WHERE id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

func childIDs(tx *sql.Tx, query string, arg int64) ([]int64, error) {
	rows, err := tx.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
