package store

import (
	"strings"

	"quizmaster/internal/model"
)

// SearchByName performs a substring match of query against the name field of
// users, subjects, chapters, and quizzes independently. SQLite's LIKE is
// case-insensitive for ASCII, matching the user-facing contract.
// An empty query yields four empty result sets.
func (s *Store) SearchByName(query string) (model.SearchResults, error) {
	var results model.SearchResults
	if strings.TrimSpace(query) == "" {
		return results, nil
	}
	pattern := "%" + escapeLike(query) + "%"

	rows, err := s.db.Query(
		`SELECT id, name, email, password, qualification, dob, is_admin
		 FROM users WHERE name LIKE ? ESCAPE '\' ORDER BY id`, pattern,
	)
	if err != nil {
		return results, err
	}
	defer rows.Close()
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Qualification, &u.DOB, &u.IsAdmin); err != nil {
			return results, err
		}
		results.Users = append(results.Users, u)
	}
	if err := rows.Err(); err != nil {
		return results, err
	}

	subRows, err := s.db.Query(
		`SELECT id, name, description FROM subjects
		 WHERE name LIKE ? ESCAPE '\' ORDER BY id`, pattern,
	)
	if err != nil {
		return results, err
	}
	defer subRows.Close()
	for subRows.Next() {
		var sub model.Subject
		if err := subRows.Scan(&sub.ID, &sub.Name, &sub.Description); err != nil {
			return results, err
		}
		results.Subjects = append(results.Subjects, sub)
	}
	if err := subRows.Err(); err != nil {
		return results, err
	}

	chRows, err := s.db.Query(
		`SELECT id, name, description, subject_id FROM chapters
		 WHERE name LIKE ? ESCAPE '\' ORDER BY id`, pattern,
	)
	if err != nil {
		return results, err
	}
	defer chRows.Close()
	for chRows.Next() {
		var ch model.Chapter
		if err := chRows.Scan(&ch.ID, &ch.Name, &ch.Description, &ch.SubjectID); err != nil {
			return results, err
		}
		results.Chapters = append(results.Chapters, ch)
	}
	if err := chRows.Err(); err != nil {
		return results, err
	}

	qRows, err := s.db.Query(
		`SELECT id, name, date_of_quiz, time_duration, remarks, chapter_id FROM quizzes
		 WHERE name LIKE ? ESCAPE '\' ORDER BY id`, pattern,
	)
	if err != nil {
		return results, err
	}
	defer qRows.Close()
	for qRows.Next() {
		var q model.Quiz
		if err := qRows.Scan(&q.ID, &q.Name, &q.DateOfQuiz, &q.TimeDuration, &q.Remarks, &q.ChapterID); err != nil {
			return results, err
		}
		results.Quizzes = append(results.Quizzes, q)
	}
	return results, qRows.Err()
}

// escapeLike escapes the LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
