package store

import (
	"quizmaster/internal/model"
)

// CreateScore records one quiz attempt.
func (s *Store) CreateScore(sc model.Score) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO scores (score, total_scored, timestamp, user_id, quiz_id)
		 VALUES (?, ?, ?, ?, ?)`,
		sc.Score, sc.TotalScored, sc.Timestamp, sc.UserID, sc.QuizID,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListScoresByUser returns a user's attempts ordered by ID.
func (s *Store) ListScoresByUser(userID int64) ([]model.ScoreRow, error) {
	return s.listScores(
		`SELECT sc.id, sc.score, sc.total_scored, sc.timestamp, sc.user_id, sc.quiz_id, u.name, q.name
		 FROM scores sc
		 JOIN users u ON u.id = sc.user_id
		 JOIN quizzes q ON q.id = sc.quiz_id
		 WHERE sc.user_id = ?
		 ORDER BY sc.id`, userID)
}

// LatestScores returns the most recent attempts across all users,
// newest first, at most limit rows.
func (s *Store) LatestScores(limit int) ([]model.ScoreRow, error) {
	return s.listScores(
		`SELECT sc.id, sc.score, sc.total_scored, sc.timestamp, sc.user_id, sc.quiz_id, u.name, q.name
		 FROM scores sc
		 JOIN users u ON u.id = sc.user_id
		 JOIN quizzes q ON q.id = sc.quiz_id
		 ORDER BY sc.timestamp DESC
		 LIMIT ?`, limit)
}

func (s *Store) listScores(query string, args ...any) ([]model.ScoreRow, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var scores []model.ScoreRow
	for rows.Next() {
		var sc model.ScoreRow
		if err := rows.Scan(&sc.ID, &sc.Score.Score, &sc.TotalScored, &sc.Timestamp,
			&sc.UserID, &sc.QuizID, &sc.UserName, &sc.QuizName); err != nil {
			return nil, err
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// CountScoresByUser returns how many attempts a user has made.
func (s *Store) CountScoresByUser(userID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM scores WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

// CountScores returns the total number of attempts.
func (s *Store) CountScores() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM scores`).Scan(&count)
	return count, err
}

// AttemptsPerUser returns, per user name, the number of quiz attempts.
// Users with no attempts appear with count 0.
func (s *Store) AttemptsPerUser() ([]model.NameCount, error) {
	rows, err := s.db.Query(
		`SELECT u.name, COUNT(sc.id)
		 FROM users u
		 LEFT JOIN scores sc ON sc.user_id = u.id
		 GROUP BY u.id
		 ORDER BY u.name`,
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
