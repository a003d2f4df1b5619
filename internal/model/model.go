package model

import (
	"context"
	"time"
)

// Role is the session role a principal authenticated under.
type Role string

const (
	// RoleAdmin marks a session belonging to an administrator.
	RoleAdmin Role = "admin"
	// RoleUser marks a session belonging to a learner.
	RoleUser Role = "user"
)

// User represents a registered account, admin or learner.
type User struct {
	ID            int64
	Name          string
	Email         string
	Password      string // stored and compared as plain text, matching the legacy data
	Qualification string
	DOB           time.Time
	IsAdmin       bool
}

// Role returns the session role this user authenticates under.
func (u User) Role() Role {
	if u.IsAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// Subject is the top level of the containment hierarchy.
type Subject struct {
	ID          int64
	Name        string
	Description string
}

// Chapter belongs to exactly one subject.
type Chapter struct {
	ID          int64
	Name        string
	Description string
	SubjectID   int64
}

// Quiz belongs to exactly one chapter. DateOfQuiz is a calendar date
// (midnight UTC); TimeDuration is in minutes.
type Quiz struct {
	ID           int64
	Name         string
	DateOfQuiz   time.Time
	TimeDuration int
	Remarks      string
	ChapterID    int64
}

// Question belongs to exactly one quiz. CorrectAnswer is kept as a string
// and compared byte-for-byte with the submitted form value.
type Question struct {
	ID            int64
	QuizID        int64
	Text          string
	Option1       string
	Option2       string
	Option3       string
	Option4       string
	CorrectAnswer string
}

// Score records one quiz attempt. Timestamp is the moment the quiz was
// started, not submitted.
type Score struct {
	ID          int64
	UserID      int64
	QuizID      int64
	Score       int
	TotalScored int
	Timestamp   time.Time
}

// ScoreRow is a score joined with the names needed for display.
type ScoreRow struct {
	Score
	UserName string
	QuizName string
}

// WebSession is a server-side browser session identified by an opaque token.
type WebSession struct {
	ID        string
	UserID    int64
	Role      Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Principal is the authenticated identity threaded through request context.
type Principal struct {
	User      *User
	Role      Role
	SessionID string
}

// IsAdmin reports whether the principal authenticated under the admin role.
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// SearchResults holds the four independent result sets of an admin search.
type SearchResults struct {
	Users    []User
	Subjects []Subject
	Chapters []Chapter
	Quizzes  []Quiz
}

// NameCount is one label/count pair of a report aggregation.
type NameCount struct {
	Name  string
	Count int
}

type principalCtxKey struct{}

// ContextWithPrincipal stores the authenticated principal in the request context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext retrieves the authenticated principal, or nil.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalCtxKey{}).(*Principal)
	return p
}
