// Package service provides the application-level services built on the
// repository: quiz listing, answer submission and user resolution.
package service

import "fmt"

// Service errors promote repository "not found" results to named domain
// errors once a workflow has decided absence is fatal. Each carries the
// offending identifier for diagnostics; no other data is included.

// UserNotFoundError indicates that the user a workflow depends on does
// not exist.
type UserNotFoundError struct {
	ID int64
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user with id %d not found", e.ID)
}

// QuizNotFoundError indicates that the quiz a workflow depends on does
// not exist.
type QuizNotFoundError struct {
	ID int64
}

func (e *QuizNotFoundError) Error() string {
	return fmt.Sprintf("quiz with id %d not found", e.ID)
}

// QuizAnswerNotFoundError indicates that a submitted answer id could not
// be resolved. It is also returned when the answer exists but its owning
// question is missing: from the caller's view either case means the
// answer cannot be resolved.
type QuizAnswerNotFoundError struct {
	ID int64
}

func (e *QuizAnswerNotFoundError) Error() string {
	return fmt.Sprintf("quiz answer with id %d not found", e.ID)
}
