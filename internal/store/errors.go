package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all repository implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. Absence is a normal outcome of a lookup, not a failure: callers
	// check for it with errors.Is and decide whether it is fatal to their
	// workflow.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// constraint (duplicate telegram id, duplicate answer text within a
	// question, second session for the same quiz and user).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when a write references an entity that
	// does not exist, such as creating a question for a missing quiz.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction cannot be opened
	// or committed, or when a caller attempts to nest transactions.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrQuizNotFound indicates that the requested quiz does not exist.
	ErrQuizNotFound = fmt.Errorf("%w: quiz", ErrNotFound)

	// ErrQuestionNotFound indicates that the requested quiz question does not exist.
	ErrQuestionNotFound = fmt.Errorf("%w: quiz question", ErrNotFound)

	// ErrAnswerNotFound indicates that the requested quiz answer does not exist.
	ErrAnswerNotFound = fmt.Errorf("%w: quiz answer", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrTelegramIDExists indicates that a user with the given telegram id
	// already exists.
	ErrTelegramIDExists = fmt.Errorf("%w: telegram id", ErrDuplicate)

	// ErrDuplicateAnswer indicates that the question already has an answer
	// with the same literal text.
	ErrDuplicateAnswer = fmt.Errorf("%w: answer value", ErrDuplicate)

	// ErrSessionExists indicates that the user already has a session for
	// this quiz.
	ErrSessionExists = fmt.Errorf("%w: quiz session", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of uniqueness
// constraint violation.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
