// Package store provides abstractions and implementations for data persistence.
package store

import (
	"context"

	"github.com/phrazzld/quiz-api/internal/domain"
)

// DefaultListLimit is the page size applied by list operations when the
// caller passes a non-positive limit. An unbounded default would be a
// resource-exhaustion risk, so the fallback is finite and documented.
const DefaultListLimit = 100

// CreateUserParams holds the fields required to create a user. LastName
// and Username are optional and may be nil.
type CreateUserParams struct {
	TelegramID int64
	Language   string
	FirstName  string
	LastName   *string
	Username   *string
}

// Repository defines transactional CRUD access to all quiz entities.
//
// Lookups return the ErrNotFound sentinel family when no matching record
// exists. Creates assign a new surrogate id and return the full created
// record; uniqueness violations surface as the ErrDuplicate family.
// Parent references are passed as plain ids, never as loaded records.
//
// Implementations hold a single logical storage handle and model at most
// one open transaction at a time; callers must not interleave operations
// from concurrent call sites without external synchronization.
type Repository interface {
	// RunInTransaction executes fn atomically: every repository call made
	// through the Repository passed to fn happens in one transaction, which
	// commits when fn returns nil and rolls back when fn returns an error.
	// Nested calls are rejected with an error wrapping ErrTransactionFailed.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context, r Repository) error) error

	// GetUser retrieves a user by surrogate id.
	// Returns ErrUserNotFound if no such user exists.
	GetUser(ctx context.Context, id int64) (*domain.User, error)

	// GetUserByTelegramID retrieves a user by external telegram identity.
	// Returns ErrUserNotFound if no such user exists.
	GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error)

	// CreateUser persists a new user and returns it with the assigned id.
	// Returns ErrTelegramIDExists if the telegram id is already taken.
	CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error)

	// UpdateUser applies a partial update to an existing user. Fields left
	// unset in the update keep their stored values; see UserUpdate for the
	// distinction between "leave as-is" and "clear".
	// Returns ErrUserNotFound if no such user exists.
	UpdateUser(ctx context.Context, id int64, update UserUpdate) error

	// GetQuiz retrieves a quiz by id, without its questions.
	// Returns ErrQuizNotFound if no such quiz exists.
	GetQuiz(ctx context.Context, id int64) (*domain.Quiz, error)

	// CreateQuiz persists a new quiz and returns it with the assigned id.
	CreateQuiz(ctx context.Context, description, language string) (*domain.Quiz, error)

	// GetQuizQuestion retrieves a question by id.
	// Returns ErrQuestionNotFound if no such question exists.
	GetQuizQuestion(ctx context.Context, id int64) (*domain.QuizQuestion, error)

	// CreateQuizQuestion persists a new question under the given quiz and
	// returns it with the assigned id. Returns an error wrapping
	// ErrInvalidEntity if the quiz does not exist.
	CreateQuizQuestion(ctx context.Context, quizID int64, question string) (*domain.QuizQuestion, error)

	// GetQuizAnswer retrieves an answer by id.
	// Returns ErrAnswerNotFound if no such answer exists.
	GetQuizAnswer(ctx context.Context, id int64) (*domain.QuizAnswer, error)

	// CreateQuizAnswer persists a new answer under the given question and
	// returns it with the assigned id. Returns ErrDuplicateAnswer if the
	// question already has an answer with the same text.
	CreateQuizAnswer(ctx context.Context, questionID int64, value string, right bool) (*domain.QuizAnswer, error)

	// CreateQuizSession persists a new session for the given user and quiz,
	// with the quiz's description and language denormalized into it, and
	// returns it with the assigned id. Returns ErrSessionExists if the user
	// already has a session for this quiz.
	CreateQuizSession(ctx context.Context, userID, quizID int64, description, language string) (*domain.QuizSession, error)

	// CreateQuizSessionAnswer records an answer inside a session, with the
	// question text, answer text and correctness denormalized into it, and
	// returns it with the assigned id.
	CreateQuizSessionAnswer(ctx context.Context, sessionID, answerID int64, question, answer string, right bool) (*domain.QuizSessionAnswer, error)

	// ListQuizzesByLanguage returns quizzes whose language tag matches the
	// given one case-insensitively, ordered by ascending id. A negative
	// offset is treated as zero; a non-positive limit falls back to
	// DefaultListLimit. Returned quizzes carry no questions.
	ListQuizzesByLanguage(ctx context.Context, language string, offset, limit int) ([]domain.Quiz, error)

	// CountQuizzesByLanguage returns the number of quizzes whose language
	// tag matches the given one case-insensitively.
	CountQuizzesByLanguage(ctx context.Context, language string) (int64, error)
}
