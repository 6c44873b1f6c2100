package postgres

import (
	"context"
	"log/slog"

	"github.com/phrazzld/quiz-api/internal/domain"
	"github.com/phrazzld/quiz-api/internal/platform/logger"
)

// CreateQuizSession implements store.Repository.CreateQuizSession.
// The quiz's description and language are denormalized into the session
// row so the historical record survives later changes to the quiz.
// Returns store.ErrSessionExists if the user already has a session for
// this quiz, or an error wrapping store.ErrInvalidEntity if the user or
// quiz does not exist.
func (s *Store) CreateQuizSession(ctx context.Context, userID, quizID int64, description, language string) (*domain.QuizSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO quiz_sessions (user_id, quiz_id, description, language)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	if err := s.db.QueryRowContext(ctx, query, userID, quizID, description, language).Scan(&id); err != nil {
		if IsUniqueViolation(err) {
			log.Warn("user already has a session for this quiz",
				slog.Int64("user_id", userID),
				slog.Int64("quiz_id", quizID))
		} else {
			log.Error("failed to create quiz session",
				slog.String("error", err.Error()),
				slog.Int64("user_id", userID),
				slog.Int64("quiz_id", quizID))
		}
		return nil, MapError(err)
	}

	log.Info("quiz session created",
		slog.Int64("session_id", id),
		slog.Int64("user_id", userID),
		slog.Int64("quiz_id", quizID))

	qid := quizID
	return &domain.QuizSession{
		ID:          id,
		QuizID:      &qid,
		UserID:      userID,
		Description: description,
		Language:    language,
	}, nil
}

// CreateQuizSessionAnswer implements store.Repository.CreateQuizSessionAnswer.
// Question text, answer text and correctness are denormalized into the row
// so the session's record stays immutable even if the source answer or
// question later changes or is deleted. Returns an error wrapping
// store.ErrInvalidEntity if the session or answer does not exist.
func (s *Store) CreateQuizSessionAnswer(ctx context.Context, sessionID, answerID int64, question, answer string, right bool) (*domain.QuizSessionAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO quiz_session_answers (session_id, answer_id, question, answer, "right")
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	if err := s.db.QueryRowContext(ctx, query, sessionID, answerID, question, answer, right).Scan(&id); err != nil {
		log.Error("failed to create quiz session answer",
			slog.String("error", err.Error()),
			slog.Int64("session_id", sessionID),
			slog.Int64("answer_id", answerID))
		return nil, MapError(err)
	}

	log.Debug("quiz session answer created",
		slog.Int64("session_answer_id", id),
		slog.Int64("session_id", sessionID))

	aid := answerID
	return &domain.QuizSessionAnswer{
		ID:        id,
		AnswerID:  &aid,
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Right:     right,
	}, nil
}
