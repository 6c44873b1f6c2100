package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/phrazzld/quiz-api/internal/domain"
	"github.com/phrazzld/quiz-api/internal/platform/logger"
	"github.com/phrazzld/quiz-api/internal/store"
)

// GetQuiz implements store.Repository.GetQuiz.
// Returns store.ErrQuizNotFound if the quiz does not exist. The returned
// quiz carries no questions.
func (s *Store) GetQuiz(ctx context.Context, id int64) (*domain.Quiz, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, description, language
		FROM quizzes
		WHERE id = $1
	`

	var quiz domain.Quiz
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&quiz.ID, &quiz.Description, &quiz.Language)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("quiz not found", slog.Int64("quiz_id", id))
			return nil, store.ErrQuizNotFound
		}
		log.Error("failed to get quiz by ID",
			slog.String("error", err.Error()),
			slog.Int64("quiz_id", id))
		return nil, MapError(err)
	}

	return &quiz, nil
}

// CreateQuiz implements store.Repository.CreateQuiz.
func (s *Store) CreateQuiz(ctx context.Context, description, language string) (*domain.Quiz, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO quizzes (description, language)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	if err := s.db.QueryRowContext(ctx, query, description, language).Scan(&id); err != nil {
		log.Error("failed to create quiz",
			slog.String("error", err.Error()),
			slog.String("language", language))
		return nil, MapError(err)
	}

	log.Info("quiz created",
		slog.Int64("quiz_id", id),
		slog.String("language", language))

	return &domain.Quiz{
		ID:          id,
		Description: description,
		Language:    language,
	}, nil
}

// GetQuizQuestion implements store.Repository.GetQuizQuestion.
// Returns store.ErrQuestionNotFound if the question does not exist.
func (s *Store) GetQuizQuestion(ctx context.Context, id int64) (*domain.QuizQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, quiz_id, question
		FROM quiz_questions
		WHERE id = $1
	`

	var question domain.QuizQuestion
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&question.ID, &question.QuizID, &question.Question)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("quiz question not found", slog.Int64("question_id", id))
			return nil, store.ErrQuestionNotFound
		}
		log.Error("failed to get quiz question by ID",
			slog.String("error", err.Error()),
			slog.Int64("question_id", id))
		return nil, MapError(err)
	}

	return &question, nil
}

// CreateQuizQuestion implements store.Repository.CreateQuizQuestion.
// Returns an error wrapping store.ErrInvalidEntity if the quiz does not exist.
func (s *Store) CreateQuizQuestion(ctx context.Context, quizID int64, question string) (*domain.QuizQuestion, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO quiz_questions (quiz_id, question)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	if err := s.db.QueryRowContext(ctx, query, quizID, question).Scan(&id); err != nil {
		log.Error("failed to create quiz question",
			slog.String("error", err.Error()),
			slog.Int64("quiz_id", quizID))
		return nil, MapError(err)
	}

	log.Info("quiz question created",
		slog.Int64("question_id", id),
		slog.Int64("quiz_id", quizID))

	return &domain.QuizQuestion{
		ID:       id,
		QuizID:   quizID,
		Question: question,
	}, nil
}

// GetQuizAnswer implements store.Repository.GetQuizAnswer.
// Returns store.ErrAnswerNotFound if the answer does not exist.
func (s *Store) GetQuizAnswer(ctx context.Context, id int64) (*domain.QuizAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, question_id, value, "right"
		FROM quiz_answers
		WHERE id = $1
	`

	var answer domain.QuizAnswer
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&answer.ID, &answer.QuestionID, &answer.Value, &answer.Right)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("quiz answer not found", slog.Int64("answer_id", id))
			return nil, store.ErrAnswerNotFound
		}
		log.Error("failed to get quiz answer by ID",
			slog.String("error", err.Error()),
			slog.Int64("answer_id", id))
		return nil, MapError(err)
	}

	return &answer, nil
}

// CreateQuizAnswer implements store.Repository.CreateQuizAnswer.
// Returns store.ErrDuplicateAnswer if the question already has an answer
// with the same text, or an error wrapping store.ErrInvalidEntity if the
// question does not exist.
func (s *Store) CreateQuizAnswer(ctx context.Context, questionID int64, value string, right bool) (*domain.QuizAnswer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO quiz_answers (question_id, value, "right")
		VALUES ($1, $2, $3)
		RETURNING id
	`

	var id int64
	if err := s.db.QueryRowContext(ctx, query, questionID, value, right).Scan(&id); err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate answer value for question",
				slog.Int64("question_id", questionID))
		} else {
			log.Error("failed to create quiz answer",
				slog.String("error", err.Error()),
				slog.Int64("question_id", questionID))
		}
		return nil, MapError(err)
	}

	log.Info("quiz answer created",
		slog.Int64("answer_id", id),
		slog.Int64("question_id", questionID))

	return &domain.QuizAnswer{
		ID:         id,
		QuestionID: questionID,
		Value:      value,
		Right:      right,
	}, nil
}

// ListQuizzesByLanguage implements store.Repository.ListQuizzesByLanguage.
// Language matching is case-insensitive on the stored tag; results are
// ordered by ascending id and therefore stable across repeated calls
// against unchanged data.
func (s *Store) ListQuizzesByLanguage(ctx context.Context, language string, offset, limit int) ([]domain.Quiz, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	query := `
		SELECT id, description, language
		FROM quizzes
		WHERE lower(language) = lower($1)
		ORDER BY id ASC
		OFFSET $2
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, language, offset, limit)
	if err != nil {
		log.Error("failed to list quizzes by language",
			slog.String("error", err.Error()),
			slog.String("language", language))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var quizzes []domain.Quiz
	for rows.Next() {
		var quiz domain.Quiz
		if err := rows.Scan(&quiz.ID, &quiz.Description, &quiz.Language); err != nil {
			log.Error("failed to scan quiz row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return quizzes, nil
}

// CountQuizzesByLanguage implements store.Repository.CountQuizzesByLanguage.
func (s *Store) CountQuizzesByLanguage(ctx context.Context, language string) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(id)
		FROM quizzes
		WHERE lower(language) = lower($1)
	`

	var count int64
	if err := s.db.QueryRowContext(ctx, query, language).Scan(&count); err != nil {
		log.Error("failed to count quizzes by language",
			slog.String("error", err.Error()),
			slog.String("language", language))
		return 0, MapError(err)
	}

	return count, nil
}
