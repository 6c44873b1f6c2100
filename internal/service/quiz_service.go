package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/quiz-api/internal/domain"
	"github.com/phrazzld/quiz-api/internal/store"
)

// QuizService orchestrates multi-step quiz workflows atop the repository.
type QuizService interface {
	// ListQuizzes returns the total number of quizzes in the given language
	// together with one page of them, ordered by ascending id. Count and
	// page are read in a single transaction so the two are consistent with
	// each other at one point in time. Returned quizzes carry no questions.
	// A negative offset is treated as zero; a non-positive limit falls back
	// to store.DefaultListLimit.
	ListQuizzes(ctx context.Context, language string, offset, limit int) (int64, []domain.Quiz, error)

	// SubmitAnswers records one user's attempt at a quiz: it creates the
	// session and one recorded answer per submitted answer id, copying
	// question text, answer text and correctness into the records, all in
	// one transaction. On any failure nothing is persisted.
	//
	// answerIDs has set semantics: duplicate ids are submitted once, and
	// the order of recorded answers is not part of the contract.
	//
	// Returns *UserNotFoundError, *QuizNotFoundError or
	// *QuizAnswerNotFoundError when the referenced records do not exist,
	// and a store.ErrSessionExists-wrapped error when the user has already
	// attempted this quiz.
	SubmitAnswers(ctx context.Context, userID, quizID int64, answerIDs []int64) (*domain.User, *domain.QuizSessionDetail, error)
}

// quizServiceImpl implements the QuizService interface.
type quizServiceImpl struct {
	repo   store.Repository
	logger *slog.Logger
}

// NewQuizService creates a new QuizService backed by the given repository.
func NewQuizService(repo store.Repository, logger *slog.Logger) QuizService {
	if logger == nil {
		logger = slog.Default()
	}
	return &quizServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("component", "quiz_service")),
	}
}

// ListQuizzes implements QuizService.ListQuizzes.
func (s *quizServiceImpl) ListQuizzes(ctx context.Context, language string, offset, limit int) (int64, []domain.Quiz, error) {
	var total int64
	var quizzes []domain.Quiz

	err := s.repo.RunInTransaction(ctx, func(ctx context.Context, r store.Repository) error {
		var err error
		quizzes, err = r.ListQuizzesByLanguage(ctx, language, offset, limit)
		if err != nil {
			return fmt.Errorf("failed to list quizzes: %w", err)
		}

		total, err = r.CountQuizzesByLanguage(ctx, language)
		if err != nil {
			return fmt.Errorf("failed to count quizzes: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to list quizzes",
			slog.String("error", err.Error()),
			slog.String("language", language))
		return 0, nil, err
	}

	s.logger.Debug("listed quizzes",
		slog.String("language", language),
		slog.Int64("total", total),
		slog.Int("page_size", len(quizzes)))

	return total, quizzes, nil
}

// SubmitAnswers implements QuizService.SubmitAnswers.
func (s *quizServiceImpl) SubmitAnswers(ctx context.Context, userID, quizID int64, answerIDs []int64) (*domain.User, *domain.QuizSessionDetail, error) {
	var user *domain.User
	var detail *domain.QuizSessionDetail

	err := s.repo.RunInTransaction(ctx, func(ctx context.Context, r store.Repository) error {
		var err error

		user, err = r.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &UserNotFoundError{ID: userID}
			}
			return err
		}

		quiz, err := r.GetQuiz(ctx, quizID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return &QuizNotFoundError{ID: quizID}
			}
			return err
		}

		session, err := r.CreateQuizSession(ctx, user.ID, quiz.ID, quiz.Description, quiz.Language)
		if err != nil {
			return err
		}

		answers := make([]domain.QuizSessionAnswer, 0, len(answerIDs))
		seen := make(map[int64]struct{}, len(answerIDs))
		for _, answerID := range answerIDs {
			if _, ok := seen[answerID]; ok {
				continue
			}
			seen[answerID] = struct{}{}

			answer, err := r.GetQuizAnswer(ctx, answerID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return &QuizAnswerNotFoundError{ID: answerID}
				}
				return err
			}

			// A dangling question reference means the answer cannot be
			// resolved, which is the same failure from the caller's view.
			question, err := r.GetQuizQuestion(ctx, answer.QuestionID)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return &QuizAnswerNotFoundError{ID: answerID}
				}
				return err
			}

			recorded, err := r.CreateQuizSessionAnswer(ctx, session.ID, answer.ID, question.Question, answer.Value, answer.Right)
			if err != nil {
				return err
			}
			answers = append(answers, *recorded)
		}

		detail = &domain.QuizSessionDetail{
			QuizSession: *session,
			Quiz:        quiz,
			Answers:     answers,
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("answer submission failed",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.Int64("quiz_id", quizID))
		return nil, nil, err
	}

	s.logger.Info("answers submitted",
		slog.Int64("user_id", userID),
		slog.Int64("quiz_id", quizID),
		slog.Int64("session_id", detail.ID),
		slog.Int("answer_count", len(detail.Answers)))

	return user, detail, nil
}
