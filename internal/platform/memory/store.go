// Package memory provides an in-memory implementation of the
// store.Repository interface. It keeps per-entity sequential id counters
// and uses linear scans for lookups, which is sufficient for tests and
// local development, not for production scale. It enforces the same
// uniqueness and referential constraints as the reference SQL schema.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/phrazzld/quiz-api/internal/domain"
	"github.com/phrazzld/quiz-api/internal/store"
)

// Store implements store.Repository entirely in memory.
//
// A transaction is modeled by snapshotting the whole data set when it
// opens and restoring the snapshot if the transaction function fails.
// At most one transaction is open at a time.
type Store struct {
	mu   sync.Mutex
	data *data
	inTx bool
}

// data is the complete mutable state of the store. Entities are stored by
// value so snapshots are cheap map copies.
type data struct {
	users          map[int64]domain.User
	quizzes        map[int64]domain.Quiz
	questions      map[int64]domain.QuizQuestion
	answers        map[int64]domain.QuizAnswer
	sessions       map[int64]domain.QuizSession
	sessionAnswers map[int64]domain.QuizSessionAnswer

	nextUserID          int64
	nextQuizID          int64
	nextQuestionID      int64
	nextAnswerID        int64
	nextSessionID       int64
	nextSessionAnswerID int64
}

func newData() *data {
	return &data{
		users:          make(map[int64]domain.User),
		quizzes:        make(map[int64]domain.Quiz),
		questions:      make(map[int64]domain.QuizQuestion),
		answers:        make(map[int64]domain.QuizAnswer),
		sessions:       make(map[int64]domain.QuizSession),
		sessionAnswers: make(map[int64]domain.QuizSessionAnswer),

		nextUserID:          1,
		nextQuizID:          1,
		nextQuestionID:      1,
		nextAnswerID:        1,
		nextSessionID:       1,
		nextSessionAnswerID: 1,
	}
}

// clone returns an independent copy of the data set. Entities are values,
// so copying the maps is enough; pointer fields inside entities are never
// mutated after creation.
func (d *data) clone() *data {
	c := *d
	c.users = make(map[int64]domain.User, len(d.users))
	for k, v := range d.users {
		c.users[k] = v
	}
	c.quizzes = make(map[int64]domain.Quiz, len(d.quizzes))
	for k, v := range d.quizzes {
		c.quizzes[k] = v
	}
	c.questions = make(map[int64]domain.QuizQuestion, len(d.questions))
	for k, v := range d.questions {
		c.questions[k] = v
	}
	c.answers = make(map[int64]domain.QuizAnswer, len(d.answers))
	for k, v := range d.answers {
		c.answers[k] = v
	}
	c.sessions = make(map[int64]domain.QuizSession, len(d.sessions))
	for k, v := range d.sessions {
		c.sessions[k] = v
	}
	c.sessionAnswers = make(map[int64]domain.QuizSessionAnswer, len(d.sessionAnswers))
	for k, v := range d.sessionAnswers {
		c.sessionAnswers[k] = v
	}
	return &c
}

// New creates an empty in-memory repository.
func New() *Store {
	return &Store{data: newData()}
}

// Ensure Store implements store.Repository
var _ store.Repository = (*Store)(nil)

// RunInTransaction implements store.Repository.RunInTransaction.
// The data set is snapshotted when the transaction opens and restored if
// fn returns an error or panics, so a failed transaction leaves no
// partial writes. A panic propagates to the caller after the restore,
// and the store accepts new transactions afterwards.
func (s *Store) RunInTransaction(
	ctx context.Context,
	fn func(ctx context.Context, r store.Repository) error,
) error {
	s.mu.Lock()
	if s.inTx {
		s.mu.Unlock()
		return fmt.Errorf("%w: nested transactions are not supported", store.ErrTransactionFailed)
	}
	snapshot := s.data.clone()
	s.inTx = true
	s.mu.Unlock()

	committed := false
	defer func() {
		s.mu.Lock()
		if !committed {
			s.data = snapshot
		}
		s.inTx = false
		s.mu.Unlock()
	}()

	if err := fn(ctx, s); err != nil {
		return err
	}

	committed = true
	return nil
}

// GetUser implements store.Repository.GetUser.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.data.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

// GetUserByTelegramID implements store.Repository.GetUserByTelegramID.
func (s *Store) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.data.users {
		if user.TelegramID == telegramID {
			u := user
			return &u, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// CreateUser implements store.Repository.CreateUser.
func (s *Store) CreateUser(ctx context.Context, params store.CreateUserParams) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.data.users {
		if user.TelegramID == params.TelegramID {
			return nil, store.ErrTelegramIDExists
		}
	}

	user := domain.User{
		ID:         s.data.nextUserID,
		TelegramID: params.TelegramID,
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		Username:   params.Username,
		Language:   params.Language,
	}
	s.data.nextUserID++
	s.data.users[user.ID] = user

	u := user
	return &u, nil
}

// UpdateUser implements store.Repository.UpdateUser.
func (s *Store) UpdateUser(ctx context.Context, id int64, update store.UserUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.data.users[id]
	if !ok {
		return store.ErrUserNotFound
	}

	if update.Language.Valid {
		user.Language = update.Language.Value
	}
	if update.FirstName.Valid {
		user.FirstName = update.FirstName.Value
	}
	if update.LastName.Valid {
		user.LastName = update.LastName.Value
	}
	if update.Username.Valid {
		user.Username = update.Username.Value
	}

	s.data.users[id] = user
	return nil
}

// GetQuiz implements store.Repository.GetQuiz.
func (s *Store) GetQuiz(ctx context.Context, id int64) (*domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quiz, ok := s.data.quizzes[id]
	if !ok {
		return nil, store.ErrQuizNotFound
	}
	return &quiz, nil
}

// CreateQuiz implements store.Repository.CreateQuiz.
func (s *Store) CreateQuiz(ctx context.Context, description, language string) (*domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quiz := domain.Quiz{
		ID:          s.data.nextQuizID,
		Description: description,
		Language:    language,
	}
	s.data.nextQuizID++
	s.data.quizzes[quiz.ID] = quiz

	q := quiz
	return &q, nil
}

// GetQuizQuestion implements store.Repository.GetQuizQuestion.
func (s *Store) GetQuizQuestion(ctx context.Context, id int64) (*domain.QuizQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	question, ok := s.data.questions[id]
	if !ok {
		return nil, store.ErrQuestionNotFound
	}
	return &question, nil
}

// CreateQuizQuestion implements store.Repository.CreateQuizQuestion.
func (s *Store) CreateQuizQuestion(ctx context.Context, quizID int64, question string) (*domain.QuizQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.quizzes[quizID]; !ok {
		return nil, fmt.Errorf("%w: quiz with id %d not found", store.ErrInvalidEntity, quizID)
	}

	q := domain.QuizQuestion{
		ID:       s.data.nextQuestionID,
		QuizID:   quizID,
		Question: question,
	}
	s.data.nextQuestionID++
	s.data.questions[q.ID] = q

	out := q
	return &out, nil
}

// GetQuizAnswer implements store.Repository.GetQuizAnswer.
func (s *Store) GetQuizAnswer(ctx context.Context, id int64) (*domain.QuizAnswer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	answer, ok := s.data.answers[id]
	if !ok {
		return nil, store.ErrAnswerNotFound
	}
	return &answer, nil
}

// CreateQuizAnswer implements store.Repository.CreateQuizAnswer.
func (s *Store) CreateQuizAnswer(ctx context.Context, questionID int64, value string, right bool) (*domain.QuizAnswer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.questions[questionID]; !ok {
		return nil, fmt.Errorf("%w: quiz question with id %d not found", store.ErrInvalidEntity, questionID)
	}

	for _, answer := range s.data.answers {
		if answer.QuestionID == questionID && answer.Value == value {
			return nil, store.ErrDuplicateAnswer
		}
	}

	answer := domain.QuizAnswer{
		ID:         s.data.nextAnswerID,
		QuestionID: questionID,
		Value:      value,
		Right:      right,
	}
	s.data.nextAnswerID++
	s.data.answers[answer.ID] = answer

	a := answer
	return &a, nil
}

// CreateQuizSession implements store.Repository.CreateQuizSession.
func (s *Store) CreateQuizSession(ctx context.Context, userID, quizID int64, description, language string) (*domain.QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.users[userID]; !ok {
		return nil, fmt.Errorf("%w: user with id %d not found", store.ErrInvalidEntity, userID)
	}
	if _, ok := s.data.quizzes[quizID]; !ok {
		return nil, fmt.Errorf("%w: quiz with id %d not found", store.ErrInvalidEntity, quizID)
	}

	for _, session := range s.data.sessions {
		if session.UserID == userID && session.QuizID != nil && *session.QuizID == quizID {
			return nil, store.ErrSessionExists
		}
	}

	qid := quizID
	session := domain.QuizSession{
		ID:          s.data.nextSessionID,
		QuizID:      &qid,
		UserID:      userID,
		Description: description,
		Language:    language,
	}
	s.data.nextSessionID++
	s.data.sessions[session.ID] = session

	out := session
	return &out, nil
}

// CreateQuizSessionAnswer implements store.Repository.CreateQuizSessionAnswer.
func (s *Store) CreateQuizSessionAnswer(ctx context.Context, sessionID, answerID int64, question, answer string, right bool) (*domain.QuizSessionAnswer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.sessions[sessionID]; !ok {
		return nil, fmt.Errorf("%w: quiz session with id %d not found", store.ErrInvalidEntity, sessionID)
	}
	if _, ok := s.data.answers[answerID]; !ok {
		return nil, fmt.Errorf("%w: quiz answer with id %d not found", store.ErrInvalidEntity, answerID)
	}

	aid := answerID
	sa := domain.QuizSessionAnswer{
		ID:        s.data.nextSessionAnswerID,
		AnswerID:  &aid,
		SessionID: sessionID,
		Question:  question,
		Answer:    answer,
		Right:     right,
	}
	s.data.nextSessionAnswerID++
	s.data.sessionAnswers[sa.ID] = sa

	out := sa
	return &out, nil
}

// ListQuizzesByLanguage implements store.Repository.ListQuizzesByLanguage.
func (s *Store) ListQuizzesByLanguage(ctx context.Context, language string, offset, limit int) ([]domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = store.DefaultListLimit
	}

	var matched []domain.Quiz
	for _, quiz := range s.data.quizzes {
		if strings.EqualFold(quiz.Language, language) {
			matched = append(matched, quiz)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	if offset >= len(matched) {
		return nil, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, nil
}

// CountQuizzesByLanguage implements store.Repository.CountQuizzesByLanguage.
func (s *Store) CountQuizzesByLanguage(ctx context.Context, language string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for _, quiz := range s.data.quizzes {
		if strings.EqualFold(quiz.Language, language) {
			count++
		}
	}
	return count, nil
}
