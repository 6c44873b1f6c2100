package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/quiz-api/internal/domain"
	"github.com/phrazzld/quiz-api/internal/store"
)

// Identity is the external identity data supplied by the chat platform
// for one user. LastName and Username are nil when the platform did not
// supply them. Language is the locale tag reported for the user.
type Identity struct {
	TelegramID int64
	FirstName  string
	LastName   *string
	Username   *string
	Language   string
}

// UserService resolves user records from external identity data.
type UserService interface {
	// ResolveUser is an idempotent upsert by telegram identity: it creates
	// the user on first sight and unconditionally overwrites language,
	// first name, last name and username on every later call. The returned
	// user reflects exactly the supplied identity fields.
	ResolveUser(ctx context.Context, identity Identity) (*domain.User, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	repo   store.Repository
	logger *slog.Logger
}

// NewUserService creates a new UserService backed by the given repository.
func NewUserService(repo store.Repository, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userServiceImpl{
		repo:   repo,
		logger: logger.With(slog.String("component", "user_service")),
	}
}

// ResolveUser implements UserService.ResolveUser.
func (s *userServiceImpl) ResolveUser(ctx context.Context, identity Identity) (*domain.User, error) {
	var resolved *domain.User

	err := s.repo.RunInTransaction(ctx, func(ctx context.Context, r store.Repository) error {
		existing, err := r.GetUserByTelegramID(ctx, identity.TelegramID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if existing == nil {
			created, err := r.CreateUser(ctx, store.CreateUserParams{
				TelegramID: identity.TelegramID,
				Language:   identity.Language,
				FirstName:  identity.FirstName,
				LastName:   identity.LastName,
				Username:   identity.Username,
			})
			if err != nil {
				return err
			}
			resolved = created
			return nil
		}

		// Full overwrite: every identity field is supplied on every call,
		// so all four fields are written unconditionally.
		err = r.UpdateUser(ctx, existing.ID, store.UserUpdate{
			Language:  store.Set(identity.Language),
			FirstName: store.Set(identity.FirstName),
			LastName:  store.Set(identity.LastName),
			Username:  store.Set(identity.Username),
		})
		if err != nil {
			return err
		}

		resolved = &domain.User{
			ID:         existing.ID,
			TelegramID: identity.TelegramID,
			FirstName:  identity.FirstName,
			LastName:   identity.LastName,
			Username:   identity.Username,
			Language:   identity.Language,
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to resolve user",
			slog.String("error", err.Error()),
			slog.Int64("telegram_id", identity.TelegramID))
		return nil, err
	}

	s.logger.Debug("user resolved",
		slog.Int64("user_id", resolved.ID),
		slog.Int64("telegram_id", resolved.TelegramID))

	return resolved, nil
}
