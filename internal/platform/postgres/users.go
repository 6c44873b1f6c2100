package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/phrazzld/quiz-api/internal/domain"
	"github.com/phrazzld/quiz-api/internal/platform/logger"
	"github.com/phrazzld/quiz-api/internal/store"
)

// GetUser implements store.Repository.GetUser.
// Returns store.ErrUserNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, telegram_id, first_name, last_name, username, language
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.Int64("user_id", id))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return nil, MapError(err)
	}

	return user, nil
}

// GetUserByTelegramID implements store.Repository.GetUserByTelegramID.
// Returns store.ErrUserNotFound if no user carries the telegram identity.
func (s *Store) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, telegram_id, first_name, last_name, username, language
		FROM users
		WHERE telegram_id = $1
	`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, telegramID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by telegram id",
				slog.Int64("telegram_id", telegramID))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by telegram id",
			slog.String("error", err.Error()),
			slog.Int64("telegram_id", telegramID))
		return nil, MapError(err)
	}

	return user, nil
}

// CreateUser implements store.Repository.CreateUser.
// Returns store.ErrTelegramIDExists if the telegram id is already taken.
func (s *Store) CreateUser(ctx context.Context, params store.CreateUserParams) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO users (telegram_id, first_name, last_name, username, language)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(
		ctx,
		query,
		params.TelegramID,
		params.FirstName,
		nullString(params.LastName),
		nullString(params.Username),
		params.Language,
	).Scan(&id)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("duplicate telegram id during user creation",
				slog.Int64("telegram_id", params.TelegramID))
		} else {
			log.Error("failed to create user",
				slog.String("error", err.Error()),
				slog.Int64("telegram_id", params.TelegramID))
		}
		return nil, MapError(err)
	}

	log.Info("user created",
		slog.Int64("user_id", id),
		slog.Int64("telegram_id", params.TelegramID))

	return &domain.User{
		ID:         id,
		TelegramID: params.TelegramID,
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		Username:   params.Username,
		Language:   params.Language,
	}, nil
}

// UpdateUser implements store.Repository.UpdateUser.
// Only fields marked valid in the update are written; the rest keep their
// stored values. Returns store.ErrUserNotFound if the user does not exist.
func (s *Store) UpdateUser(ctx context.Context, id int64, update store.UserUpdate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if update.IsZero() {
		// Nothing to write; still report absence of the target row.
		_, err := s.GetUser(ctx, id)
		return err
	}

	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	addSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Language.Valid {
		addSet("language", update.Language.Value)
	}
	if update.FirstName.Valid {
		addSet("first_name", update.FirstName.Value)
	}
	if update.LastName.Valid {
		addSet("last_name", nullString(update.LastName.Value))
	}
	if update.Username.Valid {
		addSet("username", nullString(update.Username.Value))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update user",
			slog.String("error", err.Error()),
			slog.Int64("user_id", id))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("attempted to update non-existent user",
			slog.Int64("user_id", id))
		return err
	}

	log.Debug("user updated", slog.Int64("user_id", id))
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var lastName, username sql.NullString

	err := row.Scan(
		&user.ID,
		&user.TelegramID,
		&user.FirstName,
		&lastName,
		&username,
		&user.Language,
	)
	if err != nil {
		return nil, err
	}

	user.LastName = stringPtr(lastName)
	user.Username = stringPtr(username)
	return &user, nil
}
