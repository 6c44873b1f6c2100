package postgres_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/quiz-api/internal/platform/postgres"
	"github.com/phrazzld/quiz-api/internal/store"
)

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{Code: code, ConstraintName: constraint}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil stays nil",
			err:  nil,
			want: nil,
		},
		{
			name: "no rows maps to not found",
			err:  sql.ErrNoRows,
			want: store.ErrNotFound,
		},
		{
			name: "telegram id unique violation",
			err:  pgError("23505", "users_telegram_id_key"),
			want: store.ErrTelegramIDExists,
		},
		{
			name: "answer value unique violation",
			err:  pgError("23505", "quiz_answers_question_id_value_key"),
			want: store.ErrDuplicateAnswer,
		},
		{
			name: "session unique violation",
			err:  pgError("23505", "quiz_sessions_quiz_id_user_id_key"),
			want: store.ErrSessionExists,
		},
		{
			name: "unknown unique violation maps to generic duplicate",
			err:  pgError("23505", "some_other_key"),
			want: store.ErrDuplicate,
		},
		{
			name: "foreign key violation maps to invalid entity",
			err:  pgError("23503", "quiz_questions_quiz_id_fkey"),
			want: store.ErrInvalidEntity,
		},
		{
			name: "not null violation maps to invalid entity",
			err:  pgError("23502", ""),
			want: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := postgres.MapError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("unmapped errors pass through unchanged", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection reset")
		assert.Equal(t, cause, postgres.MapError(cause))
	})

	t.Run("wrapped driver errors are still mapped", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("insert user: %w", pgError("23505", "users_telegram_id_key"))
		assert.ErrorIs(t, postgres.MapError(wrapped), store.ErrTelegramIDExists)
	})
}

func TestViolationPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(pgError("23505", "users_telegram_id_key")))
	assert.False(t, postgres.IsUniqueViolation(pgError("23503", "")))
	assert.False(t, postgres.IsUniqueViolation(errors.New("plain")))

	assert.True(t, postgres.IsForeignKeyViolation(pgError("23503", "")))
	assert.False(t, postgres.IsForeignKeyViolation(pgError("23505", "")))
}
