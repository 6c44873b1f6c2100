package store_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phrazzld/quiz-api/internal/store"
)

// TestErrorDefinitions ensures that the error definitions in the store
// package wrap their generic parents and can be used with errors.Is.
func TestErrorDefinitions(t *testing.T) {
	t.Parallel()

	t.Run("not found family", func(t *testing.T) {
		t.Parallel()

		for _, err := range []error{
			store.ErrUserNotFound,
			store.ErrQuizNotFound,
			store.ErrQuestionNotFound,
			store.ErrAnswerNotFound,
		} {
			assert.True(t, errors.Is(err, store.ErrNotFound), "%v should wrap ErrNotFound", err)
			assert.False(t, errors.Is(err, store.ErrDuplicate), "%v should not wrap ErrDuplicate", err)
			assert.True(t, store.IsNotFoundError(err))
			assert.False(t, store.IsDuplicateError(err))
		}
	})

	t.Run("duplicate family", func(t *testing.T) {
		t.Parallel()

		for _, err := range []error{
			store.ErrTelegramIDExists,
			store.ErrDuplicateAnswer,
			store.ErrSessionExists,
		} {
			assert.True(t, errors.Is(err, store.ErrDuplicate), "%v should wrap ErrDuplicate", err)
			assert.False(t, errors.Is(err, store.ErrNotFound), "%v should not wrap ErrNotFound", err)
			assert.True(t, store.IsDuplicateError(err))
			assert.False(t, store.IsNotFoundError(err))
		}
	})

	t.Run("entity-specific errors stay distinguishable", func(t *testing.T) {
		t.Parallel()

		assert.False(t, errors.Is(store.ErrUserNotFound, store.ErrQuizNotFound))
		assert.False(t, errors.Is(store.ErrTelegramIDExists, store.ErrSessionExists))
	})

	t.Run("wrapped errors stay detectable", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("creating session: %w", store.ErrSessionExists)
		assert.True(t, errors.Is(wrapped, store.ErrSessionExists))
		assert.True(t, errors.Is(wrapped, store.ErrDuplicate))
		assert.True(t, store.IsDuplicateError(wrapped))
	})
}

func TestOptional(t *testing.T) {
	t.Parallel()

	t.Run("zero value means leave unchanged", func(t *testing.T) {
		t.Parallel()

		var f store.Optional[string]
		assert.False(t, f.Valid)
	})

	t.Run("Set marks the field valid", func(t *testing.T) {
		t.Parallel()

		f := store.Set("en_AU")
		assert.True(t, f.Valid)
		assert.Equal(t, "en_AU", f.Value)
	})

	t.Run("a set nil pointer is distinct from unset", func(t *testing.T) {
		t.Parallel()

		cleared := store.Set[*string](nil)
		assert.True(t, cleared.Valid)
		assert.Nil(t, cleared.Value)

		var untouched store.Optional[*string]
		assert.False(t, untouched.Valid)
	})
}

func TestUserUpdateIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, store.UserUpdate{}.IsZero())
	assert.False(t, store.UserUpdate{Language: store.Set("en_AU")}.IsZero())

	name := "Smith"
	assert.False(t, store.UserUpdate{LastName: store.Set(&name)}.IsZero())
	assert.False(t, store.UserUpdate{Username: store.Set[*string](nil)}.IsZero())
}
