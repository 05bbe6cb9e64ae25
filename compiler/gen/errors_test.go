package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Language", "rust", "unsupported language")

		assert.Contains(t, err.Error(), "buildergen: config error")
		assert.Contains(t, err.Error(), "Language")
		assert.Contains(t, err.Error(), "rust")
		assert.Contains(t, err.Error(), "unsupported language")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Filer", nil, "cannot be nil")

		assert.Contains(t, err.Error(), "Filer")
		assert.Contains(t, err.Error(), "cannot be nil")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Emitter", nil, "missing")
		assert.True(t, err.Is(ErrMissingConfig))
		assert.ErrorIs(t, fmt.Errorf("wrapped: %w", err), ErrMissingConfig)
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := NewConfigError("Emitter", nil, "missing")
		assert.True(t, IsConfigError(err))
		assert.True(t, IsConfigError(fmt.Errorf("wrapped: %w", err)))
		assert.False(t, IsConfigError(errors.New("other")))
		assert.False(t, IsConfigError(nil))
	})
}
