package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeExecute(t *testing.T) {
	t.Run("string panic", func(t *testing.T) {
		err := SafeExecute("svd solve", func() error {
			panic("svd: rank out of range")
		})
		require.Error(t, err)

		var panicErr *PanicError
		require.True(t, As(err, &panicErr))
		assert.Equal(t, "svd solve", panicErr.Operation)
		assert.Equal(t, "panic in svd solve: svd: rank out of range", err.Error())
		assert.NotEmpty(t, panicErr.StackTrace)
		assert.Nil(t, panicErr.Unwrap())
	})

	t.Run("error panic is unwrapped", func(t *testing.T) {
		err := SafeExecute("lu solve", func() error {
			panic(ErrSingularMatrix)
		})
		require.Error(t, err)
		assert.True(t, Is(err, ErrSingularMatrix))
	})

	t.Run("no panic returns fn error", func(t *testing.T) {
		want := NewValueError("op", "boom")
		err := SafeExecute("op", func() error { return want })
		assert.Equal(t, want, err)
	})

	t.Run("no panic no error", func(t *testing.T) {
		assert.NoError(t, SafeExecute("op", func() error { return nil }))
	})
}

func TestRecover_KeepsExistingError(t *testing.T) {
	fn := func() (err error) {
		defer Recover(&err, "fit")
		err = ErrEmptyData
		panic("late failure")
	}

	err := fn()
	require.Error(t, err)
	assert.True(t, Is(err, ErrEmptyData))
	assert.Contains(t, err.Error(), "panic in fit: late failure")
}
