package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(42), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.class.String())
	}
}

func TestWrap_Format(t *testing.T) {
	base := stderrors.New("boom")
	err := Wrap(base, "MapStage", "OnNext", "transform")

	require.Error(t, err)
	assert.Equal(t, "MapStage.OnNext: transform failed: boom", err.Error())
	assert.True(t, stderrors.Is(err, base))
}

func TestWrap_NilPassthrough(t *testing.T) {
	assert.NoError(t, Wrap(nil, "C", "M", "a"))
	assert.NoError(t, WrapTransient(nil, "C", "M", "a"))
	assert.NoError(t, WrapInvalid(nil, "C", "M", "a"))
	assert.NoError(t, WrapFatal(nil, "C", "M", "a"))
}

func TestClassifiedWrappers(t *testing.T) {
	base := stderrors.New("boom")

	tests := []struct {
		name  string
		wrap  func(error, string, string, string) error
		check func(error) bool
		class ErrorClass
	}{
		{"transient", WrapTransient, IsTransient, ErrorTransient},
		{"invalid", WrapInvalid, IsInvalid, ErrorInvalid},
		{"fatal", WrapFatal, IsFatal, ErrorFatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wrap(base, "Comp", "Method", "action")
			require.Error(t, err)

			assert.True(t, tt.check(err))
			assert.Equal(t, tt.class, Classify(err))
			assert.True(t, stderrors.Is(err, base))

			var ce *ClassifiedError
			require.True(t, stderrors.As(err, &ce))
			assert.Equal(t, "Comp", ce.Component)
			assert.Equal(t, "Method", ce.Operation)
		})
	}
}

func TestClassify_Sentinels(t *testing.T) {
	assert.Equal(t, ErrorInvalid, Classify(ErrKeyNotFound))
	assert.Equal(t, ErrorInvalid, Classify(ErrInvalidDemand))
	assert.Equal(t, ErrorInvalid, Classify(ErrInvalidConfig))
	assert.Equal(t, ErrorInvalid, Classify(ErrAlreadyRegistered))
	assert.Equal(t, ErrorFatal, Classify(ErrProtocolViolation))
	assert.Equal(t, ErrorTransient, Classify(stderrors.New("something else")))
}

func TestClassification_PreservedThroughWrapChain(t *testing.T) {
	inner := WrapFatal(ErrProtocolViolation, "Sink", "OnNext", "ordering check")
	outer := Wrap(inner, "Pipeline", "Run", "terminal stage")

	assert.True(t, IsFatal(outer))
	assert.True(t, stderrors.Is(outer, ErrProtocolViolation))
}

func TestIsChecks_NilAndUnknown(t *testing.T) {
	assert.False(t, IsTransient(nil))
	assert.False(t, IsInvalid(nil))
	assert.False(t, IsFatal(nil))
	assert.False(t, IsFatal(stderrors.New("plain")))
}
