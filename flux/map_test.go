package flux

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/fluxkit/errors"
)

func TestMap_TransformsInOrder(t *testing.T) {
	sink := NewSink[string]()
	Map(Just("a", "b", "c"), strings.ToUpper).Subscribe(sink)

	assert.Equal(t, []string{"A", "B", "C"}, sink.Values())
	assert.True(t, sink.Completed())
}

func TestMap_ChangesElementType(t *testing.T) {
	sink := NewSink[int]()
	Map(Just("a", "bb", "ccc"), func(s string) int { return len(s) }).Subscribe(sink)

	assert.Equal(t, []int{1, 2, 3}, sink.Values())
	assert.True(t, sink.Completed())
}

func TestMap_EmptyUpstream(t *testing.T) {
	sink := NewSink[string]()
	Map(Just[string](), strings.ToUpper).Subscribe(sink)

	assert.Empty(t, sink.Values())
	assert.True(t, sink.Completed())
}

func TestMap_MapperPanicBecomesOnError(t *testing.T) {
	sink := NewSink[string]()
	mapper := func(s string) string {
		if s == "b" {
			panic("bad item")
		}
		return strings.ToUpper(s)
	}

	Map(Just("a", "b", "c"), mapper).Subscribe(sink)

	assert.Equal(t, []string{"A"}, sink.Values(), "items before the failure are delivered")
	require.Error(t, sink.Err())
	assert.ErrorIs(t, sink.Err(), errors.ErrTransformFailed)
	assert.True(t, errors.IsInvalid(sink.Err()))
	assert.False(t, sink.Completed(), "a failed stream must not also complete")
}

func TestMap_SuppressesSignalsAfterFailure(t *testing.T) {
	var terminals int
	sink := NewSink[int](
		WithErrorHandler[int](func(error) { terminals++ }),
		WithCompleteHandler[int](func() { terminals++ }),
	)

	Map(Just(1, 2, 3), func(n int) int {
		if n == 1 {
			panic("first item fails")
		}
		return n
	}).Subscribe(sink)

	// The source keeps draining (no cancellation primitive), but the map
	// stage must swallow every signal after its error.
	assert.Empty(t, sink.Values())
	assert.Equal(t, 1, terminals)
	require.Error(t, sink.Err())
}

func TestMap_Stacked(t *testing.T) {
	sink := NewSink[string]()
	doubled := Map(Just(1, 2), func(n int) int { return n * 2 })
	Map(doubled, func(n int) string { return strings.Repeat("x", n) }).Subscribe(sink)

	assert.Equal(t, []string{"xx", "xxxx"}, sink.Values())
	assert.True(t, sink.Completed())
}
