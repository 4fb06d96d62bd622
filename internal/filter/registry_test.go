package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetCreatesOnce(t *testing.T) {
	r := NewRegistry[[]string](time.Minute)
	rec := newRecorder()
	n := 0
	create := func() (*Controller[[]string], error) {
		n++
		return NewController(UsersSchema, rec.fetch, nil), nil
	}

	a, created, err := r.Get("admin@example.com", "users", create)
	require.NoError(t, err)
	assert.True(t, created)
	b, created, err := r.Get("admin@example.com", "users", create)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, a, b)
	assert.Equal(t, 1, n)

	_, _, err = r.Get("other@example.com", "users", create)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_CreateError(t *testing.T) {
	r := NewRegistry[[]string](0)
	_, _, err := r.Get("s", "teams", func() (*Controller[[]string], error) {
		return nil, errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_DropAndExpiry(t *testing.T) {
	r := NewRegistry[[]string](time.Minute)
	rec := newRecorder()
	create := func() (*Controller[[]string], error) {
		return NewController(EvaluatedSchema, rec.fetch, nil), nil
	}

	_, _, _ = r.Get("s", "evaluated", create)
	_, _, _ = r.Get("s", "assignment", create)
	assert.True(t, r.Drop("s", "evaluated"))
	assert.False(t, r.Drop("s", "evaluated"))

	_, ok := r.Lookup("s", "assignment")
	assert.True(t, ok)

	r.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_DropSubject(t *testing.T) {
	r := NewRegistry[[]string](0)
	rec := newRecorder()
	create := func() (*Controller[[]string], error) {
		return NewController(UsersSchema, rec.fetch, nil), nil
	}
	_, _, _ = r.Get("a", "users", create)
	_, _, _ = r.Get("a", "teams", create)
	_, _, _ = r.Get("b", "users", create)

	assert.Equal(t, 2, r.DropSubject("a"))
	assert.Equal(t, 1, r.Len())
}
