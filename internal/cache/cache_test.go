package cache_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sdforge/sdc/internal/cache"
)

func TestSetGetRoundTrip(t *testing.T) {
	s := cache.New()
	require.NoError(t, s.Open(":memory:"))
	defer s.Close()
	require.NoError(t, s.InitSchema())

	hash := cache.ContentHash([]byte("model-bytes"), []byte(`{"outputVarNames":["a"]}`))

	_, ok, err := s.Get(hash)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(hash, []byte(`{"variables":[]}`), 1700000000))

	got, ok, err := s.Get(hash)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"variables":[]}`, string(got))
}

func TestContentHashStableAndDistinct(t *testing.T) {
	a := cache.ContentHash([]byte("x"), []byte("y"))
	b := cache.ContentHash([]byte("x"), []byte("y"))
	require.Equal(t, a, b)

	c := cache.ContentHash([]byte("x"), []byte("z"))
	require.NotEqual(t, a, c)
}
