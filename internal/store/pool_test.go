package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/cep-market-client/internal/adapter"
)

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 10, open)
	assert.Equal(t, 2, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = NormalizeConnectionPoolSettings(4, 8, time.Minute, time.Minute)
	assert.Equal(t, 4, open)
	assert.Equal(t, 4, idle)
}

func TestContentHash(t *testing.T) {
	j := adapter.NewJCS()

	a, err := ContentHash(j, []byte(`{"b":[1,2],"a":"x"}`))
	require.NoError(t, err)
	b, err := ContentHash(j, []byte("{\n  \"a\": \"x\",\n  \"b\": [1, 2]\n}"))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := ContentHash(j, []byte(`{"a":"x","b":[2,1]}`))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = ContentHash(j, []byte(`not json`))
	assert.Error(t, err)
}
