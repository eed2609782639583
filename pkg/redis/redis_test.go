package redis

import (
	"testing"

	"github.com/jmercado/tienda-backend/config"
	"github.com/stretchr/testify/assert"
)

func TestInit_UnreachableServerLeavesNoClient(t *testing.T) {
	// Port 1 is never a redis server; the ping must fail fast.
	err := Init(&config.RedisConfig{
		Host: "127.0.0.1",
		Port: "1",
	})
	assert.Error(t, err)
	assert.Nil(t, GetClient())

	// Close is safe with no client
	assert.NoError(t, Close())
}
