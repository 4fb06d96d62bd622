package container

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackadmin/internal/config"
	"hackadmin/pkg/logger"
)

func TestNew(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name        string
		config      *config.Config
		expectRedis bool
	}{
		{
			name: "Container with Redis configured",
			config: &config.Config{
				Environment:    "test",
				RedisURL:       "redis://" + mr.Addr(),
				BackendBaseURL: "http://localhost:5000",
				BackendTimeout: time.Second,
			},
			expectRedis: true,
		},
		{
			name: "Container without Redis configured",
			config: &config.Config{
				Environment:    "test",
				BackendBaseURL: "http://localhost:5000",
			},
			expectRedis: false,
		},
		{
			name: "Container with invalid Redis URL",
			config: &config.Config{
				Environment:    "test",
				RedisURL:       "invalid://redis-url",
				BackendBaseURL: "http://localhost:5000",
			},
			expectRedis: false, // Redis client initialization fails but container creation succeeds
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(context.Background(), tt.config, logger.NewNop())
			require.NoError(t, err)
			require.NotNil(t, c)
			t.Cleanup(c.Close)

			assert.Equal(t, tt.expectRedis, c.HasRedis())
			assert.Equal(t, tt.expectRedis, c.Services.Cache.Enabled())
			assert.False(t, c.HasDatabase())

			s := c.Services
			assert.NotNil(t, s.Auth)
			assert.NotNil(t, s.Teams)
			assert.NotNil(t, s.Users)
			assert.NotNil(t, s.Assignments)
			assert.NotNil(t, s.Judges)
			assert.NotNil(t, s.Evaluations)
			assert.NotNil(t, s.Unassigned)
			assert.NotNil(t, s.Panels)
			assert.NotNil(t, s.Dashboard)
			assert.NotNil(t, s.Settings)
			assert.NotNil(t, s.Audit)
			assert.NotNil(t, s.Pages)
			assert.Equal(t, tt.config.BackendBaseURL, c.Backend.BaseURL())

			health := c.Health(context.Background())
			assert.Equal(t, "disabled", health["database"])
			if tt.expectRedis {
				assert.Equal(t, "ok", health["redis"])
			} else {
				assert.Equal(t, "disabled", health["redis"])
			}
		})
	}
}
