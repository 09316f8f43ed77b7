package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aviationlaunchpad/launchpad/internal/config"
)

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Public: config.Public{
			Forum: config.Forum{
				Storage:     config.ForumStorageLocal,
				DataDir:     t.TempDir(),
				TitleMaxLen: 200,
				BodyMaxLen:  10000,
				ReplyMaxLen: 5000,
			},
		},
		Private: config.Private{
			JwtKey:    "test-secret",
			Assertion: config.Assertion{Key: "provider-secret"},
		},
	}
}

func TestNew_LocalStrategy(t *testing.T) {
	deps, err := New(localConfig(t))
	require.NoError(t, err)
	defer deps.Cleanup()

	assert.NotNil(t, deps.Handler)
	assert.NotNil(t, deps.AuthMiddleware)
	assert.Nil(t, deps.StorePinger, "local strategy has nothing to probe")
}

func TestNew_UnknownStrategy(t *testing.T) {
	cfg := localConfig(t)
	cfg.Public.Forum.Storage = "redis"

	_, err := New(cfg)
	require.Error(t, err)
}
