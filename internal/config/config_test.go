package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigs(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0644))
	return dir
}

const minimalPrivate = `
jwt_key: "k"
assertion:
  key: "a"
`

func TestMustLoad(t *testing.T) {
	public := `
listen_addr: ":9090"
log_level: "debug"
session_ttl: 12h
forum:
  storage: "postgres"
  title_max_len: 100
`
	private := `
pg:
  host: "db"
  port: 5432
  user: "u"
  password: "p"
  dbname: "launchpad"
jwt_key: "secret"
assertion:
  issuer: "https://id.example.com"
  audience: "launchpad"
  key: "provider-secret"
`
	cfg := MustLoad(writeConfigs(t, public, private))

	assert.Equal(t, ":9090", cfg.Public.ListenAddr)
	assert.Equal(t, 12*time.Hour, cfg.JwtTTL())
	assert.Equal(t, ForumStoragePostgres, cfg.Public.Forum.Storage)
	assert.Equal(t, 100, cfg.Public.Forum.TitleMaxLen)
	// Unset limits fall back to defaults.
	assert.Equal(t, 10000, cfg.Public.Forum.BodyMaxLen)
	assert.Equal(t, "secret", cfg.JwtKey())
	assert.Equal(t, "postgres://u:p@db:5432/launchpad?sslmode=disable", cfg.Private.Pg.URL())
}

func TestMustLoad_Defaults(t *testing.T) {
	cfg := MustLoad(writeConfigs(t, "", minimalPrivate))

	assert.Equal(t, ":8080", cfg.Public.ListenAddr)
	assert.Equal(t, ForumStorageLocal, cfg.Public.Forum.Storage)
	assert.Equal(t, "data", cfg.Public.Forum.DataDir)
	assert.Equal(t, 24*time.Hour, cfg.JwtTTL())
}

func TestMustLoad_Panics(t *testing.T) {
	tests := []struct {
		name    string
		public  string
		private string
	}{
		{"unknown storage", "forum:\n  storage: \"redis\"\n", minimalPrivate},
		{"missing jwt key", "", "assertion:\n  key: \"a\"\n"},
		{"missing assertion key", "", "jwt_key: \"k\"\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := writeConfigs(t, tc.public, tc.private)
			assert.Panics(t, func() { MustLoad(dir) })
		})
	}
}

func TestMustLoad_MissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(t.TempDir()) })
}
