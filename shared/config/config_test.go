package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPublic = `storage: pg
threads_per_board: 10
replies_per_preview: 3
deleted_reply_text: "[deleted]"
max_text_length: 10000
password_scheme: plain
http_addr: ":8080"
cors_allowed_origins: ["http://localhost:3000"]
create_rate_per_second: 1
https: true
log_level: debug
`

const validPrivate = `pg:
  host: localhost
  port: 5432
  user: board
  password: board
  dbname: board
`

func writeConfig(t *testing.T, public, private string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "public.yaml"), []byte(public), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "private.yaml"), []byte(private), 0o600))
	return dir
}

func TestMustLoad(t *testing.T) {
	cfg := MustLoad(writeConfig(t, validPublic, validPrivate))

	assert.Equal(t, "pg", cfg.Public.Storage)
	assert.Equal(t, 10, cfg.Public.ThreadsPerBoard)
	assert.Equal(t, 3, cfg.Public.RepliesPerPreview)
	assert.Equal(t, "[deleted]", cfg.Public.DeletedReplyText)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Public.CorsAllowedOrigins)
	assert.True(t, cfg.Public.HTTPS)
	require.NotNil(t, cfg.Private.Pg)
	assert.Equal(t, 5432, cfg.Private.Pg.Port)
}

func TestMustLoad_RequiredFields(t *testing.T) {
	// replies_per_preview is intentionally missing
	public := `storage: memory
threads_per_board: 10
deleted_reply_text: "[deleted]"
max_text_length: 100
password_scheme: plain
http_addr: ":8080"
`
	dir := writeConfig(t, public, "")

	assert.Panics(t, func() { MustLoad(dir) })
}

func TestMustLoad_MissingFile(t *testing.T) {
	assert.Panics(t, func() { MustLoad(t.TempDir()) })
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{Public: Public{
			Storage:           "memory",
			ThreadsPerBoard:   10,
			RepliesPerPreview: 3,
			DeletedReplyText:  "[deleted]",
			MaxTextLength:     100,
			PasswordScheme:    "plain",
			HttpAddr:          ":8080",
		}}
	}

	t.Run("memory needs no private settings", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("unknown storage", func(t *testing.T) {
		cfg := base()
		cfg.Public.Storage = "redis"
		assert.Error(t, cfg.Validate())
	})

	t.Run("mongo requires uri and database", func(t *testing.T) {
		cfg := base()
		cfg.Public.Storage = "mongo"
		assert.Error(t, cfg.Validate(), "database missing")

		cfg.Public.MongoDatabase = "board"
		var missing *MissingError
		assert.ErrorAs(t, cfg.Validate(), &missing)
		assert.Equal(t, "mongo_uri", missing.Field)

		cfg.Private.MongoURI = "mongodb://localhost:27017"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("pg requires connection block", func(t *testing.T) {
		cfg := base()
		cfg.Public.Storage = "pg"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown password scheme", func(t *testing.T) {
		cfg := base()
		cfg.Public.PasswordScheme = "md5"
		assert.Error(t, cfg.Validate())
	})
}
