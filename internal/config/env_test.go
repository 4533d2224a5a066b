package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "GIN_MODE", "STORE_DRIVER", "MYSQL_DSN", "MONGO_URI", "MONGO_DB", "CORS_ALLOWED_ORIGINS", "CONFIG_FILE"} {
		t.Setenv(k, "")
	}

	env := LoadEnv()
	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, StoreMySQL, env.StoreDriver)
	assert.Equal(t, []string{"*"}, env.CORSOrigins)
}

func TestLoadOverlaysConfigFile(t *testing.T) {
	t.Setenv("APP_ADDR", ":9000")
	t.Setenv("STORE_DRIVER", "mysql")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("CONFIG_FILE", "")

	path := filepath.Join(t.TempDir(), "planner.yaml")
	body := "store_driver: Memory\nmongo_db: trips_test\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	env, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", env.AppAddr, "env value should survive when file omits it")
	assert.Equal(t, StoreMemory, env.StoreDriver)
	assert.Equal(t, "trips_test", env.MongoDB)
	require.Len(t, env.CORSOrigins, 2)
	assert.Equal(t, "http://b.test", env.CORSOrigins[1])
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
