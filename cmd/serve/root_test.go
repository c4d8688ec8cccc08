package serve

import (
	"os"
	"path/filepath"
	"testing"

	cmdUtil "github.com/ValentinKolb/dPaste/cmd/util"
	"github.com/ValentinKolb/dPaste/lib/keygen"
	"github.com/ValentinKolb/dPaste/lib/store"
	"github.com/ValentinKolb/dPaste/rpc/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newViper returns a viper bound to the serve flags with their defaults
func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	cmdUtil.ConfigureEnv(v)
	require.NoError(t, v.BindPFlags(ServeCmd.PersistentFlags()))
	return v
}

func TestDefaults(t *testing.T) {
	config, err := readServerConfig(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:7777", config.Endpoint)
	assert.Equal(t, int64(10), config.TimeoutSecond)
	assert.Equal(t, store.TypeFile, config.Storage)
	assert.Equal(t, "data", config.DataPath)
	assert.Equal(t, 400000, config.MaxLength)
	assert.Equal(t, 10, config.KeyLength)
	assert.Equal(t, keygen.DefaultPrefix, config.KeyPrefix)
	assert.Equal(t, keygen.KindRandom, config.KeyGenerator)
	assert.Equal(t, 16, config.MaxAttempts)
	assert.Equal(t, "info", config.LogLevel)
	assert.False(t, config.WatchDocuments)
	assert.Empty(t, config.Documents)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("DPASTE_STORAGE", "bolt")
	t.Setenv("DPASTE_MAX_LENGTH", "1000")
	t.Setenv("DPASTE_KEY_GENERATOR", "phonetic")

	config, err := readServerConfig(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, store.TypeBolt, config.Storage)
	assert.Equal(t, 1000, config.MaxLength)
	assert.Equal(t, keygen.KindPhonetic, config.KeyGenerator)
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dpaste.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"storage": "memory",
		"key-length": 6,
		"documents": {"About": "about.md", "howto": "docs/howto.md"}
	}`), 0o644))

	v := newViper(t)
	v.Set("config", path)

	config, err := readServerConfig(v)
	require.NoError(t, err)
	assert.Equal(t, store.TypeMemory, config.Storage)
	assert.Equal(t, 6, config.KeyLength)
	// viper lowercases map keys
	assert.Equal(t, map[string]string{"about": "about.md", "howto": "docs/howto.md"}, config.Documents)
}

func TestInvalidConfig(t *testing.T) {
	v := newViper(t)
	v.Set("storage", "tape")
	_, err := readServerConfig(v)
	assert.ErrorIs(t, err, common.ErrInvalidStorage)

	v = newViper(t)
	v.Set("config", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = readServerConfig(v)
	assert.Error(t, err)
}
