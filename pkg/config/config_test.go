package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(dir string) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper(t.TempDir()))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.HttpPort)
	assert.Equal(t, "english", cfg.Bip39.Language)
	assert.Equal(t, 128, cfg.Bip39.Strength)
	assert.Equal(t, "pbkdf2", cfg.Keystore.KDF)
	assert.Equal(t, 262144, cfg.Keystore.Iterations)
	assert.Equal(t, "blake2b-256", cfg.Keystore.MAC)
	assert.Equal(t, "m/44'/60'/0'/0/0", cfg.KMS.DefaultPath)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
app:
  env: production
  http_port: "9000"
bip39:
  language: japanese
  strength: 256
keystore:
  kdf: scrypt
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600))
	t.Setenv("APP_HTTP_PORT", "9999")

	cfg, err := Load(newViper(dir))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "9999", cfg.App.HttpPort, "环境变量应覆盖配置文件")
	assert.Equal(t, "japanese", cfg.Bip39.Language)
	assert.Equal(t, 256, cfg.Bip39.Strength)
	assert.Equal(t, "scrypt", cfg.Keystore.KDF)
}

func TestValidate(t *testing.T) {
	base := Config{
		Bip39:    Bip39Config{Strength: 128},
		Keystore: KeystoreConfig{KDF: "pbkdf2", Iterations: 1},
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.Bip39.Strength = 100
	assert.Error(t, bad.Validate())

	bad = base
	bad.Keystore.KDF = "argon2"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Keystore.Iterations = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.Keystore.Iterations = 4*262144 + 1
	assert.Error(t, bad.Validate(), "迭代次数超过 keystore 上限")

	bad = base
	bad.Keystore.MAC = "blake256"
	assert.Error(t, bad.Validate())

	ok := base
	ok.Keystore.MAC = "blake3"
	assert.NoError(t, ok.Validate())
}

func TestLoadBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("app: [\n"), 0600))
	_, err := Load(newViper(dir))
	assert.Error(t, err)
}
