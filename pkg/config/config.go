package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Bip39    Bip39Config    `mapstructure:"bip39"`
	Keystore KeystoreConfig `mapstructure:"keystore"`
	KMS      KMSConfig      `mapstructure:"kms"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
	LogLevel string `mapstructure:"log_level"`
}

type Bip39Config struct {
	Language string `mapstructure:"language"` // english, japanese, ...
	Strength int    `mapstructure:"strength"` // 熵位数 128..256
}

type KeystoreConfig struct {
	KDF        string `mapstructure:"kdf"`        // "pbkdf2" or "scrypt"
	Iterations int    `mapstructure:"iterations"` // PBKDF2 迭代次数
	ScryptN    int    `mapstructure:"scrypt_n"`
	ScryptR    int    `mapstructure:"scrypt_r"`
	ScryptP    int    `mapstructure:"scrypt_p"`
	MAC        string `mapstructure:"mac"`  // "blake2b-256" (xchainjs 兼容) 或 "blake3"
	Path       string `mapstructure:"path"` // 本地 Keystore 文件路径
	Password   string `mapstructure:"password"`
}

type KMSConfig struct {
	DefaultPath string `mapstructure:"default_path"` // 从助记词导入时的默认 BIP-32 路径
}

var Global Config

// Init 读取 config.yaml（. 或 ./config），环境变量覆盖，如 APP_HTTP_PORT、KEYSTORE_PASSWORD。
// 配置文件不存在时只使用默认值与环境变量。
func Init() error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	cfg, err := Load(v)
	if err != nil {
		return err
	}
	Global = *cfg
	return nil
}

// Load 在给定的 viper 实例上设置默认值、读取配置并解码。
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查取值范围，不访问文件系统。
func (c *Config) Validate() error {
	if c.Bip39.Strength%32 != 0 || c.Bip39.Strength < 128 || c.Bip39.Strength > 256 {
		return fmt.Errorf("bip39.strength 必须是 128..256 之间 32 的倍数, 得到 %d", c.Bip39.Strength)
	}
	switch c.Keystore.KDF {
	case "pbkdf2":
		if c.Keystore.Iterations <= 0 || c.Keystore.Iterations > 4*262144 {
			return fmt.Errorf("keystore.iterations 必须在 1..%d 之间, 得到 %d", 4*262144, c.Keystore.Iterations)
		}
	case "scrypt":
	default:
		return fmt.Errorf("keystore.kdf 不支持: %q", c.Keystore.KDF)
	}
	switch c.Keystore.MAC {
	case "", "blake2b-256", "blake3":
	default:
		return fmt.Errorf("keystore.mac 不支持: %q", c.Keystore.MAC)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "development")
	v.SetDefault("app.http_port", "8080")
	v.SetDefault("app.log_level", "")

	v.SetDefault("bip39.language", "english")
	v.SetDefault("bip39.strength", 128)

	v.SetDefault("keystore.kdf", "pbkdf2")
	v.SetDefault("keystore.iterations", 262144)
	v.SetDefault("keystore.scrypt_n", 262144)
	v.SetDefault("keystore.scrypt_r", 8)
	v.SetDefault("keystore.scrypt_p", 1)
	v.SetDefault("keystore.mac", "blake2b-256")
	v.SetDefault("keystore.path", "wallet.json")
	v.SetDefault("keystore.password", "")

	v.SetDefault("kms.default_path", "m/44'/60'/0'/0/0")
}
