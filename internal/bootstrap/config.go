package bootstrap

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	RedisUrl      string `mapstructure:"REDIS_URL"`
	MongoUri      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	EventPrefix   string `mapstructure:"EVENT_PREFIX"`
	IsLocalCors   bool   `mapstructure:"LOCAL_CORS"`
	LogDebug      bool   `mapstructure:"LOG_DEBUG"`
}

// Setup reads cfgPath if it exists and lets environment variables override it.
// An empty REDIS_URL or MONGO_URI turns the matching adapter off.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgPath)
	v.SetConfigType("env")

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "familytree")
	v.SetDefault("EVENT_PREFIX", "familytree")
	v.SetDefault("LOCAL_CORS", false)
	v.SetDefault("LOG_DEBUG", false)
	v.AutomaticEnv()

	if cfgPath != "" {
		if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
			return nil, err
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
