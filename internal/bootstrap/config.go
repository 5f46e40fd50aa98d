package bootstrap

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort       string        `mapstructure:"SERVER_PORT"`
	RedisUrl         string        `mapstructure:"REDIS_URL"`
	MongoUri         string        `mapstructure:"MONGO_URI"`
	MongoDatabase    string        `mapstructure:"MONGO_DATABASE"`
	SuggestGrpcAddr  string        `mapstructure:"SUGGEST_GRPC_ADDR"` // пусто - подсказки выключены
	IsLocalCors      bool          `mapstructure:"LOCAL_CORS"`
	DefaultBoardSize int           `mapstructure:"DEFAULT_BOARD_SIZE"`
	DefaultKomi      float64       `mapstructure:"DEFAULT_KOMI"`
	MatchCacheTTL    time.Duration `mapstructure:"MATCH_CACHE_TTL"`
	RequestTimeout   time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_PORT":        ":8080",
	"REDIS_URL":          "localhost:6379",
	"MONGO_URI":          "mongodb://localhost:27017",
	"MONGO_DATABASE":     "goban",
	"SUGGEST_GRPC_ADDR":  "",
	"LOCAL_CORS":         false,
	"DEFAULT_BOARD_SIZE": 19,
	"DEFAULT_KOMI":       0.0,
	"MATCH_CACHE_TTL":    "12h",
	"REQUEST_TIMEOUT":    "5s",
}

// Setup читает .env (если он есть) и переменные окружения.
// Переменные окружения важнее файла.
func Setup(cfgPath string) (*Config, error) {
	if cfgPath != "" {
		if err := godotenv.Load(cfgPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
