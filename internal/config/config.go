package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	Datasets   Datasets   `mapstructure:",squash"`
	StoreSweep StoreSweep `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Auth holds the toy single-credential gate. The bcrypt hash of the shared
// ops password lives in the environment; this is a gate for the analysis UI,
// not a security boundary.
type Auth struct {
	Secret          string `mapstructure:"auth_secret"`
	OpsUser         string `mapstructure:"ops_user"`
	OpsPasswordHash string `mapstructure:"ops_password_hash"`
}

type Datasets struct {
	TTLMinutes  int   `mapstructure:"dataset_ttl_minutes"`
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
}

type StoreSweep struct {
	CronSchedule string `mapstructure:"store_sweep_cron"`
	Enabled      bool   `mapstructure:"store_sweep_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("AUTH_SECRET", "local_dev_secret")
	viper.SetDefault("OPS_USER", "trading-ops")
	// bcrypt hash of the default local credential "secret"
	viper.SetDefault("OPS_PASSWORD_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

	viper.SetDefault("DATASET_TTL_MINUTES", 240)
	viper.SetDefault("MAX_UPLOAD_MB", 32)

	viper.SetDefault("STORE_SWEEP_CRON", "*/30 * * * *") // every half hour
	viper.SetDefault("STORE_SWEEP_ENABLED", true)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using variables loaded by godotenv (viper could not read .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads the .env file via godotenv, trying the usual locations.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not determine working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from: ", location)
			return
		}
	}

	logrus.Debug("no .env file found, relying on environment variables")
}
