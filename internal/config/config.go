package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	APIBaseURL     string        `mapstructure:"API_BASE_URL"`
	UseMockData    bool          `mapstructure:"USE_MOCK_DATA"`
	MockDelay      time.Duration `mapstructure:"MOCK_DELAY"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	StateDir       string        `mapstructure:"STATE_DIR"`
	StubPort       string        `mapstructure:"STUB_PORT"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("API_BASE_URL", "http://localhost:3000/api")
	v.SetDefault("USE_MOCK_DATA", true)
	v.SetDefault("MOCK_DELAY", "500ms")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STATE_DIR", "")
	v.SetDefault("STUB_PORT", "3000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
