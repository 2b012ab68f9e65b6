package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Debug   bool
	AppName string
	Env     string
	Build   string

	API struct {
		BaseURL string
		Timeout time.Duration
	}

	// StateDir holds durable client state (the persisted session).
	StateDir string

	Portal struct {
		SearchDebounce  time.Duration
		RosterPageSize  int
		AbsenceDays     int
		AbsenceRate     float64
		HistoryDays     int
		HighStressLevel int
	}

	RollbarToken string
}

// NewConfig loads configuration from the environment, applying defaults first.
// A config/.env.<env> file is loaded when present.
func NewConfig() (*Config, error) {
	conf := viper.New()
	conf.SetTypeByDefaultValue(true)

	// defaults
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Every Education")
	conf.SetDefault("build", "dev")
	conf.SetDefault("api.baseURL", "http://localhost:5001/api")
	conf.SetDefault("api.timeout", 30*time.Second)
	conf.SetDefault("stateDir", defaultStateDir())
	conf.SetDefault("portal.searchDebounce", 300*time.Millisecond)
	conf.SetDefault("portal.rosterPageSize", 50)
	conf.SetDefault("portal.absenceDays", 30)
	conf.SetDefault("portal.absenceRate", 0.8)
	conf.SetDefault("portal.historyDays", 30)
	conf.SetDefault("portal.highStressLevel", 7)
	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	var c Config
	if err := conf.Unmarshal(&c); err != nil {
		return nil, err
	}
	c.Env = env
	return &c, nil
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "everyedu")
	}
	return filepath.Join(getwd(), ".everyedu")
}

func getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}
