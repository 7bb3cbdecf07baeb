package config

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/mercadorenta/rentas-client/pkg/logger"
)

type API struct {
	BaseURL string        `yaml:"baseUrl" envconfig:"API_BASE_URL"`
	Timeout time.Duration `yaml:"timeout" envconfig:"API_TIMEOUT"`
}

type Poll struct {
	ChatInterval  time.Duration `yaml:"chatInterval" envconfig:"CHAT_POLL_INTERVAL"`
	BadgeInterval time.Duration `yaml:"badgeInterval" envconfig:"BADGE_POLL_INTERVAL"`
	ChatSendBurst int           `yaml:"chatSendBurst" envconfig:"CHAT_SEND_BURST"`
}

type Config struct {
	API  API        `yaml:"api"`
	Poll Poll       `yaml:"poll"`
	Log  logger.Log `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
)

// NewConfig reads config from environment over the defaults; options win.
func NewConfig(ops ...Option) Config {
	once.Do(func() {
		config := Config{
			API: API{
				BaseURL: "http://localhost:5000/api",
				Timeout: time.Minute,
			},
			Poll: Poll{
				ChatInterval:  7 * time.Second,
				BadgeInterval: 15 * time.Second,
				ChatSendBurst: 3,
			},
		}
		if err := envconfig.Process("", &config); err != nil {
			log.Fatal("NewConfig ", err)
		}
		for _, op := range ops {
			op(&config)
		}
		cfg = config
		printConfig(cfg)
	})

	return cfg
}

func printConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

type Option func(*Config)

func WithLogLevel(level zapcore.Level) Option {
	return func(c *Config) {
		c.Log.LogLevel = level
	}
}

func WithBaseURL(u string) Option {
	return func(c *Config) {
		c.API.BaseURL = u
	}
}

func WithChatInterval(d time.Duration) Option {
	return func(c *Config) {
		c.Poll.ChatInterval = d
	}
}
