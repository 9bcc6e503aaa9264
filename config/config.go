package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DefaultConfigFile = "./config/config.yaml"

type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (p Postgres) ConnStr() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s", p.Host, p.User, p.Password, p.DBName, p.Port, p.SSLMode)
}

type Nats struct {
	Enabled      bool   `mapstructure:"enabled"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Stream       string `mapstructure:"stream"`
	TurnsSubject string `mapstructure:"turnsSubject"`
}

func (n Nats) ConnStr() string {
	return fmt.Sprintf("nats://%s:%s", n.Host, n.Port)
}

type Redis struct {
	URL string `mapstructure:"url"`
}

type Server struct {
	Port           int      `mapstructure:"port"`
	Host           string   `mapstructure:"host"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	CookieName     string   `mapstructure:"cookieName"`
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Data selects where the restaurant datasets come from: "files" reads the JSON
// documents under Dir, "postgres" reads the tables written by cmd/seed.
type Data struct {
	Source string `mapstructure:"source"`
	Dir    string `mapstructure:"dir"`
}

type Session struct {
	Store         string        `mapstructure:"store"`
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweepInterval"`
}

type Events struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queueSize"`
}

type Insights struct {
	ReportInterval time.Duration `mapstructure:"reportInterval"`
	Top            int           `mapstructure:"top"`
}

type Logging struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"maxSizeMB"`
}

type Config struct {
	Server   Server   `mapstructure:"server"`
	Data     Data     `mapstructure:"data"`
	Postgres Postgres `mapstructure:"postgres"`
	Redis    Redis    `mapstructure:"redis"`
	Session  Session  `mapstructure:"session"`
	Nats     Nats     `mapstructure:"nats"`
	Events   Events   `mapstructure:"events"`
	Insights Insights `mapstructure:"insights"`
	Logging  Logging  `mapstructure:"logging"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowedOrigins", []string{
		"http://localhost:5173",
		"http://localhost:5174",
		"http://localhost:3000",
		"http://127.0.0.1:5173",
		"http://127.0.0.1:5174",
	})
	v.SetDefault("server.cookieName", "session_id")

	v.SetDefault("data.source", "files")
	v.SetDefault("data.dir", "./data")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.database", "restaurant")
	v.SetDefault("postgres.sslmode", "disable")

	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("session.store", "memory")
	v.SetDefault("session.ttl", 40*time.Minute)
	v.SetDefault("session.sweepInterval", time.Minute)

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.host", "localhost")
	v.SetDefault("nats.port", "4222")
	v.SetDefault("nats.stream", "CHATBOT")
	v.SetDefault("nats.turnsSubject", "chatbot.turns")

	v.SetDefault("events.workers", 2)
	v.SetDefault("events.queueSize", 100)

	v.SetDefault("insights.reportInterval", 5*time.Minute)
	v.SetDefault("insights.top", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.maxSizeMB", 10)
}

// Load reads the YAML file at path (a missing file is not an error, defaults and
// environment variables still apply). SERVER_PORT overrides server.port and so on.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &config, nil
}

func LoadConfig() *Config {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = DefaultConfigFile
	}

	config, err := Load(path)
	if err != nil {
		log.Fatal(err)
	}

	return config
}
