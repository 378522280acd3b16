package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/recruithub/hiring-pipeline/internal/lifecycle"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"hiring_pipeline"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	LogLevel string `envconfig:"HIRING_PIPELINE_LOG_LEVEL" default:"info"`
	// PassThreshold is the minimum evaluation score that makes a candidate
	// interview eligible (compared as score >= threshold).
	PassThreshold int `envconfig:"HIRING_PIPELINE_PASS_THRESHOLD" default:"60"`
	// MaxTaskLinks caps the total task links per candidate.
	MaxTaskLinks int `envconfig:"HIRING_PIPELINE_MAX_TASK_LINKS" default:"10"`
	// EventTopic is the topic domain events are produced on.
	EventTopic string `envconfig:"HIRING_PIPELINE_EVENT_TOPIC" default:"recruithub.hiring.events"`
	// MetricsAddress is the listen address of the prometheus endpoint.
	MetricsAddress string `envconfig:"HIRING_PIPELINE_METRICS_ADDRESS" default:":8080"`
	// MigrationFolder holds goose SQL migrations; empty means gorm
	// auto-migration.
	MigrationFolder string `envconfig:"HIRING_PIPELINE_MIGRATIONS_FOLDER" default:""`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a config suitable for tests: an in-memory sqlite
// database and the documented engine defaults.
func NewDefault() *Config {
	return &Config{
		Database: &dbConfig{
			Type: "sqlite",
			Name: ":memory:",
		},
		Service: &svcConfig{
			LogLevel:      "debug",
			PassThreshold: 60,
			MaxTaskLinks:  10,
			EventTopic:    "recruithub.hiring.events",
		},
	}
}

// Lifecycle maps the configured knobs onto the engine's pure config.
func (c *Config) Lifecycle() lifecycle.Config {
	cfg := lifecycle.DefaultConfig()
	if c.Service == nil {
		return cfg
	}
	if c.Service.PassThreshold > 0 {
		cfg.PassThreshold = c.Service.PassThreshold
	}
	if c.Service.MaxTaskLinks > 0 {
		cfg.MaxTaskLinks = c.Service.MaxTaskLinks
	}
	return cfg
}
