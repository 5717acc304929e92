package config

import (
	"time"

	"github.com/heartmarshall/studytrack/internal/domain"
)

// Config is the root application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	SRS     SRSConfig     `yaml:"srs"`
	Study   StudyConfig   `yaml:"study"`
}

// Storage drivers.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// StorageConfig selects where the study records are persisted.
type StorageConfig struct {
	Driver     string         `yaml:"driver"      env:"STORAGE_DRIVER"      env-default:"file"`
	Dir        string         `yaml:"dir"         env:"STORAGE_DIR"         env-default:"./data"`
	SQLitePath string         `yaml:"sqlite_path" env:"STORAGE_SQLITE_PATH" env-default:"./data/studytrack.db"`
	Postgres   PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// SRSConfig holds spaced-repetition scheduler parameters.
type SRSConfig struct {
	DesiredRetention   float64 `yaml:"desired_retention"  env:"SRS_DESIRED_RETENTION" env-default:"0.9"`
	MaxIntervalDays    int     `yaml:"max_interval_days"  env:"SRS_MAX_INTERVAL"      env-default:"365"`
	EnableFuzz         bool    `yaml:"enable_fuzz"        env:"SRS_ENABLE_FUZZ"       env-default:"false"`
	LearningStepsRaw   string  `yaml:"learning_steps"     env:"SRS_LEARNING_STEPS"    env-default:"1m,10m"`
	RelearningStepsRaw string  `yaml:"relearning_steps"   env:"SRS_RELEARNING_STEPS"  env-default:"10m"`

	// LearningSteps is parsed from LearningStepsRaw during validation.
	LearningSteps []time.Duration `yaml:"-" env:"-"`
	// RelearningSteps is parsed from RelearningStepsRaw during validation.
	RelearningSteps []time.Duration `yaml:"-" env:"-"`
}

// StudyConfig holds calendar and content settings.
type StudyConfig struct {
	// Timezone is an IANA name; "Local" uses the system zone.
	Timezone    string `yaml:"timezone"     env:"STUDY_TIMEZONE"     env-default:"Local"`
	ContentFile string `yaml:"content_file" env:"STUDY_CONTENT_FILE" env-default:"./content/flashcards.json"`
}

// Domain returns the scheduler parameters as a domain value. Call after Validate.
func (s SRSConfig) Domain() domain.SRSConfig {
	return domain.SRSConfig{
		DesiredRetention: s.DesiredRetention,
		MaxIntervalDays:  s.MaxIntervalDays,
		EnableFuzz:       s.EnableFuzz,
		LearningSteps:    s.LearningSteps,
		RelearningSteps:  s.RelearningSteps,
	}
}
