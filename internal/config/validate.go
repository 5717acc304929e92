package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	if err := c.SRS.validate(); err != nil {
		return fmt.Errorf("srs: %w", err)
	}

	if c.Study.Timezone != "" && c.Study.Timezone != "Local" {
		if _, err := time.LoadLocation(c.Study.Timezone); err != nil {
			return fmt.Errorf("study.timezone: %w", err)
		}
	}

	return nil
}

func (s *StorageConfig) validate() error {
	switch s.Driver {
	case DriverFile:
		if strings.TrimSpace(s.Dir) == "" {
			return fmt.Errorf("dir is required for the file driver")
		}
	case DriverSQLite:
		if strings.TrimSpace(s.SQLitePath) == "" {
			return fmt.Errorf("sqlite_path is required for the sqlite driver")
		}
	case DriverPostgres:
		if strings.TrimSpace(s.Postgres.DSN) == "" {
			return fmt.Errorf("postgres.dsn is required for the postgres driver")
		}
		if s.Postgres.MaxConns < 1 || s.Postgres.MinConns < 0 || s.Postgres.MinConns > s.Postgres.MaxConns {
			return fmt.Errorf("postgres pool needs 0 <= min_conns <= max_conns and max_conns >= 1 (got %d, %d)",
				s.Postgres.MinConns, s.Postgres.MaxConns)
		}
	default:
		return fmt.Errorf("driver must be one of %s, %s, %s (got %q)", DriverFile, DriverSQLite, DriverPostgres, s.Driver)
	}
	return nil
}

func (s *SRSConfig) validate() error {
	if s.DesiredRetention <= 0 || s.DesiredRetention >= 1 {
		return fmt.Errorf("desired_retention must be in (0, 1) (got %v)", s.DesiredRetention)
	}
	if s.MaxIntervalDays <= 0 {
		return fmt.Errorf("max_interval_days must be > 0 (got %d)", s.MaxIntervalDays)
	}

	steps, err := ParseLearningSteps(s.LearningStepsRaw)
	if err != nil {
		return fmt.Errorf("learning_steps: %w", err)
	}
	s.LearningSteps = steps

	steps, err = ParseLearningSteps(s.RelearningStepsRaw)
	if err != nil {
		return fmt.Errorf("relearning_steps: %w", err)
	}
	s.RelearningSteps = steps

	return nil
}

// ParseLearningSteps parses a comma-separated string of durations (e.g. "1m,10m")
// into a slice of time.Duration. An empty string returns a nil slice.
func ParseLearningSteps(raw string) ([]time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	steps := make([]time.Duration, 0, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, err := time.ParseDuration(p)
		if err != nil {
			return nil, fmt.Errorf("invalid duration %q: %w", p, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("duration %q must be positive", p)
		}
		steps = append(steps, d)
	}

	return steps, nil
}
