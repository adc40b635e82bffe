package tuning

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/moodtunes/moodtunes-backend/internal/platform/envutil"
)

// Duration accepts either a Go duration string ("30m") or a bare number of
// seconds in YAML.
type Duration time.Duration

func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		*d = Duration(time.Duration(secs) * time.Second)
		return nil
	}
	return fmt.Errorf("parse duration %q", raw)
}

// Load reads the tuning file at path on top of the defaults. A missing file
// is not an error; the defaults already run. Environment overrides apply
// last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse tuning file %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// defaults only
		default:
			return nil, fmt.Errorf("read tuning file %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("tuning config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.MaxTurnsPerSession = envutil.Int("MAX_TURNS_PER_SESSION", c.MaxTurnsPerSession)
	c.SessionTimeout = Duration(envutil.Duration("SESSION_TIMEOUT", c.SessionTimeout.Std()))
	c.IdempotencyTTL = Duration(envutil.Duration("IDEMPOTENCY_TTL", c.IdempotencyTTL.Std()))
	c.PurgeRetention = Duration(envutil.Duration("PURGE_RETENTION", c.PurgeRetention.Std()))
	c.SweepInterval = Duration(envutil.Duration("SWEEP_INTERVAL", c.SweepInterval.Std()))
}
