package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	pstrings "rollcall/pkg/platform/strings"
)

// Config captures everything one ingestion run needs.
type Config struct {
	DataRoot     string   `yaml:"data_root"`
	OutputPath   string   `yaml:"output_path"`
	DBDriver     string   `yaml:"db_driver"`
	DBDSN        string   `yaml:"db_dsn"`
	Workers      int      `yaml:"workers"`
	LogLevel     string   `yaml:"log_level"`
	LogFormat    string   `yaml:"log_format"`
	MetricsFile  string   `yaml:"metrics_file"`
	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`
}

// Drivers accepted for DBDriver.
var Drivers = []string{"sqlite", "pgx", "postgres"}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		DataRoot:   "data/json",
		OutputPath: "full_data/votes.json",
		DBDriver:   "sqlite",
		DBDSN:      "full_data/votes.db",
		Workers:    runtime.NumCPU(),
		LogLevel:   "info",
		LogFormat:  "text",
		KafkaTopic: "rollcall.records",
	}
}

// Load builds a Config from defaults, then the YAML file at path (skipped
// when path is empty), then ROLLCALL_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("ROLLCALL_DATA_ROOT", &c.DataRoot)
	str("ROLLCALL_OUTPUT_PATH", &c.OutputPath)
	str("ROLLCALL_DB_DRIVER", &c.DBDriver)
	str("ROLLCALL_DB_DSN", &c.DBDSN)
	str("ROLLCALL_LOG_LEVEL", &c.LogLevel)
	str("ROLLCALL_LOG_FORMAT", &c.LogFormat)
	str("ROLLCALL_METRICS_FILE", &c.MetricsFile)
	str("ROLLCALL_KAFKA_TOPIC", &c.KafkaTopic)

	if v, ok := lookup("ROLLCALL_WORKERS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ROLLCALL_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v, ok := lookup("ROLLCALL_KAFKA_BROKERS"); ok && v != "" {
		c.KafkaBrokers = pstrings.SplitList(v, ",")
	}
	return nil
}

// Validate rejects configurations a run cannot start with.
func (c Config) Validate() error {
	var errs []error
	if !validDriver(c.DBDriver) {
		errs = append(errs, fmt.Errorf("db driver %q not one of %s", c.DBDriver, strings.Join(Drivers, ", ")))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if len(c.KafkaBrokers) > 0 && c.KafkaTopic == "" {
		errs = append(errs, errors.New("kafka topic is required when brokers are set"))
	}
	return errors.Join(errs...)
}

func validDriver(d string) bool {
	for _, known := range Drivers {
		if d == known {
			return true
		}
	}
	return false
}
