// Package config loads process-wide defaults for the maintenance core from
// a YAML file, applies environment-variable overrides for secrets, and
// watches the file for hot-reloadable fields (collection intervals,
// threshold defaults) the way the Scheduler and Threshold Registry need to
// pick up operator edits without a restart.
package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// JobConfig is one scheduler job entry (§4.4): a collection type polled on
// a fixed interval, plus the always-present maintenance/case sweeps.
type JobConfig struct {
	Name            string        `yaml:"name"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Enabled         bool          `yaml:"enabled"`
	interval        time.Duration `yaml:"-"`
}

func (j JobConfig) Interval() time.Duration {
	if j.interval != 0 {
		return j.interval
	}
	return time.Duration(j.IntervalSeconds) * time.Second
}

// ThresholdDefaults are the process-wide fallbacks for §4.6's
// get_threshold(key, maintenance_id) when no per-maintenance override
// exists in ThresholdOverride.
type ThresholdDefaults struct {
	TransceiverTxPowerMin    float64 `yaml:"transceiver_tx_power_min"`
	TransceiverTxPowerMax    float64 `yaml:"transceiver_tx_power_max"`
	TransceiverRxPowerMin    float64 `yaml:"transceiver_rx_power_min"`
	TransceiverRxPowerMax    float64 `yaml:"transceiver_rx_power_max"`
	TransceiverTemperatureMin float64 `yaml:"transceiver_temperature_min"`
	TransceiverTemperatureMax float64 `yaml:"transceiver_temperature_max"`
	TransceiverVoltageMin    float64 `yaml:"transceiver_voltage_min"`
	TransceiverVoltageMax    float64 `yaml:"transceiver_voltage_max"`
	HealthyStatuses          []string `yaml:"healthy_statuses"`
	PingSuccessRateMin       float64 `yaml:"ping_success_rate_min"`
}

func defaultThresholds() ThresholdDefaults {
	return ThresholdDefaults{
		TransceiverTxPowerMin:     -10,
		TransceiverTxPowerMax:     3,
		TransceiverRxPowerMin:     -15,
		TransceiverRxPowerMax:     0,
		TransceiverTemperatureMin: 10,
		TransceiverTemperatureMax: 70,
		TransceiverVoltageMin:     3,
		TransceiverVoltageMax:     3.6,
		HealthyStatuses:           []string{"ok", "good", "normal", "active"},
		PingSuccessRateMin:        80,
	}
}

// CaseEngineConfig holds the case_engine section (§4.7.3/4.7.4). The
// stable window is loaded here but pkg/cases does not read it: the
// auto-resolve sweep uses a fixed ten-minute window.
type CaseEngineConfig struct {
	StableWindowSeconds int `yaml:"stable_window_seconds"`
}

func (c CaseEngineConfig) StableWindow() time.Duration {
	return time.Duration(c.StableWindowSeconds) * time.Second
}

// SourceConfig is one upstream API family's connection settings (§6.1).
type SourceConfig struct {
	BaseURL        string        `yaml:"base_url"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	TokenEnv       string        `yaml:"token_env"`
}

func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func (s SourceConfig) Token() string {
	if s.TokenEnv == "" {
		return ""
	}
	return os.Getenv(s.TokenEnv)
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type DatabaseConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"-"`
}

// DefaultDatabaseConfig mirrors the teacher's internal/database.DefaultConfig.
func DefaultDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "maintcore",
		Database:        "maintcore",
		SSLMode:         "disable",
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// LoadFromEnv overrides database secrets from the environment, matching the
// teacher's DB_HOST/DB_PORT/... convention; invalid values are ignored and
// the existing (default or YAML-loaded) value is kept.
func (d *DatabaseConfig) LoadFromEnv() {
	if v := os.Getenv("DB_HOST"); v != "" {
		d.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			d.Port = p
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		d.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		d.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		d.Database = v
	}
	if v := os.Getenv("DB_SSL_MODE"); v != "" {
		d.SSLMode = v
	}
}

func (d DatabaseConfig) Validate() error {
	if d.Host == "" {
		return fmt.Errorf("database host must not be empty")
	}
	if d.Port <= 0 || d.Port > 65535 {
		return fmt.Errorf("database port %d out of range", d.Port)
	}
	if d.Database == "" {
		return fmt.Errorf("database name must not be empty")
	}
	return nil
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode)
}

type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

type RetentionConfig struct {
	SweepIntervalMinutes int `yaml:"sweep_interval_minutes"`
	GraceDays            int `yaml:"grace_days"`
}

func (r RetentionConfig) SweepInterval() time.Duration {
	return time.Duration(r.SweepIntervalMinutes) * time.Minute
}

func (r RetentionConfig) Grace() time.Duration {
	return time.Duration(r.GraceDays) * 24 * time.Hour
}

type NotifyConfig struct {
	SlackWebhookEnv string `yaml:"slack_webhook_env"`
	Channel         string `yaml:"channel"`
}

func (n NotifyConfig) WebhookURL() string {
	if n.SlackWebhookEnv == "" {
		return ""
	}
	return os.Getenv(n.SlackWebhookEnv)
}

// Config is the root process configuration.
type Config struct {
	Server     ServerConfig                `yaml:"server"`
	Database   DatabaseConfig              `yaml:"database"`
	Redis      RedisConfig                 `yaml:"redis"`
	Sources    map[string]SourceConfig     `yaml:"sources"`
	Jobs       []JobConfig                 `yaml:"jobs"`
	Thresholds ThresholdDefaults           `yaml:"thresholds"`
	CaseEngine CaseEngineConfig            `yaml:"case_engine"`
	Retention  RetentionConfig             `yaml:"retention"`
	Notify     NotifyConfig                `yaml:"notify"`
	FetchConcurrency int                   `yaml:"fetch_concurrency"`
	GracefulShutdownSeconds int            `yaml:"graceful_shutdown_seconds"`

	mu   sync.RWMutex
	path string
}

func (c *Config) GracefulShutdown() time.Duration {
	return time.Duration(c.GracefulShutdownSeconds) * time.Second
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Database: DefaultDatabaseConfig(),
		Redis:    RedisConfig{Addr: "localhost:6379", DB: 0},
		Sources: map[string]SourceConfig{
			"fna":       {BaseURL: "http://fna.internal", TimeoutSeconds: 10, TokenEnv: "FNA_TOKEN"},
			"dna":       {BaseURL: "http://dna.internal", TimeoutSeconds: 10, TokenEnv: "DNA_TOKEN"},
			"gnms_ping": {BaseURL: "http://gnms.internal", TimeoutSeconds: 15, TokenEnv: "GNMS_TOKEN"},
		},
		Jobs: []JobConfig{
			{Name: "transceiver", IntervalSeconds: 300, Enabled: true},
			{Name: "port_channel", IntervalSeconds: 300, Enabled: true},
			{Name: "neighbor", IntervalSeconds: 600, Enabled: true},
			{Name: "interface_error", IntervalSeconds: 300, Enabled: true},
			{Name: "static_acl", IntervalSeconds: 900, Enabled: true},
			{Name: "dynamic_acl", IntervalSeconds: 900, Enabled: true},
			{Name: "mac_table", IntervalSeconds: 300, Enabled: true},
			{Name: "fan", IntervalSeconds: 600, Enabled: true},
			{Name: "power", IntervalSeconds: 600, Enabled: true},
			{Name: "version", IntervalSeconds: 1800, Enabled: true},
			{Name: "ping", IntervalSeconds: 60, Enabled: true},
			{Name: "interface_status", IntervalSeconds: 300, Enabled: true},
			{Name: "arp_source", IntervalSeconds: 600, Enabled: true},
			{Name: "client_ping", IntervalSeconds: 60, Enabled: true},
			{Name: "client_ingest", IntervalSeconds: 120, Enabled: true},
			{Name: "case_sync", IntervalSeconds: 120, Enabled: true},
			{Name: "case_ping_state", IntervalSeconds: 60, Enabled: true},
			{Name: "case_sweep", IntervalSeconds: 300, Enabled: true},
			{Name: "change_flag_refresh", IntervalSeconds: 600, Enabled: true},
			{Name: "retention_sweep", IntervalSeconds: 3600, Enabled: true},
		},
		Thresholds: defaultThresholds(),
		CaseEngine: CaseEngineConfig{StableWindowSeconds: 600},
		Retention:  RetentionConfig{SweepIntervalMinutes: 60, GraceDays: 30},
		Notify:     NotifyConfig{SlackWebhookEnv: "SLACK_WEBHOOK_URL", Channel: "#maintenance"},
		FetchConcurrency: 10,
		GracefulShutdownSeconds: 30,
	}
}

// Load reads the YAML file at path on top of process defaults. A missing
// field in the file keeps its default; present fields overwrite.
func Load(path string) (*Config, error) {
	cfg := defaults()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Database.LoadFromEnv()
	if err := cfg.Database.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}
	return cfg, nil
}

// Watch starts an fsnotify watcher on the config's source file and invokes
// onChange with a freshly reloaded Config whenever the file is written or
// re-created; a file that fails to load is skipped. cmd/maintcore does not
// call it, and the Scheduler's jobs and intervals are fixed once
// registered.
func Watch(path string, onChange func(*Config)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching config %s: %w", path, err)
	}

	go func() {
		for event := range watcher.Events {
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				continue
			}
			onChange(cfg)
		}
	}()

	return watcher, nil
}

// Snapshot returns a shallow copy of c taken under its read lock. Kept
// deliberately simple: the core never mutates nested slices/maps in place
// after Load.
func (c *Config) Snapshot() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return *c
}
