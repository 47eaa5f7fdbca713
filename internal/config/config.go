package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vango-dev/viewslot/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "viewslot.json"

	// DefaultEnterDuration is the default enter transition length.
	DefaultEnterDuration = "250ms"

	// DefaultLeaveDuration is the default leave transition length.
	DefaultLeaveDuration = "250ms"

	// DefaultNamespace is the default Prometheus namespace.
	DefaultNamespace = "viewslot"

	// DefaultSubsystem is the default Prometheus subsystem.
	DefaultSubsystem = "animation"

	// DefaultTracerName is the default OpenTelemetry tracer name.
	DefaultTracerName = "github.com/vango-dev/viewslot"

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultHost is the default inspector host.
	DefaultHost = "localhost"

	// DefaultPort is the default inspector port.
	DefaultPort = 7070
)

// Config represents the complete viewslot.json configuration.
type Config struct {
	// Animation configures the CSS animator.
	Animation AnimationConfig `json:"animation,omitempty"`

	// Metrics configures transition metrics.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Tracing configures transition spans.
	Tracing TracingConfig `json:"tracing,omitempty"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `json:"logLevel,omitempty"`

	// Inspector configures the server started by "viewslot serve".
	Inspector InspectorConfig `json:"inspector,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// AnimationConfig contains enter and leave transition settings.
type AnimationConfig struct {
	Enter TransitionConfig `json:"enter,omitempty"`
	Leave TransitionConfig `json:"leave,omitempty"`
}

// TransitionConfig describes one CSS transition.
type TransitionConfig struct {
	// Class is added for the whole transition.
	Class string `json:"class,omitempty"`

	// ActiveClass is added while the transition runs.
	ActiveClass string `json:"activeClass,omitempty"`

	// Duration is a Go duration such as "250ms". "0s" disables the
	// transition.
	Duration string `json:"duration,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty"`
	Subsystem string `json:"subsystem,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	TracerName string `json:"tracerName,omitempty"`
}

// InspectorConfig contains inspector server settings.
type InspectorConfig struct {
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Animation: AnimationConfig{
			Enter: TransitionConfig{
				Class:       "au-enter",
				ActiveClass: "au-enter-active",
				Duration:    DefaultEnterDuration,
			},
			Leave: TransitionConfig{
				Class:       "au-leave",
				ActiveClass: "au-leave-active",
				Duration:    DefaultLeaveDuration,
			},
		},
		Metrics: MetricsConfig{
			Namespace: DefaultNamespace,
			Subsystem: DefaultSubsystem,
		},
		Tracing: TracingConfig{
			TracerName: DefaultTracerName,
		},
		LogLevel: DefaultLogLevel,
		Inspector: InspectorConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for viewslot.json in the directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads and validates configuration from the specified file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E123").
				WithDetail("No " + ConfigFileName + " found at " + path).
				WithSuggestion("Pass --config with the path to a configuration file, or omit it to use defaults")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.configPath = path
	return cfg, nil
}

// Parse decodes and validates configuration JSON. Missing fields keep their
// defaults.
func Parse(data []byte) (*Config, error) {
	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it is set. Otherwise it loads viewslot.json
// from the working directory if one exists and falls back to defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.New("E120").Wrap(err)
	}
	if !Exists(wd) {
		return New(), nil
	}
	return Load(wd)
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	// Add newline at end of file
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	d := New()

	// Animation
	fill(&c.Animation.Enter.Class, d.Animation.Enter.Class)
	fill(&c.Animation.Enter.ActiveClass, d.Animation.Enter.ActiveClass)
	fill(&c.Animation.Enter.Duration, d.Animation.Enter.Duration)
	fill(&c.Animation.Leave.Class, d.Animation.Leave.Class)
	fill(&c.Animation.Leave.ActiveClass, d.Animation.Leave.ActiveClass)
	fill(&c.Animation.Leave.Duration, d.Animation.Leave.Duration)

	// Observability
	fill(&c.Metrics.Namespace, d.Metrics.Namespace)
	fill(&c.Metrics.Subsystem, d.Metrics.Subsystem)
	fill(&c.Tracing.TracerName, d.Tracing.TracerName)
	fill(&c.LogLevel, d.LogLevel)

	// Inspector
	fill(&c.Inspector.Host, d.Inspector.Host)
	if c.Inspector.Port == 0 {
		c.Inspector.Port = d.Inspector.Port
	}
}

func fill(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	for _, d := range []struct{ name, value string }{
		{"animation.enter.duration", c.Animation.Enter.Duration},
		{"animation.leave.duration", c.Animation.Leave.Duration},
	} {
		if _, err := parseDuration(d.value); err != nil {
			return errors.New("E121").
				WithDetailf("%s: %v", d.name, err).
				WithSuggestion(`Use a value such as "250ms" or "0s"`)
		}
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return errors.New("E122").
			WithDetailf("logLevel %q is not a known level", c.LogLevel)
	}
	if c.Inspector.Port < 0 || c.Inspector.Port > 65535 {
		return errors.New("E120").
			WithDetail("inspector.port must be between 0 and 65535")
	}
	return nil
}

// EnterDuration returns the parsed enter duration.
func (c *Config) EnterDuration() time.Duration {
	d, _ := parseDuration(c.Animation.Enter.Duration)
	return d
}

// LeaveDuration returns the parsed leave duration.
func (c *Config) LeaveDuration() time.Duration {
	d, _ := parseDuration(c.Animation.Leave.Duration)
	return d
}

// Level returns the configured log level. Unknown levels map to info.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// InspectorAddress returns the listen address for the inspector.
func (c *Config) InspectorAddress() string {
	return c.Inspector.Host + ":" + strconv.Itoa(c.Inspector.Port)
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, errors.Newf(errors.CategoryConfig, "negative duration %s", s)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	err := l.UnmarshalText([]byte(strings.ToUpper(s)))
	return l, err
}
