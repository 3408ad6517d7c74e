// Package config loads the optional canvas.yaml that tunes the bindings and
// the software host.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/canvas/pkg/canvas"
	"github.com/go-drift/canvas/pkg/canvas/webgl"
	"github.com/go-drift/canvas/pkg/errors"
)

// FileName is the name of the configuration file.
const FileName = "canvas.yaml"

// MinBridgeVersion is the oldest host script whose boundary protocol these
// bindings speak.
const MinBridgeVersion = "v1.0.0"

// Default surface size, matching an unstyled HTML canvas.
const (
	DefaultWidth  = 300
	DefaultHeight = 150
)

// Config represents the optional canvas.yaml configuration.
type Config struct {
	Namespace      string        `yaml:"namespace,omitempty"`
	Bridge         BridgeConfig  `yaml:"bridge"`
	DisposeTimeout string        `yaml:"dispose_timeout,omitempty"`
	Log            LogConfig     `yaml:"log"`
	WebGL          WebGLConfig   `yaml:"webgl"`
	Surface        SurfaceConfig `yaml:"surface"`
}

// BridgeConfig describes the host script.
type BridgeConfig struct {
	Version string `yaml:"version,omitempty"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level,omitempty"`
	Development bool   `yaml:"development,omitempty"`
}

// WebGLConfig holds defaults for WebGL contexts.
type WebGLConfig struct {
	Attributes webgl.Attributes `yaml:"attributes"`
	Extensions []string          `yaml:"extensions,omitempty"`
}

// SurfaceConfig sizes surfaces created by the software host.
type SurfaceConfig struct {
	Width  int `yaml:"width,omitempty"`
	Height int `yaml:"height,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root            string
	Namespace       string
	BridgeVersion   string
	DisposeTimeout  time.Duration
	LogLevel        zap.AtomicLevel
	LogDevelopment  bool
	WebGLAttributes webgl.Attributes
	WebGLExtensions []string
	Width           int
	Height          int
}

// Default returns the configuration used when canvas.yaml is absent.
func Default() *Config {
	return &Config{WebGL: WebGLConfig{Attributes: webgl.DefaultAttributes()}}
}

// LoadOptional reads canvas.yaml from dir if present. Keys the file leaves
// out keep their Default values.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, configErr(fmt.Errorf("failed to read %s: %w", FileName, err))
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, configErr(fmt.Errorf("failed to parse %s: %w", FileName, err))
	}
	return cfg, nil
}

// Resolve loads canvas.yaml (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	r, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	r.Root = dir
	return r, nil
}

// Resolve validates cfg and fills in defaults.
func (cfg *Config) Resolve() (*Resolved, error) {
	r := &Resolved{
		Namespace:       strings.TrimSpace(cfg.Namespace),
		LogDevelopment:  cfg.Log.Development,
		WebGLAttributes: cfg.WebGL.Attributes,
		WebGLExtensions: cfg.WebGL.Extensions,
		Width:           cfg.Surface.Width,
		Height:          cfg.Surface.Height,
	}
	if r.Namespace == "" {
		r.Namespace = canvas.DefaultNamespace
	}
	if strings.Contains(r.Namespace, ".") {
		return nil, configErr(fmt.Errorf("namespace must not contain '.' (got %q)", r.Namespace))
	}

	version, err := bridgeVersion(cfg.Bridge.Version)
	if err != nil {
		return nil, err
	}
	r.BridgeVersion = version

	if s := strings.TrimSpace(cfg.DisposeTimeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d < 0 {
			return nil, configErr(fmt.Errorf("invalid dispose_timeout %q", s))
		}
		r.DisposeTimeout = d
	}

	level := strings.TrimSpace(cfg.Log.Level)
	if level == "" {
		level = "info"
	}
	r.LogLevel, err = zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, configErr(fmt.Errorf("invalid log.level: %w", err))
	}

	if r.Width == 0 {
		r.Width = DefaultWidth
	}
	if r.Height == 0 {
		r.Height = DefaultHeight
	}
	if r.Width < 0 || r.Height < 0 {
		return nil, configErr(fmt.Errorf("surface size must be positive (got %dx%d)", r.Width, r.Height))
	}
	return r, nil
}

// Options returns the RenderingContext options the configuration implies.
func (r *Resolved) Options() []canvas.Option {
	opts := []canvas.Option{canvas.WithNamespace(r.Namespace)}
	if r.DisposeTimeout > 0 {
		opts = append(opts, canvas.WithDisposeTimeout(r.DisposeTimeout))
	}
	return opts
}

// WebGLOptions returns the options for WebGL contexts, including Options.
func (r *Resolved) WebGLOptions() []webgl.Option {
	return []webgl.Option{
		webgl.WithAttributes(r.WebGLAttributes),
		webgl.WithExtensions(r.WebGLExtensions...),
		webgl.WithContextOptions(r.Options()...),
	}
}

// Logger builds the zap logger described by the log section.
func (r *Resolved) Logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if r.LogDevelopment {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = r.LogLevel
	return zc.Build()
}

// FindRoot walks up from dir to the nearest directory holding canvas.yaml or
// go.mod. It returns dir itself when neither is found.
func FindRoot(dir string) string {
	for d := dir; ; {
		for _, marker := range []string{FileName, "go.mod"} {
			if _, err := os.Stat(filepath.Join(d, marker)); err == nil {
				return d
			}
		}
		parent := filepath.Dir(d)
		if parent == d {
			return dir
		}
		d = parent
	}
}

func bridgeVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return MinBridgeVersion, nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", configErr(fmt.Errorf("bridge.version %q is not a semantic version", v))
	}
	if semver.Compare(v, MinBridgeVersion) < 0 {
		return "", configErr(fmt.Errorf("bridge.version %s is older than the minimum %s", v, MinBridgeVersion))
	}
	return semver.Canonical(v), nil
}

func configErr(err error) error {
	return &errors.CanvasError{Op: "config.Resolve", Kind: errors.KindConfig, Err: err}
}
