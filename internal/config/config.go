package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Client  ClientConfig  `yaml:"client"`
	Motion  MotionConfig  `yaml:"motion"`
	Content ContentConfig `yaml:"content"`
	Inbox   InboxConfig   `yaml:"inbox"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Host           string   `yaml:"host"`
	AuthToken      string   `yaml:"auth_token"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// MaxConnections caps concurrent WebSocket clients. Zero means unlimited.
	MaxConnections int `yaml:"max_connections"`
}

type ClientConfig struct {
	// URL of a folio server's WebSocket endpoint. Empty renders the local
	// content without connecting.
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
	Theme string `yaml:"theme"`
}

type MotionConfig struct {
	FrameRate        int           `yaml:"frame_rate"`
	TypewriterDelay  time.Duration `yaml:"typewriter_delay"`
	CounterDuration  time.Duration `yaml:"counter_duration"`
	CounterThreshold float64       `yaml:"counter_threshold"`
	RevealThreshold  float64       `yaml:"reveal_threshold"`
	RevealStagger    time.Duration `yaml:"reveal_stagger"`
	EntryDistance    int           `yaml:"entry_distance"`
}

type ContentConfig struct {
	// Path to a portfolio YAML file. Empty uses the built-in portfolio.
	Path  string `yaml:"path"`
	Watch bool   `yaml:"watch"`
}

type InboxConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File receives TUI logs, since the terminal belongs to the UI.
	File string `yaml:"file"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8080,
			Host: "127.0.0.1",
		},
		Client: ClientConfig{
			Theme: "dark",
		},
		Motion: MotionConfig{
			FrameRate:        60,
			TypewriterDelay:  150 * time.Millisecond,
			CounterDuration:  2 * time.Second,
			CounterThreshold: 0.5,
			RevealThreshold:  0.1,
			RevealStagger:    100 * time.Millisecond,
			EntryDistance:    2,
		},
		Content: ContentConfig{
			Watch: true,
		},
		Inbox: InboxConfig{
			Path: "folio-inbox.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaultConfig()
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault loads path, or returns the defaults when the file does not
// exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultConfig(), nil
	}
	return cfg, err
}

// Validate checks ranges that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.MaxConnections < 0 {
		return fmt.Errorf("server.max_connections must not be negative")
	}
	if c.Motion.FrameRate <= 0 {
		return fmt.Errorf("motion.frame_rate must be positive")
	}
	for name, v := range map[string]float64{
		"motion.counter_threshold": c.Motion.CounterThreshold,
		"motion.reveal_threshold":  c.Motion.RevealThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s %.2f outside [0, 1]", name, v)
		}
	}
	if c.Motion.TypewriterDelay < 0 || c.Motion.CounterDuration < 0 || c.Motion.RevealStagger < 0 {
		return fmt.Errorf("motion durations must not be negative")
	}
	switch strings.ToLower(c.Client.Theme) {
	case "", "dark", "light":
	default:
		return fmt.Errorf("client.theme %q must be dark or light", c.Client.Theme)
	}
	return nil
}

// FrameInterval is the delay between animation frames.
func (c *Config) FrameInterval() time.Duration {
	if c.Motion.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.Motion.FrameRate)
}

// Addr returns the server listen address.
func (c *Config) Addr() string {
	return c.Server.Addr()
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadEnv reads .env style files into the process environment. Missing
// files are skipped and variables already set are kept.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from FOLIO_* variables. PORT is honoured for
// hosting platforms that inject it.
func (c *Config) ApplyEnv() error {
	if v, ok := os.LookupEnv("FOLIO_HOST"); ok {
		c.Server.Host = v
	}
	for _, name := range []string{"PORT", "FOLIO_PORT"} {
		if v, ok := os.LookupEnv(name); ok {
			port, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			c.Server.Port = port
		}
	}
	if v, ok := os.LookupEnv("FOLIO_TOKEN"); ok {
		c.Server.AuthToken = v
		c.Client.Token = v
	}
	if v, ok := os.LookupEnv("FOLIO_ALLOWED_ORIGINS"); ok {
		c.Server.AllowedOrigins = nil
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.Server.AllowedOrigins = append(c.Server.AllowedOrigins, o)
			}
		}
	}
	if v, ok := os.LookupEnv("FOLIO_URL"); ok {
		c.Client.URL = v
	}
	if v, ok := os.LookupEnv("FOLIO_THEME"); ok {
		c.Client.Theme = v
	}
	if v, ok := os.LookupEnv("FOLIO_CONTENT"); ok {
		c.Content.Path = v
	}
	if v, ok := os.LookupEnv("FOLIO_INBOX"); ok {
		c.Inbox.Path = v
	}
	if v, ok := os.LookupEnv("FOLIO_LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv("FOLIO_LOG_FILE"); ok {
		c.Log.File = v
	}
	return nil
}

// GenerateToken returns a random 32-character hex token for server auth.
func GenerateToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
