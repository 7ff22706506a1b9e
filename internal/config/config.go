package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Skufu/GoPredict/internal/classifier"
	"github.com/Skufu/GoPredict/internal/recommend"
)

const (
	configPathEnv = "PREDICTOR_CONFIG"

	BackendONNX = "onnx"
	BackendHTTP = "http"

	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds every setting the server and CLI need.
type Config struct {
	Server         ServerConfig     `yaml:"server"`
	Log            LogConfig        `yaml:"log"`
	Classifier     ClassifierConfig `yaml:"classifier"`
	Tables         TablesConfig     `yaml:"tables"`
	Database       DatabaseConfig   `yaml:"database"`
	VocabularyPath string           `yaml:"vocabularyPath"`
}

// ServerConfig covers the HTTP listener.
type ServerConfig struct {
	Port         string   `yaml:"port"`
	GinMode      string   `yaml:"ginMode"`
	MaxBodyBytes int64    `yaml:"maxBodyBytes"`
	AllowOrigins []string `yaml:"allowOrigins"`
}

// LogConfig selects slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ClassifierConfig picks the model backend.
type ClassifierConfig struct {
	Backend string                `yaml:"backend"`
	ONNX    classifier.ONNXConfig `yaml:"onnx"`
	URL     string                `yaml:"url"`
	APIKey  string                `yaml:"apiKey"`
	Timeout time.Duration         `yaml:"timeout"`
}

// TablesConfig picks where the reference tables come from.
type TablesConfig struct {
	Source string             `yaml:"source"`
	Dir    string             `yaml:"dir"`
	Files  recommend.CSVFiles `yaml:"files"`
}

// DatabaseConfig is used when tables are read from Postgres.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// Load applies defaults, then the YAML file named by PREDICTOR_CONFIG, then
// .env and process environment overrides, and validates the result.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:         "8080",
			GinMode:      "release",
			MaxBodyBytes: 1 << 20,
			AllowOrigins: []string{"*"},
		},
		Log: LogConfig{Level: "info", Format: "text"},
		Classifier: ClassifierConfig{
			Backend: BackendONNX,
			ONNX:    classifier.ONNXConfig{ModelPath: "model/disease_classifier.onnx"},
			Timeout: 10 * time.Second,
		},
		Tables: TablesConfig{Source: SourceCSV, Dir: "mapping"},
	}
}

// Validate rejects combinations that cannot start.
func (c Config) Validate() error {
	switch c.Classifier.Backend {
	case BackendONNX:
		if c.Classifier.ONNX.ModelPath == "" {
			return errors.New("MODEL_PATH is required for the onnx backend")
		}
	case BackendHTTP:
		if c.Classifier.URL == "" {
			return errors.New("CLASSIFIER_URL is required when CLASSIFIER_BACKEND=http")
		}
	default:
		return fmt.Errorf("unknown classifier backend %q", c.Classifier.Backend)
	}

	switch c.Tables.Source {
	case SourceCSV:
		if c.Tables.Dir == "" {
			return errors.New("MAPPING_DIR is required for csv tables")
		}
	case SourcePostgres:
		if c.Database.URL == "" {
			return errors.New("DATABASE_URL is required when TABLE_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown table source %q", c.Tables.Source)
	}

	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unknown GIN_MODE %q", c.Server.GinMode)
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid MAX_BODY_BYTES %d", c.Server.MaxBodyBytes)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	setString(&c.Server.Port, "PORT")
	setString(&c.Server.GinMode, "GIN_MODE")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Classifier.Backend, "CLASSIFIER_BACKEND")
	setString(&c.Classifier.ONNX.ModelPath, "MODEL_PATH")
	setString(&c.Classifier.ONNX.LibraryPath, "ORT_LIBRARY_PATH")
	setString(&c.Classifier.ONNX.InputName, "MODEL_INPUT_NAME")
	setString(&c.Classifier.ONNX.OutputName, "MODEL_OUTPUT_NAME")
	setString(&c.Classifier.URL, "CLASSIFIER_URL")
	setString(&c.Classifier.APIKey, "CLASSIFIER_API_KEY")
	setString(&c.Tables.Source, "TABLE_SOURCE")
	setString(&c.Tables.Dir, "MAPPING_DIR")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.VocabularyPath, "VOCABULARY_PATH")

	c.Classifier.Backend = strings.ToLower(c.Classifier.Backend)
	c.Tables.Source = strings.ToLower(c.Tables.Source)

	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		c.Server.AllowOrigins = splitList(v)
	}
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("MAX_BODY_BYTES: %w", err)
		}
		c.Server.MaxBodyBytes = n
	}
	if v := os.Getenv("CLASSIFIER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("CLASSIFIER_TIMEOUT: %w", err)
		}
		c.Classifier.Timeout = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
