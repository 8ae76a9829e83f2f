package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Settings holds runtime configuration for the CLI and the HTTP server
type Settings struct {
	Server ServerSettings
	Log    LogSettings
	Engine EngineSettings
	Bulk   BulkSettings
	Output OutputSettings
}

// ServerSettings holds HTTP server settings
type ServerSettings struct {
	Port         string        `mapstructure:"port" validate:"required"`
	Mode         string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	MaxUploadMB  int64         `mapstructure:"max_upload_mb" validate:"gt=0"`
}

// LogSettings holds logging settings
type LogSettings struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// EngineSettings selects the rule table and the interest month convention
type EngineSettings struct {
	RulesPath          string `mapstructure:"rules_path"`
	InterestConvention string `mapstructure:"interest_convention" validate:"oneof=elapsed inclusive"`
}

// BulkSettings bounds bulk processing
type BulkSettings struct {
	Workers int `mapstructure:"workers" validate:"gte=1,lte=256"`
	MaxRows int `mapstructure:"max_rows" validate:"gte=1"`
}

// OutputSettings controls where reports are written
type OutputSettings struct {
	Dir    string `mapstructure:"dir" validate:"required"`
	Format string `mapstructure:"format" validate:"required"`
}

// MaxUploadBytes returns the upload limit in bytes
func (s ServerSettings) MaxUploadBytes() int64 {
	return s.MaxUploadMB << 20
}

// LoadSettings reads settings from defaults, an optional config file and
// environment variables with the TDS_ prefix (TDS_SERVER_PORT, TDS_BULK_WORKERS, ...).
func LoadSettings(configFile string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("TDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.max_upload_mb", 10)

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Engine defaults
	v.SetDefault("engine.rules_path", "")
	v.SetDefault("engine.interest_convention", "elapsed")

	// Bulk defaults
	v.SetDefault("bulk.workers", 8)
	v.SetDefault("bulk.max_rows", 50000)

	// Output defaults
	v.SetDefault("output.dir", "reports")
	v.SetDefault("output.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "TDS_SERVER_PORT",
		"server.mode":                "TDS_SERVER_MODE",
		"server.read_timeout":        "TDS_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "TDS_SERVER_WRITE_TIMEOUT",
		"server.max_upload_mb":       "TDS_SERVER_MAX_UPLOAD_MB",
		"log.level":                  "TDS_LOG_LEVEL",
		"log.format":                 "TDS_LOG_FORMAT",
		"engine.rules_path":          "TDS_ENGINE_RULES_PATH",
		"engine.interest_convention": "TDS_ENGINE_INTEREST_CONVENTION",
		"bulk.workers":               "TDS_BULK_WORKERS",
		"bulk.max_rows":              "TDS_BULK_MAX_ROWS",
		"output.dir":                 "TDS_OUTPUT_DIR",
		"output.format":              "TDS_OUTPUT_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	s := &Settings{
		Server: ServerSettings{
			Port:         v.GetString("server.port"),
			Mode:         strings.ToLower(v.GetString("server.mode")),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
		},
		Log: LogSettings{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
		Engine: EngineSettings{
			RulesPath:          v.GetString("engine.rules_path"),
			InterestConvention: strings.ToLower(v.GetString("engine.interest_convention")),
		},
		Bulk: BulkSettings{
			Workers: v.GetInt("bulk.workers"),
			MaxRows: v.GetInt("bulk.max_rows"),
		},
		Output: OutputSettings{
			Dir:    v.GetString("output.dir"),
			Format: v.GetString("output.format"),
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every settings group against its validate tags
func (s *Settings) Validate() error {
	validate := validator.New()
	for name, group := range map[string]any{
		"server": s.Server,
		"log":    s.Log,
		"engine": s.Engine,
		"bulk":   s.Bulk,
		"output": s.Output,
	} {
		if err := validate.Struct(group); err != nil {
			return fmt.Errorf("invalid %s settings: %w", name, err)
		}
	}
	return nil
}

// LoadDotEnv loads .env from the working directory, then from up to two
// parent directories. It reports whether a file was found; a missing .env
// is not an error since the environment may already be set.
func LoadDotEnv() bool {
	if err := godotenv.Load(); err == nil {
		return true
	}
	dir, err := os.Getwd()
	if err != nil {
		return false
	}
	for i := 0; i < 2; i++ {
		dir = filepath.Join(dir, "..")
		if err := godotenv.Load(filepath.Join(dir, ".env")); err == nil {
			return true
		}
	}
	return false
}
