package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LEAFSCAN_SERVER_PORT.
const EnvPrefix = "LEAFSCAN"

// Config is the full service configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Server     ServerConfig     `mapstructure:"server"`
	Model      ModelConfig      `mapstructure:"model"`
	Uploads    UploadsConfig    `mapstructure:"uploads"`
	Preprocess PreprocessConfig `mapstructure:"preprocess"`
}

type AppConfig struct {
	Name      string `mapstructure:"name" validate:"required"`
	Env       string `mapstructure:"env" validate:"oneof=development production test"`
	LogLevel  string `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	SecretKey string `mapstructure:"secret_key" validate:"required"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port" validate:"required,numeric"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes" validate:"gt=0"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout" validate:"gte=0"`
}

type ModelConfig struct {
	Path        string `mapstructure:"path" validate:"required"`
	LibraryPath string `mapstructure:"library_path"`
	InputName   string `mapstructure:"input_name" validate:"required"`
	OutputName  string `mapstructure:"output_name" validate:"required"`
}

type UploadsConfig struct {
	Dir       string `mapstructure:"dir" validate:"required"`
	URLPrefix string `mapstructure:"url_prefix" validate:"required,startswith=/"`
}

type PreprocessConfig struct {
	ImageSize     int    `mapstructure:"image_size" validate:"gt=0"`
	Interpolation string `mapstructure:"interpolation" validate:"oneof=nearest bilinear bicubic mitchell lanczos2 lanczos3"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "leafscan")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.secret_key", "supersecretkey")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.max_upload_bytes", 16<<20)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("model.path", "models/model.onnx")
	v.SetDefault("model.library_path", "")
	v.SetDefault("model.input_name", "input")
	v.SetDefault("model.output_name", "output")

	v.SetDefault("uploads.dir", "static/images")
	v.SetDefault("uploads.url_prefix", "/static/images")

	v.SetDefault("preprocess.image_size", 224)
	v.SetDefault("preprocess.interpolation", "bicubic")
}

// Load reads defaults, then the optional YAML file at configPath, then
// LEAFSCAN_* environment overrides.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Plain PORT is honoured for platforms that only set that.
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// IsProduction reports whether app.env is production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
