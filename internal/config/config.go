package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Trivia    TriviaConfig
	Map       MapConfig
	Storage   StorageConfig
	Desktop   DesktopConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 配置文件实际路径，用于热加载（为空表示未找到配置文件）
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Host      string `mapstructure:"host"`
	Port      int    `mapstructure:"port"`
	Mode      string `mapstructure:"mode"`
	StaticDir string `mapstructure:"static_dir"`
}

// Addr 返回监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type TriviaConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Category     int           `mapstructure:"category"`
	Type         string        `mapstructure:"type"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MinInterval  time.Duration `mapstructure:"min_interval"`
	DefaultCount int           `mapstructure:"default_count"`
	MapBatchSize int           `mapstructure:"map_batch_size"`
	MaxCount     int           `mapstructure:"max_count"`
}

type MapConfig struct {
	Credits string `mapstructure:"credits"`
	Seed    int64  `mapstructure:"seed"` // 0 表示随机种子
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	SnapshotName  string `mapstructure:"snapshot_name"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioSecure   bool   `mapstructure:"minio_secure"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type DesktopConfig struct {
	Mode         string        `mapstructure:"mode"`
	Title        string        `mapstructure:"title"`
	Width        int           `mapstructure:"width"`
	Height       int           `mapstructure:"height"`
	ScreenWidth  int           `mapstructure:"screen_width"`
	ScreenHeight int           `mapstructure:"screen_height"`
	BrowserPath  string        `mapstructure:"browser_path"`
	ReadyTimeout time.Duration `mapstructure:"ready_timeout"`
	Debug        bool          `mapstructure:"debug"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.static_dir", "static")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")

	v.SetDefault("trivia.base_url", "https://opentdb.com/api.php")
	v.SetDefault("trivia.category", 22)
	v.SetDefault("trivia.type", "multiple")
	v.SetDefault("trivia.timeout", "10s")
	v.SetDefault("trivia.min_interval", "5s")
	v.SetDefault("trivia.default_count", 5)
	v.SetDefault("trivia.map_batch_size", 5)
	v.SetDefault("trivia.max_count", 50)

	v.SetDefault("map.credits", "Made by: Tek Narayan Yadav, Shivam Sharma, Abhishek Kumar Singh")
	v.SetDefault("map.seed", 0)

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "templates")
	v.SetDefault("storage.snapshot_name", "map.html")

	v.SetDefault("desktop.mode", "app")
	v.SetDefault("desktop.title", "Geography Quiz Bot")
	v.SetDefault("desktop.width", 1000)
	v.SetDefault("desktop.height", 600)
	v.SetDefault("desktop.screen_width", 1920)
	v.SetDefault("desktop.screen_height", 1080)
	v.SetDefault("desktop.ready_timeout", "10s")

	v.SetDefault("cors.allowed_origins", []string{"http://127.0.0.1:8080", "http://localhost:8080"})
	v.SetDefault("rate_limit.max_requests", 0)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig 从 path 目录读取 config.yaml（可选），并合并 QUIZ_ 前缀的环境变量
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)

	v.SetEnvPrefix("QUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 存储凭据
	_ = v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	_ = v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	_ = v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	_ = v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")

	// Tracing
	_ = v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	_ = v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" && cfg.Storage.LocalPath != "" {
		if err := os.MkdirAll(cfg.Storage.LocalPath, 0755); err != nil {
			return nil, fmt.Errorf("error creating storage dir: %w", err)
		}
	}

	return &cfg, nil
}

// Validate 检查无法通过默认值修正的配置错误
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Desktop.Mode {
	case "app", "browser", "none":
	default:
		return fmt.Errorf("invalid desktop mode %q", c.Desktop.Mode)
	}
	switch c.Storage.Type {
	case "local", "minio", "oss", "none":
	default:
		return fmt.Errorf("invalid storage type %q", c.Storage.Type)
	}
	if c.Trivia.BaseURL == "" {
		return errors.New("trivia base_url is required")
	}
	return nil
}
