package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"ContentFront/pkg/util"
	"ContentFront/pkg/xerr"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap/zapcore"
)

// DefaultPath 未指定 --config 时读取的配置文件
const DefaultPath = "configs/config_local.toml"

const EnvDevelopment = "development"

type MainConfig struct {
	AppName     string `toml:"appName"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Environment string `toml:"environment"`
}

type UpstreamConfig struct {
	APIAddress     string `toml:"apiAddress"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
}

type SessionConfig struct {
	SecretKey     string `toml:"secretKey"`
	CookieName    string `toml:"cookieName"`
	LifetimeHours int    `toml:"lifetimeHours"`
}

type CorsConfig struct {
	AllowedOrigins []string `toml:"allowedOrigins"`
}

type SecurityConfig struct {
	ForceHTTPS            bool   `toml:"forceHTTPS"`
	ContentSecurityPolicy string `toml:"contentSecurityPolicy"`
	STSSeconds            int64  `toml:"stsSeconds"`
}

type LogConfig struct {
	LogPath    string `toml:"logPath"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"maxSizeMB"`
	MaxBackups int    `toml:"maxBackups"`
	MaxAgeDays int    `toml:"maxAgeDays"`
	Compress   bool   `toml:"compress"`
}

type Config struct {
	MainConfig     `toml:"mainConfig"`
	UpstreamConfig `toml:"upstreamConfig"`
	SessionConfig  `toml:"sessionConfig"`
	CorsConfig     `toml:"corsConfig"`
	SecurityConfig `toml:"securityConfig"`
	LogConfig      `toml:"logConfig"`
}

// Default 返回内置默认配置
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName:     "content-front",
			Host:        "0.0.0.0",
			Port:        8000,
			Environment: "production",
		},
		UpstreamConfig: UpstreamConfig{
			TimeoutSeconds: 10,
		},
		SessionConfig: SessionConfig{
			CookieName:    "session",
			LifetimeHours: 31 * 24,
		},
		SecurityConfig: SecurityConfig{
			ContentSecurityPolicy: "default-src 'self'",
			STSSeconds:            31536000,
		},
		LogConfig: LogConfig{
			LogPath:    "logs/content-front.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 5,
			MaxAgeDays: 30,
			Compress:   true,
		},
	}
}

// Load 依次应用默认值、TOML 文件、环境变量，然后校验。
// path 为空时读取 DefaultPath，且该文件不存在时不报错。
func Load(path string) (*Config, error) {
	conf := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if _, err := toml.DecodeFile(path, conf); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	if err := conf.applyEnv(); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) applyEnv() error {
	setString(&c.MainConfig.AppName, "APP_NAME")
	setString(&c.MainConfig.Host, "HOST")
	setString(&c.MainConfig.Environment, "APP_ENV")
	setString(&c.UpstreamConfig.APIAddress, "API_ADDRESS")
	setString(&c.SessionConfig.SecretKey, "SECRET_KEY")
	setString(&c.SessionConfig.CookieName, "SESSION_COOKIE_NAME")
	setString(&c.LogConfig.LogPath, "LOG_PATH")
	setString(&c.LogConfig.Level, "LOG_LEVEL")

	if err := setInt(&c.MainConfig.Port, "PORT"); err != nil {
		return err
	}
	if err := setInt(&c.UpstreamConfig.TimeoutSeconds, "UPSTREAM_TIMEOUT_SECONDS"); err != nil {
		return err
	}
	if raw, ok := lookup("CORS_ORIGINS"); ok {
		c.CorsConfig.AllowedOrigins = util.SplitAndTrim(raw, ",")
	}
	if raw, ok := lookup("FORCE_HTTPS"); ok {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return xerr.NewConfigurationError("FORCE_HTTPS", "must be a boolean")
		}
		c.SecurityConfig.ForceHTTPS = v
	}
	return nil
}

// Validate 校验配置，失败时返回 *xerr.ConfigurationError
func (c *Config) Validate() error {
	if c.MainConfig.Environment == "" {
		c.MainConfig.Environment = EnvDevelopment
	}
	if c.MainConfig.Port < 1 || c.MainConfig.Port > 65535 {
		return xerr.NewConfigurationError("port", "must be between 1 and 65535")
	}
	if c.UpstreamConfig.TimeoutSeconds <= 0 {
		return xerr.NewConfigurationError("upstream timeoutSeconds", "must be positive")
	}
	if c.SessionConfig.SecretKey == "" {
		if !c.IsDevelopment() {
			return xerr.NewConfigurationError("SECRET_KEY", "must be set outside development")
		}
		// 开发环境使用进程级临时密钥，重启后旧会话失效
		c.SessionConfig.SecretKey = util.RandomKey()
	}
	if c.SessionConfig.CookieName == "" {
		return xerr.NewConfigurationError("session cookieName", "must not be empty")
	}
	if c.SessionConfig.LifetimeHours <= 0 {
		return xerr.NewConfigurationError("session lifetimeHours", "must be positive")
	}
	for _, origin := range c.CorsConfig.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			return xerr.NewConfigurationError("CORS_ORIGINS", fmt.Sprintf("origin %q must be * or start with http:// or https://", origin))
		}
	}
	if _, err := zapcore.ParseLevel(c.LogConfig.Level); err != nil {
		return xerr.NewConfigurationError("LOG_LEVEL", err.Error())
	}
	return nil
}

// IsDevelopment 是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.MainConfig.Environment == EnvDevelopment
}

// Addr 监听地址
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.MainConfig.Host, c.MainConfig.Port)
}

// UpstreamTimeout 上游调用超时
func (c *Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.UpstreamConfig.TimeoutSeconds) * time.Second
}

// SessionLifetime 会话 cookie 有效期
func (c *Config) SessionLifetime() time.Duration {
	return time.Duration(c.SessionConfig.LifetimeHours) * time.Hour
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func setString(dst *string, key string) {
	if v, ok := lookup(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := lookup(key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return xerr.NewConfigurationError(key, "must be an integer")
	}
	*dst = n
	return nil
}
