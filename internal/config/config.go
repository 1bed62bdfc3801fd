package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "DEMO"

type Config struct {
	Server      ServerConfig
	App         AppConfig
	Metrics     MetricsConfig
	Hostname    string
	Environment string
	LogLevel    string
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

type AppConfig struct {
	Name        string
	Version     string
	ServiceName string
	Message     string
}

type MetricsConfig struct {
	Path              string
	RuntimeCollectors bool
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 60*time.Second)
	v.SetDefault("app.name", "FastAPI Docker Demo")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.service_name", "fastapi-demo")
	v.SetDefault("app.message", "Hello World from Docker!")
	v.SetDefault("hostname", "unknown")
	v.SetDefault("environment", "development")
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.runtime_collectors", true)
	v.SetDefault("log_level", "info")
}

// Load reads configuration from defaults, an optional YAML file, the environment
// and, when flags is non-nil, the command line. configFile overrides the search path.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/docker-demo")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set by the container runtime, so read without the prefix.
	if err := v.BindEnv("hostname", "HOSTNAME"); err != nil {
		return nil, fmt.Errorf("failed to bind HOSTNAME: %w", err)
	}
	if err := v.BindEnv("environment", "ENVIRONMENT"); err != nil {
		return nil, fmt.Errorf("failed to bind ENVIRONMENT: %w", err)
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("server.port"),
			ReadTimeout:     v.GetDuration("server.read_timeout"),
			WriteTimeout:    v.GetDuration("server.write_timeout"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
			RequestTimeout:  v.GetDuration("server.request_timeout"),
		},
		App: AppConfig{
			Name:        v.GetString("app.name"),
			Version:     v.GetString("app.version"),
			ServiceName: v.GetString("app.service_name"),
			Message:     v.GetString("app.message"),
		},
		Metrics: MetricsConfig{
			Path:              v.GetString("metrics.path"),
			RuntimeCollectors: v.GetBool("metrics.runtime_collectors"),
		},
		Hostname:    v.GetString("hostname"),
		Environment: v.GetString("environment"),
		LogLevel:    v.GetString("log_level"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var flagKeys = map[string]string{
	"port":      "server.port",
	"log-level": "log_level",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with '/': %q", c.Metrics.Path)
	}
	return nil
}
