package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host      string `yaml:"host" json:"host"`
	Port      int    `yaml:"port" json:"port"`
	JwtSecret string `yaml:"jwt_secret" json:"jwt_secret"`
	// JwtExpireHours bounds token lifetime; 0 falls back to 24.
	JwtExpireHours int `yaml:"jwt_expire_hours" json:"jwt_expire_hours"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type PricingConfig struct {
	// Workers bounds concurrent product writes during a bulk reprice.
	Workers int `yaml:"workers" json:"workers"`
}

type AppConfig struct {
	System   SysConfig     `yaml:"system" json:"system"`
	Web      WebConfig     `yaml:"web" json:"web"`
	Database DBConfig      `yaml:"database" json:"database"`
	Logger   LogConfig     `yaml:"logger" json:"logger"`
	Pricing  PricingConfig `yaml:"pricing" json:"pricing"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "nizargold",
		Location: "Asia/Damascus",
		Workdir:  "/var/nizargold",
		Debug:    true,
	},
	Web: WebConfig{
		Host:           "0.0.0.0",
		Port:           1816,
		JwtSecret:      "9b6de5cc-nizargold-0cc2-4e23",
		JwtExpireHours: 24,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "nizargold",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/nizargold/nizargold.log",
	},
	Pricing: PricingConfig{
		Workers: 8,
	},
}

func setEnvValue(name string, f func(v string)) {
	if value := os.Getenv(name); value != "" {
		f(value)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	if value := os.Getenv(name); value != "" {
		f(cast.ToInt64(value))
	}
}

func setEnvBoolValue(name string, f func(v bool)) {
	if value := os.Getenv(name); value != "" {
		f(cast.ToBool(value))
	}
}

// LoadConfig reads the YAML configuration file and applies NIZARGOLD_* env
// overrides. A missing file yields the built-in defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			cfg = new(AppConfig)
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("NIZARGOLD_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("NIZARGOLD_SYSTEM_LOCATION", func(v string) { cfg.System.Location = v })
	setEnvBoolValue("NIZARGOLD_SYSTEM_DEBUG", func(v bool) { cfg.System.Debug = v })

	setEnvValue("NIZARGOLD_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvInt64Value("NIZARGOLD_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("NIZARGOLD_WEB_JWT_SECRET", func(v string) { cfg.Web.JwtSecret = v })

	setEnvValue("NIZARGOLD_DB_TYPE", func(v string) { cfg.Database.Type = v })
	setEnvValue("NIZARGOLD_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt64Value("NIZARGOLD_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("NIZARGOLD_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("NIZARGOLD_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("NIZARGOLD_DB_PWD", func(v string) { cfg.Database.Passwd = v })

	setEnvValue("NIZARGOLD_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvBoolValue("NIZARGOLD_LOGGER_FILE_ENABLE", func(v bool) { cfg.Logger.FileEnable = v })

	setEnvInt64Value("NIZARGOLD_PRICING_WORKERS", func(v int64) { cfg.Pricing.Workers = int(v) })

	if cfg.Logger.Filename == "" {
		cfg.Logger.Filename = filepath.Join(cfg.System.Workdir, "nizargold.log")
	}

	return cfg
}
