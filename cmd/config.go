package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"talent-desk/internal/filter"
	"talent-desk/internal/intake"
	"talent-desk/internal/notifier"

	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置。
type AppConfig struct {
	Server   ServerConfig         `yaml:"server"`
	Database DatabaseConfig       `yaml:"database"`
	Log      LogConfig            `yaml:"log"`
	Filters  FiltersConfig        `yaml:"filters"`
	Intake   intake.Config        `yaml:"intake"`
	Email    notifier.EmailConfig `yaml:"email"`
}

type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ShutdownTimeout string `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// FiltersConfig 覆盖区间范围与选项列表，未配置的部分使用内置值。
type FiltersConfig struct {
	Domains DomainsConfig  `yaml:"domains"`
	Catalog filter.Catalog `yaml:"catalog"`
}

// DomainsConfig 中为 nil 的区间表示未配置，[0, 0] 也是合法取值。
type DomainsConfig struct {
	Salary     *filter.Range `yaml:"salary"`
	Experience *filter.Range `yaml:"experience"`
	MatchScore *filter.Range `yaml:"match_score"`
}

// ResolvedDomains 用默认值补齐未配置的区间。
func (c FiltersConfig) ResolvedDomains() filter.Domains {
	d := filter.DefaultDomains()
	pick := func(dst *filter.Range, src *filter.Range) {
		if src != nil {
			*dst = *src
		}
	}
	pick(&d.Salary, c.Domains.Salary)
	pick(&d.Experience, c.Domains.Experience)
	pick(&d.MatchScore, c.Domains.MatchScore)
	return d
}

func (c AppConfig) addr() string {
	if c.Server.Addr == "" {
		return ":8080"
	}
	return c.Server.Addr
}

func (c AppConfig) dbPath() string {
	if c.Database.Path == "" {
		return "data/talent-desk.db"
	}
	return c.Database.Path
}

func (c AppConfig) shutdownTimeout() time.Duration {
	if c.Server.ShutdownTimeout != "" {
		if d, err := time.ParseDuration(c.Server.ShutdownTimeout); err == nil && d > 0 {
			return d
		}
	}
	return 5 * time.Second
}

// loadConfig 读取 YAML 配置，path 为空时依次使用 CONFIG_FILE 与 config.yaml。文件不存在时返回默认配置。
func loadConfig(path string) (AppConfig, error) {
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return AppConfig{}, nil
		}
		return AppConfig{}, fmt.Errorf("read config: %w", err)
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
