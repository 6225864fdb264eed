package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type AppConfig struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Redis      RedisConfig      `koanf:"redis"`
	Translator TranslatorConfig `koanf:"translator"`
	Log        LogConfig        `koanf:"log"`
	JWT        JWTConfig        `koanf:"jwt"`
}

type ServerConfig struct {
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

type DatabaseConfig struct {
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	Name         string `koanf:"name"`
	SSLMode      string `koanf:"sslmode"`
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	Channel  string `koanf:"channel"`
}

type TranslatorConfig struct {
	Enabled    bool          `koanf:"enabled"`
	Endpoint   string        `koanf:"endpoint"`
	APIKey     string        `koanf:"api_key"`
	Region     string        `koanf:"region"`
	SourceLang string        `koanf:"source_lang"`
	Timeout    time.Duration `koanf:"timeout"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type JWTConfig struct {
	Secret     string        `koanf:"secret"`
	Expiration time.Duration `koanf:"expiration"`
}

// Load reads the yaml file at path, then overlays environment variables.
// An env var FOO_BAR overrides the key foo.bar. Duration values in the file
// are plain second counts.
func Load(path string) (*AppConfig, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config file %s: %w", path, err)
	}

	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.Replace(strings.ToLower(s), "_", ".", -1)
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Server.ReadTimeout *= time.Second
	cfg.Server.WriteTimeout *= time.Second
	cfg.Translator.Timeout *= time.Second
	cfg.JWT.Expiration *= time.Second

	applyJWT(cfg.JWT)

	return &cfg, nil
}

// MustLoad is Load with a fatal exit on failure, for use from main.
func MustLoad(path string) *AppConfig {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}
