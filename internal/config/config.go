package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/sem-titulo/controle-financeiro/internal/importer"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	MySQL    MySQLConfig    `mapstructure:"mysql"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Business BusinessConfig `mapstructure:"business"`
	Importer ImporterConfig `mapstructure:"importer"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type MySQLConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type KafkaConfig struct {
	Brokers []string         `mapstructure:"brokers"`
	Topic   KafkaTopicConfig `mapstructure:"topic"`
}

type KafkaTopicConfig struct {
	BalancoEvents string `mapstructure:"balanco_events"`
}

type AuthConfig struct {
	// JWTSecret verifies the bearer tokens issued by the auth service.
	JWTSecret string `mapstructure:"jwt_secret"`
}

type BusinessConfig struct {
	MaxRetryCount         int `mapstructure:"max_retry_count"`
	ResumoCacheTTLMinutes int `mapstructure:"resumo_cache_ttl_minutes"`
}

// ImporterConfig overrides the compiled-in normalization rules. Empty
// fields fall back to importer.DefaultRules.
type ImporterConfig struct {
	NotionAno                int      `mapstructure:"notion_ano"`
	RotulosAutotransferencia []string `mapstructure:"rotulos_autotransferencia"`
	CategoriasInternas       []string `mapstructure:"categorias_internas"`
	NomeTitular              string   `mapstructure:"nome_titular"`
	NomesConhecidos          []string `mapstructure:"nomes_conhecidos"`
	PrefixosLoja             []string `mapstructure:"prefixos_loja"`
}

// Rules merges the configured overrides over the defaults.
func (c ImporterConfig) Rules() importer.Rules {
	rules := importer.DefaultRules()
	if len(c.RotulosAutotransferencia) > 0 {
		rules.RotulosAutotransferencia = c.RotulosAutotransferencia
	}
	if len(c.CategoriasInternas) > 0 {
		rules.CategoriasInternas = c.CategoriasInternas
	}
	if c.NomeTitular != "" {
		rules.NomeTitular = c.NomeTitular
	}
	if len(c.NomesConhecidos) > 0 {
		rules.NomesConhecidos = c.NomesConhecidos
	}
	if len(c.PrefixosLoja) > 0 {
		rules.PrefixosLoja = c.PrefixosLoja
	}
	return rules
}

// NotionAnoOuPadrao returns the configured Notion import year, defaulting
// to 2025 (the year the exports were produced for).
func (c ImporterConfig) NotionAnoOuPadrao() int {
	if c.NotionAno != 0 {
		return c.NotionAno
	}
	return 2025
}

// Load reads and parses the YAML configuration file.
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("lendo arquivo de configuração: %w", err)
	}

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("interpretando configuração: %w", err)
	}

	if cfg.Business.MaxRetryCount == 0 {
		cfg.Business.MaxRetryCount = 3
	}
	if cfg.Business.ResumoCacheTTLMinutes == 0 {
		cfg.Business.ResumoCacheTTLMinutes = 10
	}
	if cfg.Kafka.Topic.BalancoEvents == "" {
		cfg.Kafka.Topic.BalancoEvents = "balanco.events"
	}

	return cfg, nil
}
