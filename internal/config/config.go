package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Storage backends selectable with STORAGE.
const (
	StorageLevel  = "level"
	StorageFile   = "file"
	StorageMemory = "memory"
)

// Config is captured once at startup. Changes to the environment after
// NewConfig returns have no effect.
type Config struct {
	ServerAddress   string `yaml:"server_address"`
	GRPCAddress     string `yaml:"grpc_address"`
	DBPath          string `yaml:"db_path"`
	FileStoragePath string `yaml:"file_storage_path"`
	Storage         string `yaml:"storage"`
	DatabaseDSN     string `yaml:"database_dsn"`
	LogLevel        string `yaml:"log_level"`

	// MasterKey is only read from the environment.
	MasterKey    string `yaml:"-"`
	HasMasterKey bool   `yaml:"-"`
}

// LookupFunc matches the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// NewConfig builds the configuration from the process environment.
func NewConfig() (*Config, error) {
	return Load(os.LookupEnv)
}

// Load builds the configuration from defaults, then the YAML file named by
// CONFIG, then the individual environment variables.
func Load(lookup LookupFunc) (*Config, error) {
	cfg := &Config{
		ServerAddress:   "127.0.0.1:7103",
		GRPCAddress:     "",
		DBPath:          "./db",
		FileStoragePath: "./db/records.jsonl",
		Storage:         StorageLevel,
		DatabaseDSN:     "",
		LogLevel:        "info",
	}

	if path, ok := lookup("CONFIG"); ok && path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if envServerAddress, ok := lookup("SERVER_ADDRESS"); ok && envServerAddress != "" {
		cfg.ServerAddress = envServerAddress
	}

	if envGRPCAddress, ok := lookup("GRPC_ADDRESS"); ok {
		cfg.GRPCAddress = envGRPCAddress
	}

	if envDBPath, ok := lookup("DB_PATH"); ok && envDBPath != "" {
		cfg.DBPath = envDBPath
	}

	if envFileStoragePath, ok := lookup("FILE_STORAGE_PATH"); ok && envFileStoragePath != "" {
		cfg.FileStoragePath = envFileStoragePath
	}

	if envStorage, ok := lookup("STORAGE"); ok && envStorage != "" {
		cfg.Storage = envStorage
	}

	if envDatabaseDSN, ok := lookup("DATABASE_DSN"); ok {
		cfg.DatabaseDSN = envDatabaseDSN
	}

	if envLogLevel, ok := lookup("LOG_LEVEL"); ok && envLogLevel != "" {
		cfg.LogLevel = envLogLevel
	}

	// Set-but-empty still counts as configured.
	cfg.MasterKey, cfg.HasMasterKey = lookup("MASTER_KEY")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageLevel, StorageFile, StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}

	if c.ServerAddress == "" {
		return fmt.Errorf("server address is empty")
	}

	return nil
}
