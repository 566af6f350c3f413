package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the catalog service.
type Config struct {
	Port     string
	MongoURL string
	DBName   string
	Env      string
}

// LoadConfig loads environment variables into Config struct and validates them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:     os.Getenv("PORT"),
		MongoURL: os.Getenv("MONGODB_URI"),
		DBName:   os.Getenv("MONGODB_DATABASE"),
		Env:      os.Getenv("ENV"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBName == "" {
		cfg.DBName = "catalog"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	return cfg, nil
}
