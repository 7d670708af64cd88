package main

import (
	"os"
	"testing"

	"househand/backend/internal/config"
	"househand/backend/internal/repositories"
)

func TestApplicationStartup(t *testing.T) {
	os.Setenv("ENVIRONMENT", "development")
	os.Setenv("DB_HOST", "localhost")
	os.Setenv("REDIS_HOST", "localhost")
	defer func() {
		os.Unsetenv("ENVIRONMENT")
		os.Unsetenv("DB_HOST")
		os.Unsetenv("REDIS_HOST")
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg == nil {
		t.Fatal("Configuration should not be nil")
	}

	t.Log("Application configuration loaded successfully")
}

func TestProductionRequiresSecrets(t *testing.T) {
	os.Setenv("ENVIRONMENT", "production")
	defer os.Unsetenv("ENVIRONMENT")

	if _, err := config.LoadConfig(); err == nil {
		t.Error("Expected production config without secrets to fail")
	}
}

func TestDatabaseConfigFromEnvironment(t *testing.T) {
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_NAME", "househand_test")
	defer func() {
		os.Unsetenv("DB_HOST")
		os.Unsetenv("DB_NAME")
	}()

	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	dbConfig := repositories.FromConfig(cfg)
	if dbConfig.Host != "db.internal" {
		t.Errorf("Expected DB host 'db.internal', got %q", dbConfig.Host)
	}
	if dbConfig.Name != "househand_test" {
		t.Errorf("Expected DB name 'househand_test', got %q", dbConfig.Name)
	}
}

func TestWorkerQueuesConfigured(t *testing.T) {
	cfg, err := config.LoadConfig()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if len(cfg.Worker.Queues) == 0 {
		t.Error("Expected at least one worker queue")
	}
}
