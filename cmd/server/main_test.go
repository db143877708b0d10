package main

import (
	"strings"
	"testing"
	"time"

	"goldtrack/internal/config"

	"go.uber.org/zap"
)

func TestRunReturnsWhenDatabaseUnreachable(t *testing.T) {
	cfg := &config.Config{
		AppMode: "prod",
		Port:    "0",
		Database: config.DatabaseConfig{
			Host:   "127.0.0.1",
			Port:   "1",
			User:   "goldtrack",
			DBName: "goldtrack",
		},
		Business: config.BusinessConfig{Location: time.UTC},
	}

	err := run(cfg, zap.NewNop())
	if err == nil {
		t.Fatal("run succeeded without a database")
	}
	if !strings.Contains(err.Error(), "connect database") {
		t.Errorf("err = %v", err)
	}
}
