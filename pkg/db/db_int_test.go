package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"liyu1981.xyz/bp-report-service/pkg/common"
)

func TestWithFilePath(t *testing.T) {
	common.SetTestLoggerNop()

	if os.Getenv(common.EnvKeyRunIntegrationTests) != "true" {
		t.Skip("Skipping integration test: RUN_INTEGRATION_TESTS environment variable not set")
	}

	testPath := filepath.Join(t.TempDir(), "test.db")

	instance, err := Open(UseSqliteDialector(testPath), 0)
	if err != nil {
		t.Fatalf("Expected database to open: %v", err)
	}
	if instance == nil || instance.Conn == nil {
		t.Fatal("Expected non-nil DB connection")
	}

	if err := instance.PutReading(context.Background(), newReading("15-06-2024 08:30")); err != nil {
		t.Fatalf("Expected reading to be stored: %v", err)
	}

	if _, err := os.Stat(testPath); os.IsNotExist(err) {
		t.Errorf("Expected database file to be created at %s", testPath)
	}
}
