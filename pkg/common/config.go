package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	z "github.com/Oudwins/zog"
	"github.com/joho/godotenv"
)

type Config struct {
	DBType        string
	DBPath        string
	TableName     string
	BucketName    string
	ReportsDir    string
	ScanPageLimit int
	HttpHostPort  string
	DefaultRate   float64
	DefaultBurst  int
}

var configSchema = z.Struct(z.Shape{
	"DBType":        z.String().Min(1).Required(),
	"ScanPageLimit": z.Int().GT(0).Required(),
	"DefaultRate":   z.Float64().GTE(0),
	"DefaultBurst":  z.Int().GTE(0),
})

// LoadConfig reads the .env file when there is one, then the process environment.
// Lambda functions have no .env and rely on the environment alone.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBType:       getEnv(EnvKeyBPDBType, DBTypeDynamoDB),
		DBPath:       getEnv(EnvKeyBPDbPath, "readings.db"),
		TableName:    strings.TrimSpace(getEnv(EnvKeyTableName, "")),
		BucketName:   strings.TrimSpace(getEnv(EnvKeyBucketName, "")),
		ReportsDir:   getEnv(EnvKeyBPReportsDir, "reports"),
		HttpHostPort: strings.TrimSpace(getEnv(EnvKeyBPHttpHostPort, ":1080")),
	}

	var err error
	if cfg.ScanPageLimit, err = strconv.Atoi(getEnv(EnvKeyBPScanPageLimit, "100")); err != nil {
		return nil, fmt.Errorf("invalid %s, should be an int value: %w", EnvKeyBPScanPageLimit, err)
	}
	if cfg.DefaultRate, err = strconv.ParseFloat(getEnv(EnvKeyBPDefaultRate, "10"), 64); err != nil {
		return nil, fmt.Errorf("invalid %s, should be a float64 value: %w", EnvKeyBPDefaultRate, err)
	}
	if cfg.DefaultBurst, err = strconv.Atoi(getEnv(EnvKeyBPDefaultBurst, "20")); err != nil {
		return nil, fmt.Errorf("invalid %s, should be an int value: %w", EnvKeyBPDefaultBurst, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if issues := configSchema.Validate(c); len(issues) > 0 {
		return fmt.Errorf("invalid config: %v", issues)
	}

	switch c.DBType {
	case DBTypeDynamoDB:
		if c.TableName == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvKeyTableName, EnvKeyBPDBType, DBTypeDynamoDB)
		}
	case DBTypeFile, DBTypeMemory:
	default:
		return fmt.Errorf("unknown %s: %s", EnvKeyBPDBType, c.DBType)
	}

	return nil
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
