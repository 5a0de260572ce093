package bootstrap

import (
	"testing"
	"time"

	"go.uber.org/zap"
)

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "chapterhub",
		AuthRateLimit:    10,
		AuthRateWindow:   time.Minute,
		StorageType:      "local",
		StorageLocalPath: "./uploads/documents",
		StorageLocalURL:  "/files/documents",
	}
}

func TestValidateConfig_Valid(t *testing.T) {
	if err := ValidateConfig(nil, validAppConfig(), zap.NewNop()); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestValidateConfig_BadMongoURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "http://not-a-mongo-uri"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected error for non-mongodb URI")
	}
}

func TestValidateConfig_RateLimit(t *testing.T) {
	cfg := validAppConfig()
	cfg.AuthRateLimit = 0
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected error for zero rate limit")
	}
}

func TestValidateConfig_Storage(t *testing.T) {
	cfg := validAppConfig()
	cfg.StorageType = "ftp"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected error for unknown storage type")
	}

	cfg = validAppConfig()
	cfg.StorageType = "s3"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err == nil {
		t.Error("expected error for s3 without region/bucket")
	}

	cfg.StorageS3Region = "us-east-1"
	cfg.StorageS3Bucket = "chapterhub-documents"
	if err := ValidateConfig(nil, cfg, zap.NewNop()); err != nil {
		t.Errorf("s3 config rejected: %v", err)
	}
}
