package config

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"SERVER_ADDRESS", "STORE_TYPE", "BUCKET_NAME", "BUCKET_REGION", "KEY_PREFIX",
	"S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "FILE_STORAGE_PATH",
	"DATABASE_DSN", "LOG_LEVEL", "LAMBDA_MODE",
}

func resetFlags(t *testing.T, args ...string) {
	t.Helper()

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	for _, name := range envVars {
		t.Setenv(name, "")
	}

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	os.Args = append([]string{"cmd"}, args...)
}

func TestNewConfigDefault(t *testing.T) {
	resetFlags(t)

	cfg := NewConfig()

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, StoreMemory, cfg.StoreType)
	assert.Equal(t, LambdaModeEdge, cfg.LambdaMode)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestNewConfigWithArgs(t *testing.T) {
	resetFlags(t, "-a", "localhost:8888", "-bucket", "links", "-region", "sa-east-1", "-prefix", "l/")

	cfg := NewConfig()

	assert.Equal(t, "localhost:8888", cfg.ServerAddress)
	assert.Equal(t, "links", cfg.BucketName)
	assert.Equal(t, "sa-east-1", cfg.BucketRegion)
	assert.Equal(t, "l/", cfg.KeyPrefix)
	assert.Equal(t, StoreS3, cfg.StoreType, "a bucket selects the s3 store")
}

func TestNewConfigEnvOverridesFlags(t *testing.T) {
	resetFlags(t, "-a", "localhost:8888", "-s", "memory")
	t.Setenv("SERVER_ADDRESS", "env:9999")
	t.Setenv("STORE_TYPE", "file")
	t.Setenv("FILE_STORAGE_PATH", "/tmp/links.jsonl")
	t.Setenv("LAMBDA_MODE", "http")

	cfg := NewConfig()

	assert.Equal(t, "env:9999", cfg.ServerAddress)
	assert.Equal(t, StoreFile, cfg.StoreType)
	assert.Equal(t, "/tmp/links.jsonl", cfg.FileStoragePath)
	assert.Equal(t, LambdaModeHTTP, cfg.LambdaMode)
	require.NoError(t, cfg.Validate())
}

func TestNewConfigBakedBucket(t *testing.T) {
	old := DefaultBucketName
	DefaultBucketName = "baked-links"
	defer func() { DefaultBucketName = old }()

	resetFlags(t)

	cfg := NewConfig()

	assert.Equal(t, "baked-links", cfg.BucketName)
	assert.Equal(t, StoreS3, cfg.StoreType)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
		anyErr  bool
	}{
		{name: "s3 without bucket", cfg: Config{StoreType: StoreS3, LambdaMode: LambdaModeEdge}, wantErr: ErrMissingBucket},
		{name: "file without path", cfg: Config{StoreType: StoreFile, LambdaMode: LambdaModeEdge}, wantErr: ErrMissingFilePath},
		{name: "postgres without dsn", cfg: Config{StoreType: StorePostgres, LambdaMode: LambdaModeEdge}, wantErr: ErrMissingDSN},
		{name: "unknown store", cfg: Config{StoreType: "redis", LambdaMode: LambdaModeEdge}, anyErr: true},
		{name: "unknown mode", cfg: Config{StoreType: StoreMemory, LambdaMode: "sqs"}, anyErr: true},
		{name: "valid s3", cfg: Config{StoreType: StoreS3, BucketName: "b", LambdaMode: LambdaModeHTTP}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
