package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "render.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{
		"scene": "random",
		"width": 300,
		"samples": 16,
		"mode": "reference",
		"s3": {"bucket": "renders", "region": "eu-west-1"}
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scene != "random" || cfg.Width != 300 || cfg.Samples != 16 || cfg.Mode != ModeReference {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if cfg.S3.Bucket != "renders" || cfg.S3.Region != "eu-west-1" {
		t.Errorf("Unexpected s3 config: %+v", cfg.S3)
	}
	if cfg.Height != 0 || cfg.Passes != 0 {
		t.Errorf("Unset fields should stay zero: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected error for missing file")
	}

	_, err := Load(writeConfig(t, `{"width": "wide"}`))
	if err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("Expected parse error, got %v", err)
	}
}

func TestResolve_Defaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	if cfg.Scene != "default" || cfg.Mode != ModeProgressive || cfg.Format != "png" || cfg.OutputDir != "output" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Passes != 7 || cfg.Seed != 42 || cfg.Supersample != 1 {
		t.Errorf("Unexpected numeric defaults: %+v", cfg)
	}
	if cfg.Workers != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), cfg.Workers)
	}
	if cfg.Width != 0 || cfg.Samples != 0 || cfg.MaxDepth != 0 {
		t.Errorf("Scene-owned settings should stay zero: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestResolve_FlagsOverrideFile(t *testing.T) {
	cfg := Config{Scene: "plane", Width: 300, Samples: 16, Format: "ppm"}
	cfg.Resolve(Flags{Width: 640, Format: "webp", Seed: 9})

	if cfg.Scene != "plane" {
		t.Errorf("Scene from file should survive, got %q", cfg.Scene)
	}
	if cfg.Width != 640 || cfg.Format != "webp" || cfg.Seed != 9 {
		t.Errorf("Flags should win: %+v", cfg)
	}
	if cfg.Samples != 16 {
		t.Errorf("Unset flag should keep file value, got %d", cfg.Samples)
	}
}

func TestResolve_S3FromEnvironment(t *testing.T) {
	t.Setenv("S3_ACCESS_KEY", "env-access")
	t.Setenv("S3_SECRET_KEY", "env-secret")
	t.Setenv("S3_BUCKET", "env-bucket")
	t.Setenv("S3_REGION", "us-east-1")
	t.Setenv("S3_ENDPOINT", "")

	cfg := Config{}
	cfg.S3.Bucket = "file-bucket"
	cfg.Resolve(Flags{})

	if cfg.S3.Bucket != "file-bucket" {
		t.Errorf("File bucket should win over environment, got %q", cfg.S3.Bucket)
	}
	if cfg.S3.AccessKey != "env-access" || cfg.S3.SecretKey != "env-secret" || cfg.S3.Region != "us-east-1" {
		t.Errorf("Environment should fill empty fields: %+v", cfg.S3)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Mode = "turbo" }},
		{"unknown format", func(c *Config) { c.Format = "gif" }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"huge supersample", func(c *Config) { c.Supersample = 16 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg Config
			cfg.Resolve(Flags{})
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestResolve_S3FromDotenv(t *testing.T) {
	for _, key := range []string{"S3_ACCESS_KEY", "S3_SECRET_KEY", "S3_BUCKET", "S3_ENDPOINT"} {
		t.Setenv(key, "")
	}
	t.Setenv("S3_REGION", "env-region")

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "S3_ACCESS_KEY=dotenv-access\nS3_SECRET_KEY=dotenv-secret\nS3_BUCKET=dotenv-bucket\nS3_REGION=dotenv-region\n"
	if err := os.WriteFile(envFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	cfg := Config{}
	cfg.S3.AccessKey = "file-access"
	cfg.Resolve(Flags{EnvFile: envFile})

	if cfg.S3.AccessKey != "file-access" {
		t.Errorf("Config file should win over the env file, got %q", cfg.S3.AccessKey)
	}
	if cfg.S3.SecretKey != "dotenv-secret" || cfg.S3.Bucket != "dotenv-bucket" {
		t.Errorf("Env file should fill empty fields: %+v", cfg.S3)
	}
	if cfg.S3.Region != "env-region" {
		t.Errorf("Process environment should win over the env file, got %q", cfg.S3.Region)
	}
	if err := cfg.S3.Validate(); err != nil {
		t.Errorf("Resolved S3 settings should validate: %v", err)
	}

	missing := Config{}
	missing.Resolve(Flags{EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	if missing.S3.Bucket != "" {
		t.Errorf("A missing env file should contribute nothing, got bucket %q", missing.S3.Bucket)
	}
}

func TestResolve_OutputDirFlag(t *testing.T) {
	cfg := Config{OutputDir: "from-file"}
	cfg.Resolve(Flags{OutputDir: "renders"})

	if cfg.OutputDir != "renders" {
		t.Errorf("Expected output dir flag to win, got %q", cfg.OutputDir)
	}
}
