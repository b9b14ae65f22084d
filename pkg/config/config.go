package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/joho/godotenv"
)

// Render modes
const (
	ModeReference   = "reference"   // Single-threaded, one random source
	ModeProgressive = "progressive" // Tiled passes on a worker pool
)

// Config holds all render settings. Zero Width, Height, Samples and MaxDepth
// defer to the chosen scene's own values.
type Config struct {
	Scene       string `json:"scene"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Samples     int    `json:"samples"`
	MaxDepth    int    `json:"max_depth"`
	Workers     int    `json:"workers"`
	Mode        string `json:"mode"`
	Passes      int    `json:"passes"`
	Seed        int64  `json:"seed"`
	Format      string `json:"format"`
	OutputDir   string `json:"output_dir"`
	Supersample int    `json:"supersample"`
	Thumbnail   int    `json:"thumbnail"` // Also write a thumbnail fitting this many pixels; 0 = none

	S3 imageio.S3Config `json:"s3"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Scene       string
	Width       int
	Height      int
	Samples     int
	MaxDepth    int
	Workers     int
	Mode        string
	Passes      int
	Seed        int64
	Format      string
	OutputDir   string
	Supersample int
	Thumbnail   int
	EnvFile     string // Optional dotenv file with S3_* settings; a missing file is ignored
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty, then the config file.
// Bucket settings the file left empty come from S3_* environment variables,
// then from flags.EnvFile.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Scene != "" {
		c.Scene = flags.Scene
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Samples > 0 {
		c.Samples = flags.Samples
	}
	if flags.MaxDepth > 0 {
		c.MaxDepth = flags.MaxDepth
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.Passes > 0 {
		c.Passes = flags.Passes
	}
	if flags.Seed != 0 {
		c.Seed = flags.Seed
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Thumbnail > 0 {
		c.Thumbnail = flags.Thumbnail
	}

	c.resolveS3(envLookup(flags.EnvFile))

	// Defaults for render settings
	if c.Scene == "" {
		c.Scene = "default"
	}
	if c.Mode == "" {
		c.Mode = ModeProgressive
	}
	if c.Passes <= 0 {
		c.Passes = 7
	}
	if c.Seed == 0 {
		c.Seed = 42
	}
	if c.Format == "" {
		c.Format = string(imageio.FormatPNG)
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// envLookup reads the process environment, falling back to the values in a
// dotenv file. An unreadable or missing file contributes nothing.
func envLookup(envFile string) func(string) string {
	var fileEnv map[string]string
	if envFile != "" {
		fileEnv, _ = godotenv.Read(envFile)
	}
	return func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fileEnv[key]
	}
}

// resolveS3 fills bucket settings the file left empty from the environment
func (c *Config) resolveS3(getenv func(string) string) {
	fill := func(field *string, key string) {
		if *field == "" {
			*field = getenv(key)
		}
	}
	fill(&c.S3.AccessKey, "S3_ACCESS_KEY")
	fill(&c.S3.SecretKey, "S3_SECRET_KEY")
	fill(&c.S3.Endpoint, "S3_ENDPOINT")
	fill(&c.S3.Region, "S3_REGION")
	fill(&c.S3.Bucket, "S3_BUCKET")
}

// Validate checks a resolved config for values no renderer can use
func (c *Config) Validate() error {
	if c.Mode != ModeReference && c.Mode != ModeProgressive {
		return fmt.Errorf("config: unknown mode %q (want %s or %s)", c.Mode, ModeReference, ModeProgressive)
	}
	if _, err := imageio.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Width < 0 || c.Height < 0 || c.Samples < 0 || c.MaxDepth < 0 || c.Thumbnail < 0 {
		return fmt.Errorf("config: negative size or sample setting")
	}
	if c.Supersample > 8 {
		return fmt.Errorf("config: supersample %d exceeds 8", c.Supersample)
	}
	return nil
}
