package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/config"
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/imageio"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// runOptions are the one-shot actions that do not belong in a config file
type runOptions struct {
	OutputPath  string // Explicit output file; empty = <output_dir>/<scene>/render_<timestamp>.<format>
	Upload      bool   // Publish the render to the configured S3 bucket
	ComparePath string // Reference image to report the mean squared error against
}

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "", "Scene to render (see -list); default 'default'")
	width := flag.Int("width", 0, "Image width (0 = scene default)")
	height := flag.Int("height", 0, "Image height (0 = derived from width and scene aspect)")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	depth := flag.Int("depth", 0, "Maximum bounce depth (0 = scene default)")
	workers := flag.Int("workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	mode := flag.String("mode", "", "Render mode: 'progressive' (default) or 'reference'")
	passes := flag.Int("passes", 0, "Number of progressive passes (default 7)")
	seed := flag.Int64("seed", 0, "Random seed (default 42)")
	format := flag.String("format", "", "Output format: ppm, png (default), webp or tga")
	outputDir := flag.String("output-dir", "", "Directory for timestamped renders (default 'output')")
	envFile := flag.String("env", ".env", "Dotenv file with S3_* settings (ignored if missing)")
	out := flag.String("out", "", "Output file path (format taken from its extension)")
	supersample := flag.Int("supersample", 0, "Render at N times the size and filter down (default 1)")
	thumbnail := flag.Int("thumbnail", 0, "Also write a thumbnail no larger than N pixels")
	configPath := flag.String("config", "", "JSON config file")
	upload := flag.Bool("upload", false, "Upload the render to S3 (S3_* environment variables)")
	comparePath := flag.String("compare", "", "Reference image to compare the render against")
	list := flag.Bool("list", false, "List available scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Weekend Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		printScenes(os.Stdout)
		fmt.Println()
		fmt.Println("Output will be saved to <output-dir>/<scene>/render_<timestamp>.<format>")
		return
	}

	if *list {
		printScenes(os.Stdout)
		return
	}

	var cfg config.Config
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	cfg.Resolve(config.Flags{
		Scene:       *sceneType,
		Width:       *width,
		Height:      *height,
		Samples:     *samples,
		MaxDepth:    *depth,
		Workers:     *workers,
		Mode:        *mode,
		Passes:      *passes,
		Seed:        *seed,
		Format:      *format,
		OutputDir:   *outputDir,
		Supersample: *supersample,
		Thumbnail:   *thumbnail,
		EnvFile:     *envFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := runOptions{OutputPath: *out, Upload: *upload, ComparePath: *comparePath}
	if err := run(ctx, cfg, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders one image according to cfg and writes it out
func run(ctx context.Context, cfg config.Config, opts runOptions, stdout io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	fmt.Fprintln(stdout, "Starting Weekend Raytracer...")

	selectedScene, err := createScene(cfg)
	if err != nil {
		return err
	}

	outputPath, format, err := resolveOutputPath(cfg, opts.OutputPath, time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Rendering %s at %dx%d (%d samples, depth %d, %s mode)...\n",
		cfg.Scene, selectedScene.SamplingConfig.Width, selectedScene.SamplingConfig.Height,
		selectedScene.SamplingConfig.SamplesPerPixel, selectedScene.SamplingConfig.MaxDepth, cfg.Mode)

	startTime := time.Now()
	img, stats, err := renderScene(ctx, selectedScene, cfg, renderer.NewDefaultLogger())
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	renderTime := time.Since(startTime)

	fmt.Fprintf(stdout, "Render completed in %v\n", renderTime)
	fmt.Fprintf(stdout, "Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	if cfg.Supersample > 1 {
		img = imageio.Downsample(img, cfg.Supersample)
	}
	fmt.Fprintf(stdout, "Average luminance: %.3f\n", renderer.CalculateAverageLuminance(img))

	data, err := imageio.EncodeBytes(img, format)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write render: %w", err)
	}
	fmt.Fprintf(stdout, "Render saved as %s\n", outputPath)

	if cfg.Thumbnail > 0 {
		thumbPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_thumb" + format.Extension()
		if err := imageio.WriteFile(thumbPath, imageio.Thumbnail(img, uint(cfg.Thumbnail))); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Thumbnail saved as %s\n", thumbPath)
	}

	if opts.ComparePath != "" {
		reference, err := imageio.ReadImage(opts.ComparePath)
		if err != nil {
			return err
		}
		mse, err := imageio.Compare(img, reference)
		if err != nil {
			return fmt.Errorf("compare with %s: %w", opts.ComparePath, err)
		}
		fmt.Fprintf(stdout, "MSE vs %s: %.4f\n", opts.ComparePath, mse)
	}

	if opts.Upload {
		uploader, err := imageio.NewS3Uploader(cfg.S3)
		if err != nil {
			return err
		}
		key := cfg.Scene + "/" + filepath.Base(outputPath)
		if err := uploader.Upload(ctx, key, data, format.ContentType()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Uploaded %s (%d bytes)\n", key, len(data))
	}

	return nil
}

// createScene builds the named scene and sizes it for the configured output,
// including any supersampling factor
func createScene(cfg config.Config) (*scene.Scene, error) {
	if strings.TrimSpace(cfg.Scene) == "" {
		return nil, fmt.Errorf("no scene given")
	}

	s, err := scene.NewSceneByName(cfg.Scene, renderer.CameraConfig{})
	if err != nil {
		return nil, err
	}

	width, height := s.SamplingConfig.Width, s.SamplingConfig.Height
	if cfg.Width > 0 {
		width = cfg.Width
		height = max(1, int(float64(width)/s.CameraConfig.AspectRatio))
	}
	if cfg.Height > 0 {
		height = cfg.Height
	}

	factor := max(1, cfg.Supersample)
	s.Resize(width*factor, height*factor)

	if cfg.Samples > 0 {
		s.SamplingConfig.SamplesPerPixel = cfg.Samples
	}
	if cfg.MaxDepth > 0 {
		s.SamplingConfig.MaxDepth = cfg.MaxDepth
	}

	return s, nil
}

// renderScene renders with the configured mode at the scene's sampling settings
func renderScene(ctx context.Context, s *scene.Scene, cfg config.Config, logger core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	sampling := s.SamplingConfig
	integratorInst := s.NewIntegrator(sampling.MaxDepth)

	if cfg.Mode == config.ModeReference {
		raytracer := renderer.NewRaytracer(s, sampling.Width, sampling.Height)
		raytracer.SetSamplingConfig(renderer.SamplingConfig{
			SamplesPerPixel: sampling.SamplesPerPixel,
			MaxDepth:        sampling.MaxDepth,
			Seed:            cfg.Seed,
		})
		raytracer.SetIntegrator(integratorInst)

		img, stats := raytracer.RenderPass()
		return img, stats, nil
	}

	progressiveConfig := renderer.DefaultProgressiveConfig()
	progressiveConfig.MaxSamplesPerPixel = sampling.SamplesPerPixel
	progressiveConfig.MaxPasses = min(cfg.Passes, sampling.SamplesPerPixel)
	progressiveConfig.NumWorkers = cfg.Workers
	progressiveConfig.MaxDepth = sampling.MaxDepth
	progressiveConfig.Seed = cfg.Seed
	progressiveConfig.Integrator = integratorInst

	raytracer := renderer.NewProgressiveRaytracer(s, sampling.Width, sampling.Height, progressiveConfig, logger)
	return raytracer.Render(ctx)
}

// resolveOutputPath picks the output file and its format
func resolveOutputPath(cfg config.Config, explicit string, now time.Time) (string, imageio.Format, error) {
	if explicit != "" {
		format, err := imageio.FormatFromPath(explicit)
		if err != nil {
			return "", "", err
		}
		return explicit, format, nil
	}

	format, err := imageio.ParseFormat(cfg.Format)
	if err != nil {
		return "", "", err
	}

	timestamp := now.Format("20060102_150405")
	filename := fmt.Sprintf("render_%s%s", timestamp, format.Extension())
	return filepath.Join(cfg.OutputDir, cfg.Scene, filename), format, nil
}

func printScenes(w io.Writer) {
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-12s %s (%dx%d)\n", info.ID, info.Description, info.Width, info.Height)
	}
}
