package renderer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"
)

func TestProgressiveSampleCalculation(t *testing.T) {
	config := DefaultProgressiveConfig()
	config.InitialSamples = 1
	config.MaxSamplesPerPixel = 50
	config.MaxPasses = 7

	pr := &ProgressiveRaytracer{
		config: config,
	}

	// Pass 1: 1 sample
	// Pass 2-6: (50-1)/6 = 8 samples per pass -> 9, 17, ...
	// Pass 7: 50 (final pass gets all remaining)
	expectedTotalSamples := []int{1, 9, 17, 25, 33, 41, 50}

	for pass := 1; pass <= 7; pass++ {
		totalSamples := pr.getSamplesForPass(pass)

		if totalSamples != expectedTotalSamples[pass-1] {
			t.Errorf("Pass %d: expected %d total samples, got %d",
				pass, expectedTotalSamples[pass-1], totalSamples)
		}
	}

	// A single pass takes everything at once
	pr.config.MaxPasses = 1
	if got := pr.getSamplesForPass(1); got != 50 {
		t.Errorf("Single pass: expected 50 samples, got %d", got)
	}
}

func TestProgressiveConfig(t *testing.T) {
	config := DefaultProgressiveConfig()

	if config.TileSize != 64 {
		t.Errorf("Expected default tile size 64, got %d", config.TileSize)
	}
	if config.InitialSamples != 1 {
		t.Errorf("Expected default initial samples 1, got %d", config.InitialSamples)
	}
	if config.MaxSamplesPerPixel != 50 {
		t.Errorf("Expected default max samples 50, got %d", config.MaxSamplesPerPixel)
	}
	if config.MaxPasses != 7 {
		t.Errorf("Expected default max passes 7, got %d", config.MaxPasses)
	}
	if config.MaxDepth != 50 {
		t.Errorf("Expected default max depth 50, got %d", config.MaxDepth)
	}
}

func TestNewTileGrid(t *testing.T) {
	// Test tile grid generation for a 400x225 image with 64x64 tiles
	width, height, tileSize := 400, 225, 64
	tiles := NewTileGrid(width, height, tileSize, 42)

	expectedTilesX := (width + tileSize - 1) / tileSize   // 7 tiles
	expectedTilesY := (height + tileSize - 1) / tileSize  // 4 tiles
	expectedTotalTiles := expectedTilesX * expectedTilesY // 28 tiles

	if len(tiles) != expectedTotalTiles {
		t.Errorf("Expected %d tiles, got %d", expectedTotalTiles, len(tiles))
	}

	// Test that tiles cover the entire image without gaps or overlaps
	covered := make([][]bool, height)
	for y := range covered {
		covered[y] = make([]bool, width)
	}

	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if x >= width || y >= height {
					t.Errorf("Tile %d extends beyond image bounds at (%d,%d)", tile.ID, x, y)
				}
				if covered[y][x] {
					t.Errorf("Pixel (%d,%d) is covered by multiple tiles", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !covered[y][x] {
				t.Errorf("Pixel (%d,%d) is not covered by any tile", x, y)
			}
		}
	}
}

func TestTileDeterministicRandom(t *testing.T) {
	bounds := image.Rect(0, 0, 64, 64)
	tile1 := NewTile(42, bounds, 100)
	tile2 := NewTile(42, bounds, 100)

	val1 := tile1.Random.Float64()
	val2 := tile2.Random.Float64()

	if val1 != val2 {
		t.Errorf("Tiles with same ID should produce same random values: %f != %f", val1, val2)
	}

	tile3 := NewTile(43, bounds, 100)
	if val1 == tile3.Random.Float64() {
		t.Error("Tiles with different IDs should produce different random values")
	}
}

func smallProgressiveConfig(workers int) ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:           4,
		InitialSamples:     1,
		MaxSamplesPerPixel: 9,
		MaxPasses:          3,
		NumWorkers:         workers,
		MaxDepth:           10,
		Seed:               42,
	}
}

func TestProgressiveRaytracer_Passes(t *testing.T) {
	pr := NewProgressiveRaytracer(createMockScene(4.0/3.0), 16, 12, smallProgressiveConfig(2), nil)

	passChan, tileChan, errChan := pr.RenderProgressive(context.Background(), RenderOptions{TileUpdates: true})

	tileCount := 0
	done := make(chan struct{})
	go func() {
		for range tileChan {
			tileCount++
		}
		close(done)
	}()

	var results []PassResult
	for result := range passChan {
		results = append(results, result)
	}
	<-done

	if err := <-errChan; err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 passes, got %d", len(results))
	}

	expectedSamples := []int{1, 5, 9}
	for i, result := range results {
		if result.PassNumber != i+1 {
			t.Errorf("Expected pass %d, got %d", i+1, result.PassNumber)
		}
		if result.Stats.MinSamples != expectedSamples[i] || result.Stats.MaxSamplesUsed != expectedSamples[i] {
			t.Errorf("Pass %d: expected %d samples everywhere, got %+v", i+1, expectedSamples[i], result.Stats)
		}
		if result.IsLast != (i == 2) {
			t.Errorf("Pass %d: unexpected IsLast=%v", i+1, result.IsLast)
		}
		if result.Image.Bounds() != image.Rect(0, 0, 16, 12) {
			t.Errorf("Pass %d: unexpected image bounds %v", i+1, result.Image.Bounds())
		}
	}

	// 4x3 tiles per pass, three passes
	if tileCount != 36 {
		t.Errorf("Expected 36 tile updates, got %d", tileCount)
	}
}

func TestProgressiveRaytracer_DeterministicAcrossWorkerCounts(t *testing.T) {
	render := func(workers int) []byte {
		pr := NewProgressiveRaytracer(createMockScene(4.0/3.0), 16, 12, smallProgressiveConfig(workers), nil)
		img, _, err := pr.Render(context.Background())
		if err != nil {
			t.Fatalf("Render with %d workers failed: %v", workers, err)
		}
		return img.Pix
	}

	single := render(1)
	for _, workers := range []int{2, 4, 8} {
		if !bytes.Equal(single, render(workers)) {
			t.Errorf("Image with %d workers differs from single worker image", workers)
		}
	}
}

func TestProgressiveRaytracer_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr := NewProgressiveRaytracer(createMockScene(4.0/3.0), 16, 12, smallProgressiveConfig(2), nil)
	_, _, err := pr.Render(ctx)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestProgressiveRaytracer_RenderPassAfterCancelSkipsTiles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr := NewProgressiveRaytracer(createMockScene(1.0), 8, 8, smallProgressiveConfig(2), nil)
	defer pr.Close()

	if _, _, err := pr.RenderPass(ctx, 1, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	for _, tile := range pr.tiles {
		if tile.PassesCompleted != 0 {
			t.Errorf("Tile %d should not have rendered", tile.ID)
		}
	}
}
