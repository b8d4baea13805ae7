package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"sort"

	"go-facefilter/config"
	"go-facefilter/internal/compositing"
	"go-facefilter/internal/landmark"
	"go-facefilter/internal/pipeline"
	"go-facefilter/logger"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to pipeline config")
	framePath := flag.String("frame", "", "input frame image (png/jpeg)")
	landmarksPath := flag.String("landmarks", "", "landmark JSON file ([[x,y],...])")
	outPath := flag.String("out", "out.png", "output frame path")
	maskMode := flag.Bool("mask", false, "apply the face mask instead of the regular filter set")
	flag.Parse()

	fmt.Println("================================================================================")
	fmt.Println("🎭 Face Filter Pipeline")
	fmt.Println("================================================================================")

	if *framePath == "" || *landmarksPath == "" {
		log.Fatal("❌ -frame and -landmarks are required")
	}

	// Load configuration
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	log.Printf("✅ Configuration loaded from %s", *cfgPath)
	log.Printf("   Assets root: %s", cfg.AssetsRoot)
	log.Printf("   Configured filters: %d", len(cfg.Filters))
	log.Printf("   Output: %s", cfg.Output.Format)

	// Create buffered logger based on config
	var bufferedLog *logger.BufferedLogger
	if cfg.Logging.BufferedLogging {
		bufferedLog = logger.NewBufferedLogger(cfg.Logging.AutoFlush, *cfg.Logging.SampleRate)
		defer bufferedLog.Stop()
		log.Printf("✅ Buffered logging enabled (sample_rate=%d, auto_flush=%v)",
			*cfg.Logging.SampleRate, cfg.Logging.AutoFlush)
	}

	// Build the filter pipeline (loads all asset directories)
	log.Println("\n🖼️  Loading filter assets...")
	pipe, err := pipeline.New(cfg, bufferedLog)
	if err != nil {
		log.Fatalf("❌ Failed to build pipeline: %v", err)
	}
	pipe.SetMaskMode(*maskMode)

	stats := pipe.Stats()
	names := make([]string, 0, len(stats.AssetCounts))
	for name := range stats.AssetCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Printf("   %s: %d asset(s), %.2f MB", name, stats.AssetCounts[name],
			float64(stats.AssetMemory[name])/(1024*1024))
	}
	log.Printf("✅ Pipeline %s ready (mask mode: %v)", pipe.ID(), pipe.MaskMode())

	// Load the input frame and landmarks
	frame, err := loadFrame(*framePath)
	if err != nil {
		log.Fatalf("❌ Failed to load frame: %v", err)
	}
	lms, err := landmark.LoadJSON(*landmarksPath)
	if err != nil {
		log.Fatalf("❌ Failed to load landmarks: %v", err)
	}
	log.Printf("✅ Frame %dx%d, %d landmark(s)", frame.Bounds().Dx(), frame.Bounds().Dy(), len(lms))

	// Apply and encode
	frame = pipe.Process(frame, []landmark.Set{lms})

	encoder := compositing.NewEncoder(cfg.Output.Format, cfg.Output.JPEGQuality)
	data, err := encoder.Encode(frame)
	if err != nil {
		log.Fatalf("❌ Failed to encode output: %v", err)
	}
	if err := os.WriteFile(*outPath, data, 0o644); err != nil {
		log.Fatalf("❌ Failed to write output: %v", err)
	}

	log.Printf("✅ Wrote %s (%d bytes)", *outPath, len(data))
}

// loadFrame decodes an image file into the NRGBA destination buffer the
// pipeline mutates in place.
func loadFrame(path string) (*image.NRGBA, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	frame := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(frame, frame.Bounds(), img, b.Min, draw.Src)
	return frame, nil
}
