package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"example/screenshot-batch/internal/config"
	"example/screenshot-batch/internal/gemini"
	"example/screenshot-batch/internal/logging"
	"example/screenshot-batch/internal/service"
)

// Startup failures get distinct exit codes so callers can tell an operator
// mistake from a runtime failure.
const (
	exitInvalidConfig = 2
	exitWorkList      = 3
	exitOutputDir     = 4
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(exitInvalidConfig)
	}

	file, err := os.Open(cfg.ImageList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read image list: %v\n", err)
		os.Exit(exitWorkList)
	}
	_ = file.Close()

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "cannot create output directory: %v\n", err)
		os.Exit(exitOutputDir)
	}

	logger, err := logging.New(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(exitInvalidConfig)
	}
	defer logger.Close()

	logger.Logf("Starting screenshot batch processing")
	logger.Logf("Using region: %s", cfg.Region)
	logger.Logf("GOOGLE_APPLICATION_CREDENTIALS present: %t", os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "")
	logger.Logf("Project configured: %t", cfg.Project != "")

	ctx := context.Background()
	client, err := gemini.SetupClient(ctx, cfg.Project, cfg.Region)
	if err != nil {
		logger.Logf("Error creating inference client: %v", err)
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(exitInvalidConfig)
	}

	analyzer := service.NewImageAnalyzer(client, cfg.Model)
	processor := service.NewItemProcessor(analyzer, cfg.OutputDir, logger)
	runner := service.NewBatchRunner(processor, cfg.ImageList, cfg.OutputDir, cfg.Workers, cfg.Duration, logger)

	log.Printf("Starting processing loop for %s...", cfg.Duration)
	stats, err := runner.Run(ctx)
	if err != nil {
		logger.Logf("Run aborted: %v", err)
		log.Fatal(err)
	}

	log.Printf("Processing completed after %d batches (%d images, %d failed). Results saved in %s",
		stats.Batches, stats.Processed, stats.Failed, cfg.OutputDir)
}
