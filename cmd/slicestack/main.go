package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"slicestack/pkg/config"
	"slicestack/pkg/logging"
	"slicestack/pkg/shell"
	"slicestack/pkg/store"
)

func main() {
	// Parse command line arguments
	configPath := flag.String("config", "slicestack.yaml", "Path to the YAML configuration file")
	initConfig := flag.Bool("init-config", false, "Write a default configuration file to -config and exit")
	scriptPath := flag.String("script", "", "Read commands from this file instead of standard input")
	policy := flag.String("policy", "", "Override the volume dimension policy (strict or pad)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *initConfig {
		if err := config.CreateDefaultConfigFile(*configPath); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		fmt.Printf("Default configuration written to %s\n", *configPath)
		return
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *policy != "" {
		cfg.Volume.Policy = *policy
	}
	if *verbose {
		cfg.Output.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Mode, cfg.Output.Verbose)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	images := store.NewImageStore(logger)
	volumes := store.NewVolumeStore(store.VolumeOptions{
		Policy:    cfg.DimensionPolicy(),
		Suffix:    cfg.Volume.Suffix,
		MaxFrames: cfg.Volume.MaxFrames,
	}, logger)

	var in io.Reader = os.Stdin
	interactive := true
	if *scriptPath != "" {
		f, err := os.Open(*scriptPath)
		if err != nil {
			logger.Error("cannot open script", "file", *scriptPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
		interactive = false
	}

	sh, err := shell.New(images, volumes, shell.Options{
		Comment:      cfg.Output.Comment,
		PreviewScale: cfg.Output.PreviewScale,
		Prompt:       interactive,
	}, os.Stdout, logger)
	if err != nil {
		logger.Error("cannot build shell", "error", err)
		os.Exit(1)
	}

	logger.Debug("interpreter started", "config", *configPath, "policy", string(volumes.Policy()))
	if err := sh.Run(in); err != nil {
		logger.Error("interpreter stopped", "error", err)
		os.Exit(1)
	}
}
