package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/inevitable-go/internal/behavior"
	"github.com/olivierh59500/inevitable-go/internal/config"
	"github.com/olivierh59500/inevitable-go/internal/logging"
)

func main() {
	cfg, err := config.Load("inevitable", os.Args[1:], nil, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "inevitable: %v\n", err)
		os.Exit(2)
	}

	logFile, err := logging.Setup(cfg.Debug, logging.DefaultDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inevitable: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if cfg.DumpContent != "" {
		if err := behavior.SaveContent(cfg.DumpContent, behavior.DefaultContent()); err != nil {
			fmt.Fprintf(os.Stderr, "inevitable: %v\n", err)
			os.Exit(1)
		}
		return
	}

	content := behavior.DefaultContent()
	if cfg.ContentPath != "" {
		if content, err = behavior.LoadContent(cfg.ContentPath); err != nil {
			fmt.Fprintf(os.Stderr, "inevitable: %v\n", err)
			os.Exit(1)
		}
	}

	stage, err := NewStage(cfg, content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inevitable: %v\n", err)
		os.Exit(1)
	}
	log.Printf("config: %+v", cfg)

	// Set up Ebitengine
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle("Inevitable")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)

	// Run the game loop
	err = ebiten.RunGame(stage)
	stage.Close()
	if err != nil {
		log.Printf("run: %v", err)
		fmt.Fprintf(os.Stderr, "inevitable: %v\n", err)
		os.Exit(1)
	}
}
