package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/olivierh59500/inevitable-go/internal/behavior"
	"github.com/olivierh59500/inevitable-go/internal/config"
	"github.com/olivierh59500/inevitable-go/internal/logging"
	"github.com/olivierh59500/inevitable-go/internal/termui"
)

func main() {
	cfg, err := config.Load("inevitable-term", os.Args[1:], nil, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "inevitable-term: %v\n", err)
		os.Exit(2)
	}

	logFile, err := logging.Setup(cfg.Debug, logging.DefaultDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "inevitable-term: %v\n", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	if cfg.DumpContent != "" {
		if err := behavior.SaveContent(cfg.DumpContent, behavior.DefaultContent()); err != nil {
			fmt.Fprintf(os.Stderr, "inevitable-term: %v\n", err)
			os.Exit(1)
		}
		return
	}

	content := behavior.DefaultContent()
	if cfg.ContentPath != "" {
		if content, err = behavior.LoadContent(cfg.ContentPath); err != nil {
			fmt.Fprintf(os.Stderr, "inevitable-term: %v\n", err)
			os.Exit(1)
		}
	}
	log.Printf("config: %+v", cfg)

	app, err := termui.New(cfg, content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			app.Close()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mINEVITABLE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	app.Run()
	app.Close()
}
