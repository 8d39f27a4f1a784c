package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/framegrace/texelsession/apps/texelterm"
	"github.com/framegrace/texelsession/apps/texelterm/archive"
	"github.com/framegrace/texelsession/config"
	"github.com/framegrace/texelsession/internal/devshell"
	"github.com/framegrace/texelsession/internal/logging"
	"github.com/framegrace/texelsession/texel"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "texelterm: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	defaultConfig, _ := config.DefaultPath()
	configPath := flag.String("config", defaultConfig, "path to the JSON config file")
	scrollback := flag.Int("scrollback", 0, "scrollback line limit (overrides config)")
	archivePath := flag.String("archive", "", `sqlite file receiving evicted lines ("auto" for the default location)`)
	logFile := flag.String("log-file", "", "write logs to this file")
	logLevel := flag.String("log-level", "", "trace, debug, info, warn or error (overrides config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [command [args...]]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, loadErr := config.Load(*configPath)
	if *scrollback > 0 {
		cfg.Set(config.TerminalSection, "scrollback_limit", *scrollback)
	}
	if *archivePath != "" {
		cfg.Set(config.TerminalSection, "archive_path", *archivePath)
	}
	if *logLevel != "" {
		cfg.Set(config.TerminalSection, "log_level", *logLevel)
	}

	settings, err := texelterm.SettingsFromConfig(cfg)
	if err != nil {
		return err
	}

	logOut, err := logging.OpenFile(*logFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logOut.Close()
	logging.Configure(settings.LogLevel, logOut)
	if loadErr != nil {
		log.Warn().Err(loadErr).Msg("texelterm: using default configuration")
	}

	if args := flag.Args(); len(args) > 0 {
		settings.Session.Command = args[0]
		settings.Session.Args = args[1:]
	}

	var arch *archive.Archive
	if settings.ArchivePath != "" {
		if arch, err = archive.Open(settings.ArchivePath); err != nil {
			return err
		}
		defer arch.Close()
	}

	opts := texelterm.Options{
		Title:   "texelterm",
		Engine:  settings.Engine,
		Session: settings.Session,
		Archive: arch,
	}
	log.Info().
		Str("command", settings.Session.Command).
		Int("scrollback", settings.Engine.ScrollbackLimit).
		Msg("texelterm: starting")

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		app, err := texelterm.New(opts)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return devshell.RunHeadless(ctx, app, os.Stdout)
	}

	return devshell.Run(func([]string) (texel.App, error) {
		return texelterm.New(opts)
	}, flag.Args())
}
