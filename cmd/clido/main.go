package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/Makepad-fr/clido/internal/cli"
	"github.com/Makepad-fr/clido/internal/config"
	"github.com/Makepad-fr/clido/internal/logging"
	"github.com/Makepad-fr/clido/internal/ui"
)

func main() {
	// Root flags (apply to every command)
	fs := flag.NewFlagSet("clido", flag.ContinueOnError)
	fs.Usage = func() {
		cli.PrintHelp(os.Stderr)
		fs.PrintDefaults()
	}
	cfg, args, err := config.Load(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	logger.Debug("config resolved", "file", cfg.File, "todo_path", cfg.TodoPath, "lock", cfg.Lock)

	// Hand the remaining args to the CLI runner.
	code := cli.Run(args, cli.Options{
		TodoPath: cfg.TodoPath,
		Lock:     cfg.Lock,
		Printer:  ui.NewPrinter(os.Stdout, os.Stderr, cfg.Theme, cfg.NoColor),
		Logger:   logger,
		Stdin:    os.Stdin,
	})
	os.Exit(code)
}
