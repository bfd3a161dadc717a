package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/imrenagi/go-video-catalog/catalog"
	"github.com/imrenagi/go-video-catalog/cli"
	"github.com/imrenagi/go-video-catalog/config"
	"github.com/imrenagi/go-video-catalog/server"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.New()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 1
	}
	_ = server.InitializeLogger(cfg.LogLevel)

	cmd, args, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return 2
	}

	if args.Demo {
		return cli.Demo(cfg.StorePath, os.Stdout)
	}

	// with no command, serve the interactive interface
	if cmd == "" || cmd == "serve" {
		return serve(cfg)
	}

	store := catalog.NewStore(cfg.StorePath)
	switch cmd {
	case "upload":
		return cli.Upload(store, args, os.Stdout)
	case "list":
		return cli.List(store, os.Stdout)
	case "view":
		return cli.View(store, args, os.Stdout)
	case "delete":
		return cli.Delete(store, args, os.Stdout)
	case "search":
		return cli.Search(store, args, os.Stdout)
	}
	fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
	return 2
}

func serve(cfg *config.Config) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := catalog.NewStore(cfg.StorePath)
	srv := server.New(server.Opts{Config: cfg, Store: store})
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("failed to run the server")
		return 1
	}
	return 0
}
