package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/levenlabs/go-lflag"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/log"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/refdata"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/server"
)

func main() {
	// init packages
	src := refdata.Configured()
	srv := server.Configured(src)

	// parse flags
	lflag.Configure()

	// lflag automatically sets llog's level but the slog default still needs
	// to be installed
	log.Setup()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer func() {
		if err := src.Close(); err != nil {
			log.Ctx(ctx).ErrorContext(ctx, "failed to close reference data source", "error", err)
		}
	}()

	// Run blocks until the context is canceled or an error happens
	if err := srv.Run(ctx); err != nil {
		log.Ctx(ctx).ErrorContext(ctx, "server failed", "error", err)
		os.Exit(1)
	}
	log.Ctx(ctx).InfoContext(ctx, "server exited cleanly")
}
