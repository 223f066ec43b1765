package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/healthdash/backend/internal/artifact"
	"github.com/healthdash/backend/internal/config"
	"github.com/healthdash/backend/internal/domain"
	"github.com/healthdash/backend/internal/repository/file"
	"github.com/healthdash/backend/internal/repository/postgres"
	"github.com/healthdash/backend/internal/service"
)

// Exit codes
const (
	exitOK         = 0
	exitValidation = 1
	exitUsage      = 2
	exitSource     = 3
	exitInternal   = 4
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	cfg := config.Load()

	fs := flag.NewFlagSet("pipeline", flag.ContinueOnError)
	fs.SetOutput(stderr)
	in := fs.String("in", cfg.Input, "raw input: directory, .json or .xlsx file, or postgres:// DSN")
	out := fs.String("out", cfg.Output, "path of the aggregated JSON artifact")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return exitUsage
	}
	if *out == "" {
		fmt.Fprintln(stderr, "-out must not be empty")
		return exitUsage
	}
	cfg.Input = *in

	src, closeSource, err := openSource(ctx, cfg)
	if err != nil {
		log.Printf("pipeline: %v", err)
		return exitSource
	}
	defer closeSource()

	result, err := service.NewPipeline().Run(ctx, src)
	for _, w := range result.Warnings {
		log.Printf("pipeline[%s]: warning %s", result.Stats.RunID, w)
	}
	if err != nil {
		log.Printf("pipeline[%s]: %v", result.Stats.RunID, err)
		if errors.Is(err, domain.ErrValidation) {
			return exitValidation
		}
		return exitSource
	}

	data, err := artifact.Serialize(result.Dataset)
	if err != nil {
		log.Printf("pipeline[%s]: %v", result.Stats.RunID, err)
		return exitInternal
	}
	if err := artifact.Write(*out, data); err != nil {
		log.Printf("pipeline[%s]: %v", result.Stats.RunID, err)
		return exitInternal
	}

	s := result.Stats
	log.Printf("pipeline[%s]: wrote %s (%d bytes, sha256 %s): %d states, years %d-%d, %d duplicate(s) resolved",
		s.RunID, *out, len(data), artifact.Digest(data), s.States, s.FirstYear, s.LastYear, s.Duplicates)
	return exitOK
}

// openSource picks the raw source from the input location. The returned
// close function is always safe to call.
func openSource(ctx context.Context, cfg *config.Config) (domain.RawSource, func(), error) {
	if cfg.IsDatabase() {
		pool, err := postgres.Connect(ctx, cfg.Input)
		if err != nil {
			return nil, func() {}, err
		}
		src := postgres.NewPostgresSource(pool)
		if err := src.Health(ctx); err != nil {
			pool.Close()
			return nil, func() {}, err
		}
		log.Println("pipeline: connected to PostgreSQL")
		return src, pool.Close, nil
	}

	src, err := file.Open(cfg.Input)
	if err != nil {
		return nil, func() {}, err
	}
	return src, func() {}, nil
}
