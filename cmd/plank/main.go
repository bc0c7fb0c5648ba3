// Copyright 2026 The Plank Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command plank serves a single JSON document file as a miniature REST API
// under /api.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/plankhttp/plank/config"
	"github.com/plankhttp/plank/jsondb"
	"github.com/plankhttp/plank/router"
	"github.com/plankhttp/plank/router/middleware"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "plank",
		Short: "Serve a JSON document as a REST API",
		Long: `Plank serves a single JSON document file as a miniature REST API.

Top-level keys of the document are addressed as collections under /api,
and their elements as items:

  GET    /api                  the whole document
  GET    /api/laptops          a collection (filterable by query params)
  GET    /api/laptops/123      the item with id 123
  DELETE /api/laptops/0/byindex  the element at position 0

With --dry-run, mutations are computed but never written back to disk.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(v, cfgFile)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("document", "db.json", "JSON document file to serve")
	flags.Bool("dry-run", false, "compute mutations without persisting them")
	flags.Bool("metrics", true, "expose Prometheus metrics on /metrics")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("token", "", "require this token as ?token= on /api requests")
	flags.StringVar(&cfgFile, "config", "", "optional config file")

	for flag, key := range map[string]string{
		"addr":      "addr",
		"document":  "document",
		"dry-run":   "dry_run",
		"metrics":   "metrics",
		"log-level": "log_level",
		"token":     "token",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("plank: bind flag %s: %v", flag, err))
		}
	}
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	opts := []router.Option{router.WithLogger(logger)}
	var rec *router.PrometheusRecorder
	if cfg.Metrics {
		rec = router.NewPrometheusRecorder()
		opts = append(opts, router.WithRecorder(rec))
	}
	r := router.MustNew(opts...)

	engine := jsondb.NewFile(cfg.Document,
		jsondb.WithDryRun(cfg.DryRun),
		jsondb.WithLogger(logger),
	)

	stages := []router.Stage{middleware.RequestID(), middleware.AccessLog(logger)}
	if cfg.Token != "" {
		stages = append(stages, middleware.RequireToken(cfg.Token))
	}
	r.Mount("/api", engine.Handler(), router.Use(stages...))
	r.GET("/healthz", router.Value("ok"))

	srv := r.NewServer(cfg.Addr)
	if rec != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", rec.Handler())
		mux.Handle("/", srv.Handler)
		srv.Handler = mux
	}

	printBanner(os.Stdout, cfg)
	logger.Info("listening",
		"addr", cfg.Addr,
		"document", cfg.Document,
		"dry_run", cfg.DryRun,
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
