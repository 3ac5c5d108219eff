// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command importer loads the catalog from CSV files into PostgreSQL.
//
//	importer                      load every table into an empty database
//	importer --table title        load one table, refusing if it has rows
//	importer --overwrite          upsert every table by id
//	importer -o -t review         upsert one table
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/taibuivan/yamdb/internal/importer"
	"github.com/taibuivan/yamdb/internal/platform/config"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/migration"
	pgstore "github.com/taibuivan/yamdb/internal/platform/postgres"
)

type flags struct {
	overwrite bool
	table     string
	dir       string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	options := &flags{}

	command := &cobra.Command{
		Use:           "importer",
		Short:         "Load catalog CSV files into the database",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, _ []string) error {
			return run(command.Context(), options)
		},
	}

	command.Flags().BoolVarP(&options.overwrite, "overwrite", "o", false, "upsert rows even when tables already contain data")
	command.Flags().StringVarP(&options.table, "table", "t", "", "load only this table (category, genre, title, genretitle, user, review, comment)")
	command.Flags().StringVar(&options.dir, "dir", "", "directory with the CSV files (default IMPORT_DIR or ./static/data)")

	return command
}

func run(parent context.Context, options *flags) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", constants.AppName+"-importer"))

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgstore.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log); err != nil {
		return err
	}

	dir := options.dir
	if dir == "" {
		dir = cfg.ImportDir
	}

	reports, err := importer.New(importer.NewPostgresWriter(pool), dir, log).Run(ctx, importer.Options{
		Table:     options.table,
		Overwrite: options.overwrite,
	})
	if err != nil {
		return err
	}

	failed := 0
	for _, report := range reports {
		failed += len(report.Failed)
	}
	log.Info("import_finished", slog.Int("tables", len(reports)), slog.Int("failed_rows", failed))
	return nil
}
