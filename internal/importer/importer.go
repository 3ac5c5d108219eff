// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package importer bulk-loads the catalog from CSV files.

Every table is read from its own file in a data directory. Rows are converted
into typed values, written one by one, and reported individually: a bad row
is logged and skipped, never fatal for the rest of the file.

Modes:

  - Default: refuse when any target table has rows, otherwise load all.
  - Table: refuse when that table has rows, otherwise load it.
  - Overwrite: upsert by primary key, for all tables or only the named one.
*/
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/database/schema"
	"github.com/taibuivan/yamdb/pkg/convert"
)

// ErrNotEmpty is returned when a non-overwriting load meets existing rows.
var ErrNotEmpty = errors.New("importer: table already contains data")

// ErrUnknownTable is returned for a table name outside [Tables].
var ErrUnknownTable = errors.New("importer: unknown table")

// # Table Catalog

type kind int

const (
	kindInt kind = iota
	kindOptionalInt
	kindText
	kindOptionalText
	kindTime
	kindRole
)

const defaultRole = "user"

// Column maps a CSV header to a database column.
type Column struct {
	Header string
	Name   string
	kind   kind
}

// Table describes one importable relation.
type Table struct {
	Name    string
	File    string
	Target  string
	Columns []Column
}

// Tables lists every importable relation in dependency order.
var Tables = []Table{
	{
		Name: "category", File: "category.csv", Target: schema.CatalogCategory.Table,
		Columns: []Column{
			{"id", schema.CatalogCategory.ID, kindInt},
			{"name", schema.CatalogCategory.Name, kindText},
			{"slug", schema.CatalogCategory.Slug, kindText},
		},
	},
	{
		Name: "genre", File: "genre.csv", Target: schema.CatalogGenre.Table,
		Columns: []Column{
			{"id", schema.CatalogGenre.ID, kindInt},
			{"name", schema.CatalogGenre.Name, kindText},
			{"slug", schema.CatalogGenre.Slug, kindText},
		},
	},
	{
		Name: "title", File: "titles.csv", Target: schema.CatalogTitle.Table,
		Columns: []Column{
			{"id", schema.CatalogTitle.ID, kindInt},
			{"name", schema.CatalogTitle.Name, kindText},
			{"year", schema.CatalogTitle.Year, kindInt},
			{"category", schema.CatalogTitle.CategoryID, kindOptionalInt},
			{"description", schema.CatalogTitle.Description, kindOptionalText},
		},
	},
	{
		Name: "genretitle", File: "genre_title.csv", Target: schema.CatalogGenreTitle.Table,
		Columns: []Column{
			{"id", schema.CatalogGenreTitle.ID, kindInt},
			{"title_id", schema.CatalogGenreTitle.TitleID, kindInt},
			{"genre_id", schema.CatalogGenreTitle.GenreID, kindOptionalInt},
		},
	},
	{
		Name: "user", File: "users.csv", Target: schema.UserAccount.Table,
		Columns: []Column{
			{"id", schema.UserAccount.ID, kindInt},
			{"username", schema.UserAccount.Username, kindText},
			{"email", schema.UserAccount.Email, kindText},
			{"role", schema.UserAccount.Role, kindRole},
			{"bio", schema.UserAccount.Bio, kindText},
			{"first_name", schema.UserAccount.FirstName, kindText},
			{"last_name", schema.UserAccount.LastName, kindText},
		},
	},
	{
		Name: "review", File: "review.csv", Target: schema.CatalogReview.Table,
		Columns: []Column{
			{"id", schema.CatalogReview.ID, kindInt},
			{"title_id", schema.CatalogReview.TitleID, kindInt},
			{"text", schema.CatalogReview.Text, kindText},
			{"author", schema.CatalogReview.AuthorID, kindInt},
			{"score", schema.CatalogReview.Score, kindInt},
			{"pub_date", schema.CatalogReview.PubDate, kindTime},
		},
	},
	{
		Name: "comment", File: "comments.csv", Target: schema.CatalogComment.Table,
		Columns: []Column{
			{"id", schema.CatalogComment.ID, kindInt},
			{"review_id", schema.CatalogComment.ReviewID, kindInt},
			{"text", schema.CatalogComment.Text, kindText},
			{"author", schema.CatalogComment.AuthorID, kindInt},
			{"pub_date", schema.CatalogComment.PubDate, kindTime},
		},
	},
}

// Lookup returns the table registered under name.
func Lookup(name string) (Table, error) {
	for _, table := range Tables {
		if table.Name == name {
			return table, nil
		}
	}
	return Table{}, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

// # Storage Contract

// RowWriter persists converted rows.
type RowWriter interface {
	// Count returns the number of rows already in table.
	Count(context context.Context, table Table) (int, error)

	// Write inserts one row, or upserts it by id when overwrite is set.
	Write(context context.Context, table Table, columns []string, values []any, overwrite bool) error

	// Resync moves the identity sequence past the largest id.
	Resync(context context.Context, table Table) error
}

// # Results

// RowResult is the outcome of a single CSV record.
type RowResult struct {
	Line int
	Err  error
}

// Report summarizes the load of one table.
type Report struct {
	Table  string
	Loaded int
	Failed []RowResult
}

// # Importer

// Options selects the load mode.
type Options struct {
	Table     string
	Overwrite bool
}

// Importer loads CSV files from a directory.
type Importer struct {
	writer RowWriter
	dir    string
	logger *slog.Logger
}

// New constructs an [Importer] reading from dir.
func New(writer RowWriter, dir string, logger *slog.Logger) *Importer {
	return &Importer{writer: writer, dir: dir, logger: logger}
}

/*
Run loads the tables chosen by options and returns one report per table.

Without Overwrite, nothing is written when any chosen table has rows; the
error wraps [ErrNotEmpty] and names the table.
*/
func (importer *Importer) Run(context context.Context, options Options) ([]Report, error) {
	tables := Tables
	if options.Table != "" {
		table, err := Lookup(options.Table)
		if err != nil {
			return nil, err
		}
		tables = []Table{table}
	}

	if !options.Overwrite {
		for _, table := range tables {
			count, err := importer.writer.Count(context, table)
			if err != nil {
				return nil, fmt.Errorf("importer: count %s: %w", table.Name, err)
			}
			if count > 0 {
				return nil, fmt.Errorf("%w: %s has %d rows, use --overwrite", ErrNotEmpty, table.Name, count)
			}
		}
	}

	reports := make([]Report, 0, len(tables))
	for _, table := range tables {
		report, err := importer.load(context, table, options.Overwrite)
		if err != nil {
			return reports, err
		}
		reports = append(reports, report)

		importer.logger.InfoContext(context, "import_table_finished",
			slog.String("table", table.Name),
			slog.Int("loaded", report.Loaded),
			slog.Int("failed", len(report.Failed)),
		)
	}
	return reports, nil
}

func (importer *Importer) load(context context.Context, table Table, overwrite bool) (Report, error) {
	report := Report{Table: table.Name}

	file, err := os.Open(filepath.Join(importer.dir, table.File))
	if err != nil {
		return report, fmt.Errorf("importer: open %s: %w", table.File, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return report, fmt.Errorf("importer: read header of %s: %w", table.File, err)
	}

	columns, positions, err := bind(table, header)
	if err != nil {
		return report, fmt.Errorf("importer: %s: %w", table.File, err)
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		result := RowResult{Line: line, Err: err}
		if err == nil {
			result.Err = importer.writeRow(context, table, columns, positions, record, overwrite)
		}

		if result.Err != nil {
			importer.logger.WarnContext(context, "import_row_skipped",
				slog.String("table", table.Name),
				slog.Int("line", line),
				slog.Any("error", result.Err),
			)
			report.Failed = append(report.Failed, result)
			continue
		}
		report.Loaded++
	}

	if err := importer.writer.Resync(context, table); err != nil {
		return report, fmt.Errorf("importer: resync %s: %w", table.Name, err)
	}
	return report, nil
}

func (importer *Importer) writeRow(context context.Context, table Table, columns []Column, positions []int, record []string, overwrite bool) error {
	names := make([]string, len(columns))
	values := make([]any, len(columns))

	for i, column := range columns {
		if positions[i] >= len(record) {
			return fmt.Errorf("missing value for %q", column.Header)
		}
		value, err := convertValue(column, record[positions[i]])
		if err != nil {
			return err
		}
		names[i], values[i] = column.Name, value
	}

	return importer.writer.Write(context, table, names, values, overwrite)
}

// bind matches the header to known columns. Unknown headers are ignored; id
// is mandatory.
func bind(table Table, header []string) ([]Column, []int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}

	var (
		columns   []Column
		positions []int
	)
	for _, column := range table.Columns {
		if position, ok := index[column.Header]; ok {
			columns = append(columns, column)
			positions = append(positions, position)
		}
	}

	if len(columns) == 0 || columns[0].Header != "id" {
		return nil, nil, errors.New("header has no id column")
	}
	return columns, positions, nil
}

func convertValue(column Column, raw string) (any, error) {
	raw = strings.TrimSpace(raw)

	switch column.kind {
	case kindInt, kindOptionalInt:
		if raw == "" && column.kind == kindOptionalInt {
			return nil, nil
		}
		value, ok := convert.ToInt64Strict(raw)
		if !ok {
			return nil, fmt.Errorf("%s: %q is not an integer", column.Header, raw)
		}
		return value, nil
	case kindOptionalText:
		if raw == "" {
			return nil, nil
		}
		return raw, nil
	case kindRole:
		if raw == "" {
			return defaultRole, nil
		}
		return strings.ToLower(raw), nil
	case kindTime:
		value, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an RFC 3339 timestamp", column.Header, raw)
		}
		return value, nil
	default:
		return raw, nil
	}
}
