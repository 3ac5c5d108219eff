// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/core/taxonomy"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/slice"
)

// TermResolver maps slugs to terms. [*taxonomy.Service] implements it.
type TermResolver interface {
	Resolve(context context.Context, slugs []string) ([]*taxonomy.Term, []string, error)
}

// # Service Layer

// Service orchestrates title reads and writes.
type Service struct {
	repository Repository
	categories TermResolver
	genres     TermResolver
	now        func() time.Time
}

// NewService constructs a new [Service].
func NewService(repository Repository, categories, genres TermResolver) *Service {
	return &Service{
		repository: repository,
		categories: categories,
		genres:     genres,
		now:        time.Now,
	}
}

// # Reads

// List returns a filtered window of titles.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repository.List(context, filter, limit, offset)
}

// Get returns the title with the given ID.
func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repository.FindByID(context, id)
}

// Exists reports whether the title exists. Missing titles are NOT_FOUND.
func (service *Service) Exists(context context.Context, id int64) error {
	exists, err := service.repository.Exists(context, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound(resourceTitle)
	}
	return nil
}

// # Writes

/*
Create validates a complete title and stores it.

Returns:
  - *Title: The stored title in its read representation
  - error: VALIDATION_ERROR, CONFLICT
*/
func (service *Service) Create(context context.Context, input WriteInput) (*Title, error) {
	record := &Record{}
	if err := service.build(context, record, input, true); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, record); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "title_created", slog.Int64("title_id", record.ID))
	return service.repository.FindByID(context, record.ID)
}

// Replace overwrites every writable field of the title.
func (service *Service) Replace(context context.Context, id int64, input WriteInput) (*Title, error) {
	if err := service.Exists(context, id); err != nil {
		return nil, err
	}

	record := &Record{ID: id}
	if err := service.build(context, record, input, true); err != nil {
		return nil, err
	}

	return service.save(context, record)
}

// Patch changes only the submitted fields of the title.
func (service *Service) Patch(context context.Context, id int64, input WriteInput) (*Title, error) {
	current, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	record := &Record{
		ID:          id,
		Name:        current.Name,
		Year:        current.Year,
		Description: current.Description,
		CategoryID:  current.categoryID,
	}
	if err := service.build(context, record, input, false); err != nil {
		return nil, err
	}

	return service.save(context, record)
}

func (service *Service) save(context context.Context, record *Record) (*Title, error) {
	if err := service.repository.Update(context, record); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "title_updated", slog.Int64("title_id", record.ID))
	return service.repository.FindByID(context, record.ID)
}

// Delete removes the title.
func (service *Service) Delete(context context.Context, id int64) error {
	if err := service.repository.Delete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "title_deleted", slog.Int64("title_id", id))
	return nil
}

/*
build validates input and applies it onto record.

Description: With full set, name, year, genre and category are required and
an absent description clears the stored one. Slugs are resolved against the
vocabularies; every unknown slug becomes a field error.
*/
func (service *Service) build(context context.Context, record *Record, input WriteInput, full bool) error {
	validator := &validate.Validator{}

	if input.Name != nil {
		record.Name = strings.TrimSpace(*input.Name)
		validator.Required(FieldName, record.Name).MaxLen(FieldName, record.Name, MaxNameLen)
	} else if full {
		validator.Required(FieldName, "")
	}

	if input.Year != nil {
		record.Year = *input.Year
		currentYear := service.now().Year()
		validator.Custom(FieldYear, record.Year < 1, "Must be a positive year").
			Custom(FieldYear, record.Year > currentYear, fmt.Sprintf("Must not be later than %d", currentYear))
	} else if full {
		validator.Required(FieldYear, "")
	}

	if input.Description != nil || full {
		record.Description = input.Description
	}

	if input.Genre != nil {
		terms, missing, err := service.genres.Resolve(context, input.Genre)
		if err != nil {
			return err
		}
		for _, slug := range missing {
			validator.Custom(FieldGenre, true, fmt.Sprintf("Unknown genre %q", slug))
		}
		record.GenreIDs = slice.Map(terms, func(term *taxonomy.Term) int64 { return term.ID })
	} else if full {
		validator.Required(FieldGenre, "")
	}

	if input.Category != nil {
		terms, missing, err := service.categories.Resolve(context, []string{*input.Category})
		if err != nil {
			return err
		}
		if len(missing) > 0 || len(terms) == 0 {
			validator.Custom(FieldCategory, true, fmt.Sprintf("Unknown category %q", *input.Category))
		} else {
			record.CategoryID = &terms[0].ID
		}
	} else if full {
		validator.Required(FieldCategory, "")
	}

	if !validator.HasErrors() && input.Name != nil {
		taken, err := service.repository.NameTaken(context, record.Name, record.ID)
		if err != nil {
			return err
		}
		validator.Custom(FieldName, taken, "A title with this name already exists")
	}

	return validator.Err()
}
