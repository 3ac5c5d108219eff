// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package taxonomy

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/slug"
)

// # Service Layer

// Service implements the operations of one vocabulary.
type Service struct {
	vocabulary Vocabulary
	repository Repository
}

// NewService constructs a [Service] for vocabulary.
func NewService(vocabulary Vocabulary, repository Repository) *Service {
	return &Service{vocabulary: vocabulary, repository: repository}
}

// Vocabulary returns the vocabulary the service manages.
func (service *Service) Vocabulary() Vocabulary {
	return service.vocabulary
}

// List returns a window of terms, optionally restricted to an exact name.
func (service *Service) List(context context.Context, name string, limit, offset int) ([]*Term, int, error) {
	return service.repository.List(context, strings.TrimSpace(name), limit, offset)
}

/*
Create validates and stores a new term.

Description: When no slug is submitted one is generated from the name. Name
and slug must both be unused.

Returns:
  - *Term: The stored term
  - error: VALIDATION_ERROR, CONFLICT
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Term, error) {
	term := &Term{
		Name: strings.TrimSpace(input.Name),
		Slug: strings.TrimSpace(input.Slug),
	}
	if term.Slug == "" {
		term.Slug = slug.From(term.Name, MaxSlugLen)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, term.Name).MaxLen(FieldName, term.Name, MaxNameLen)
	validator.Required(FieldSlug, term.Slug)
	if term.Slug != "" {
		validator.MaxLen(FieldSlug, term.Slug, MaxSlugLen).Slug(FieldSlug, term.Slug)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	nameTaken, slugTaken, err := service.repository.Taken(context, term.Name, term.Slug)
	if err != nil {
		return nil, err
	}
	validator.Custom(FieldName, nameTaken, "A "+strings.ToLower(service.vocabulary.Resource)+" with this name already exists").
		Custom(FieldSlug, slugTaken, "A "+strings.ToLower(service.vocabulary.Resource)+" with this slug already exists")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repository.Create(context, term); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "taxonomy_term_created",
		slog.String("kind", string(service.vocabulary.Kind)),
		slog.String("slug", term.Slug),
	)
	return term, nil
}

// Delete removes the term with the given slug.
func (service *Service) Delete(context context.Context, slug string) error {
	if err := service.repository.DeleteBySlug(context, slug); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "taxonomy_term_deleted",
		slog.String("kind", string(service.vocabulary.Kind)),
		slog.String("slug", slug),
	)
	return nil
}

/*
Resolve maps slugs to terms, preserving order and dropping duplicates.

Returns:
  - []*Term: One term per distinct slug
  - []string: Slugs that name no term
  - error: Storage failures
*/
func (service *Service) Resolve(context context.Context, slugs []string) ([]*Term, []string, error) {
	if len(slugs) == 0 {
		return []*Term{}, nil, nil
	}

	found, err := service.repository.FindBySlugs(context, slugs)
	if err != nil {
		return nil, nil, err
	}

	bySlug := make(map[string]*Term, len(found))
	for _, term := range found {
		bySlug[term.Slug] = term
	}

	terms := make([]*Term, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	var missing []string
	for _, value := range slugs {
		if seen[value] {
			continue
		}
		seen[value] = true

		term, ok := bySlug[value]
		if !ok {
			missing = append(missing, value)
			continue
		}
		terms = append(terms, term)
	}

	return terms, missing, nil
}
