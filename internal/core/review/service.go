// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// TitleChecker reports missing titles. [*title.Service] implements it.
type TitleChecker interface {
	Exists(context context.Context, id int64) error
}

// # Service Layer

// Service orchestrates reviews under a title.
type Service struct {
	repository Repository
	titles     TitleChecker
}

// NewService constructs a new [Service].
func NewService(repository Repository, titles TitleChecker) *Service {
	return &Service{repository: repository, titles: titles}
}

// # Reads

/*
List returns one page of the title's reviews.

Returns:
  - error: NOT_FOUND for a missing title or a page beyond the last
*/
func (service *Service) List(context context.Context, titleID int64, page pagination.Page) ([]*Review, int, error) {
	if err := service.titles.Exists(context, titleID); err != nil {
		return nil, 0, err
	}

	reviews, total, err := service.repository.List(context, titleID, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	if err := page.Check(total); err != nil {
		return nil, 0, pageError(err)
	}
	return reviews, total, nil
}

// Get returns a review of the title.
func (service *Service) Get(context context.Context, titleID, id int64) (*Review, error) {
	return service.repository.FindByID(context, titleID, id)
}

// Locate reports NOT_FOUND unless review id belongs to title titleID.
func (service *Service) Locate(context context.Context, titleID, id int64) error {
	_, err := service.repository.FindByID(context, titleID, id)
	return err
}

// # Writes

/*
Create stores the caller's review of a title.

Description: A second review by the same author is rejected up front as a
validation error; the unique constraint catches a concurrent duplicate,
which surfaces as CONFLICT.
*/
func (service *Service) Create(context context.Context, identity *access.Identity, titleID int64, input Input) (*Review, error) {
	if err := access.Check(identity, access.ActionCreate, access.Collection(access.KindReview)); err != nil {
		return nil, err
	}
	if err := service.titles.Exists(context, titleID); err != nil {
		return nil, err
	}

	review := &Review{TitleID: titleID, AuthorID: identity.UserID}
	if err := apply(review, input, true); err != nil {
		return nil, err
	}

	duplicate, err := service.repository.ExistsByAuthor(context, titleID, identity.UserID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, apperr.ValidationError("You have already reviewed this title")
	}

	if err := service.repository.Create(context, review); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "review_created",
		slog.Int64("review_id", review.ID),
		slog.Int64("title_id", titleID),
	)

	// The author name comes from the account, not from possibly stale claims
	return service.repository.FindByID(context, titleID, review.ID)
}

// Update changes a review. With full set both text and score are required.
func (service *Service) Update(context context.Context, identity *access.Identity, titleID, id int64, input Input, full bool) (*Review, error) {
	review, err := service.authorize(context, identity, access.ActionUpdate, titleID, id)
	if err != nil {
		return nil, err
	}

	if err := apply(review, input, full); err != nil {
		return nil, err
	}
	if err := service.repository.Update(context, review); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "review_updated", slog.Int64("review_id", review.ID))
	return review, nil
}

// Delete removes a review.
func (service *Service) Delete(context context.Context, identity *access.Identity, titleID, id int64) error {
	review, err := service.authorize(context, identity, access.ActionDelete, titleID, id)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, review.ID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "review_deleted", slog.Int64("review_id", review.ID))
	return nil
}

// authorize loads the review and applies the object-level decision.
func (service *Service) authorize(context context.Context, identity *access.Identity, action access.Action, titleID, id int64) (*Review, error) {
	review, err := service.repository.FindByID(context, titleID, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(identity, action, access.Object(access.KindReview, review.AuthorID)); err != nil {
		return nil, err
	}
	return review, nil
}

// apply validates input and copies it onto review.
func apply(review *Review, input Input, full bool) error {
	validator := &validate.Validator{}

	if input.Text != nil {
		review.Text = strings.TrimSpace(*input.Text)
		validator.Required(FieldText, review.Text)
	} else if full {
		validator.Required(FieldText, "")
	}

	if input.Score != nil {
		review.Score = *input.Score
		validator.Range(FieldScore, review.Score, MinScore, MaxScore)
	} else if full {
		validator.Required(FieldScore, "")
	}

	return validator.Err()
}

func pageError(err error) error {
	if errors.Is(err, pagination.ErrInvalidPage) {
		return apperr.NotFound("Page")
	}
	return err
}
