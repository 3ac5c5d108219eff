// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yamdb/internal/access"
	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/validate"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// ReviewLocator reports NOT_FOUND unless a review belongs to a title.
// [*review.Service] implements it.
type ReviewLocator interface {
	Locate(context context.Context, titleID, reviewID int64) error
}

// Service orchestrates comments under a review.
type Service struct {
	repository Repository
	reviews    ReviewLocator
}

// NewService constructs a new [Service].
func NewService(repository Repository, reviews ReviewLocator) *Service {
	return &Service{repository: repository, reviews: reviews}
}

// Path locates a comment collection.
type Path struct {
	TitleID  int64
	ReviewID int64
}

// List returns one page of a review's comments, newest first.
func (service *Service) List(context context.Context, path Path, page pagination.Page) ([]*Comment, int, error) {
	if err := service.reviews.Locate(context, path.TitleID, path.ReviewID); err != nil {
		return nil, 0, err
	}

	comments, total, err := service.repository.List(context, path.ReviewID, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	if page.Check(total) != nil {
		return nil, 0, apperr.NotFound("Page")
	}
	return comments, total, nil
}

// Get returns a single comment.
func (service *Service) Get(context context.Context, path Path, id int64) (*Comment, error) {
	if err := service.reviews.Locate(context, path.TitleID, path.ReviewID); err != nil {
		return nil, err
	}
	return service.repository.FindByID(context, path.ReviewID, id)
}

// Create stores the caller's comment on a review.
func (service *Service) Create(context context.Context, identity *access.Identity, path Path, input Input) (*Comment, error) {
	if err := access.Check(identity, access.ActionCreate, access.Collection(access.KindComment)); err != nil {
		return nil, err
	}
	if err := service.reviews.Locate(context, path.TitleID, path.ReviewID); err != nil {
		return nil, err
	}

	comment := &Comment{ReviewID: path.ReviewID, AuthorID: identity.UserID}
	if err := apply(comment, input, true); err != nil {
		return nil, err
	}
	if err := service.repository.Create(context, comment); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "comment_created",
		slog.Int64("comment_id", comment.ID),
		slog.Int64("review_id", path.ReviewID),
	)
	return service.repository.FindByID(context, path.ReviewID, comment.ID)
}

// Update changes a comment's text.
func (service *Service) Update(context context.Context, identity *access.Identity, path Path, id int64, input Input, full bool) (*Comment, error) {
	comment, err := service.authorize(context, identity, access.ActionUpdate, path, id)
	if err != nil {
		return nil, err
	}

	if err := apply(comment, input, full); err != nil {
		return nil, err
	}
	if err := service.repository.Update(context, comment); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "comment_updated", slog.Int64("comment_id", comment.ID))
	return comment, nil
}

// Delete removes a comment.
func (service *Service) Delete(context context.Context, identity *access.Identity, path Path, id int64) error {
	comment, err := service.authorize(context, identity, access.ActionDelete, path, id)
	if err != nil {
		return err
	}

	if err := service.repository.Delete(context, comment.ID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "comment_deleted", slog.Int64("comment_id", comment.ID))
	return nil
}

func (service *Service) authorize(context context.Context, identity *access.Identity, action access.Action, path Path, id int64) (*Comment, error) {
	comment, err := service.Get(context, path, id)
	if err != nil {
		return nil, err
	}
	if err := access.Check(identity, action, access.Object(access.KindComment, comment.AuthorID)); err != nil {
		return nil, err
	}
	return comment, nil
}

func apply(comment *Comment, input Input, full bool) error {
	validator := &validate.Validator{}
	if input.Text != nil {
		comment.Text = strings.TrimSpace(*input.Text)
		validator.Required(FieldText, comment.Text)
	} else if full {
		validator.Required(FieldText, "")
	}
	return validator.Err()
}
