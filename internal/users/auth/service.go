// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/ctxutil"
	"github.com/taibuivan/yamdb/internal/platform/mail"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/internal/platform/validate"
)

// # Contracts & Types

// TokenProvider signs access tokens. [*sec.TokenService] implements it.
type TokenProvider interface {
	GenerateAccessToken(userID int64, username, role string, timeToLive time.Duration) (string, error)
}

// CodeProvider issues and checks confirmation codes. [*sec.ConfirmationCodes] implements it.
type CodeProvider interface {
	Generate(subject sec.CodeSubject) string
	Verify(subject sec.CodeSubject, code string) bool
}

// Options tunes the signup workflow.
type Options struct {
	AccessTokenTTL time.Duration
	MailTimeout    time.Duration
	AttemptLimit   int
	AttemptWindow  time.Duration
}

// Service implements signup and token issuance.
type Service struct {
	users    UserRepository
	attempts AttemptCounter
	codes    CodeProvider
	tokens   TokenProvider
	sender   mail.Sender
	options  Options
}

// NewService constructs a [Service].
func NewService(users UserRepository, attempts AttemptCounter, codes CodeProvider, tokens TokenProvider, sender mail.Sender, options Options) *Service {
	return &Service{
		users:    users,
		attempts: attempts,
		codes:    codes,
		tokens:   tokens,
		sender:   sender,
		options:  options,
	}
}

// # Signup Flow

// SignupInput is the (username, email) pair a code is requested for.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

/*
Signup registers the pair if needed and mails a fresh confirmation code.

Description: An account that already has exactly this username and email
gets a new code without validation, so a lost mail can be re-requested.
Otherwise the pair is validated, the account is created with the default
role, and a code is sent.

Returns:
  - *SignupInput: The accepted pair, echoed back
  - error: VALIDATION_ERROR, CONFLICT (concurrent insert), DELIVERY_FAILED
*/
func (service *Service) Signup(context context.Context, input SignupInput) (*SignupInput, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)

	existing, err := service.users.FindByUsername(context, input.Username)
	if err == nil && existing.Email == input.Email {
		if err := service.sendCode(context, existing); err != nil {
			return nil, err
		}
		return &input, nil
	}
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}

	validator := &validate.Validator{}
	CheckUsername(validator, input.Username)
	CheckEmail(validator, input.Email)
	if !validator.HasErrors() {
		if err := CheckUnique(context, service.users, validator, input.Username, input.Email, 0); err != nil {
			return nil, err
		}
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user := &User{
		Username: input.Username,
		Email:    input.Email,
		Role:     sec.RoleUser,
	}
	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "user_signed_up",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	if err := service.sendCode(context, user); err != nil {
		return nil, err
	}

	return &input, nil
}

// sendCode mails a code bound to the user's current state.
func (service *Service) sendCode(context context.Context, user *User) error {
	code := service.codes.Generate(user.CodeSubject())

	mailContext, cancel := contextWithTimeout(context, service.options.MailTimeout)
	defer cancel()

	message := mail.Message{
		To:      user.Email,
		Subject: constants.ConfirmationMailSubject,
		Body:    fmt.Sprintf("Confirmation code for %s: %s", user.Username, code),
	}
	if err := service.sender.Send(mailContext, message); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "confirmation_code_delivery_failed",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
		return apperr.DeliveryFailed(err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "confirmation_code_sent", slog.Int64("user_id", user.ID))
	return nil
}

// # Token Flow

// TokenInput is a confirmation-code redemption.
type TokenInput struct {
	Username         string `json:"username"`
	ConfirmationCode string `json:"confirmation_code"`
}

/*
IssueToken exchanges a valid confirmation code for an access token.

Description: A successful redemption bumps the account's token version, which
invalidates this code and every other outstanding one. Failed attempts are
counted per username; once the limit is reached the caller is throttled until
the window expires.

Returns:
  - string: Signed access token
  - error: VALIDATION_ERROR (missing fields or bad code), NOT_FOUND, RATE_LIMITED
*/
func (service *Service) IssueToken(context context.Context, input TokenInput) (string, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.ConfirmationCode = strings.TrimSpace(input.ConfirmationCode)

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		Required(FieldConfirmationCode, input.ConfirmationCode)
	if err := validator.Err(); err != nil {
		return "", err
	}

	failures, err := service.attempts.Failures(context, input.Username)
	if err != nil {
		return "", apperr.Internal(err)
	}
	if failures >= service.options.AttemptLimit {
		return "", apperr.RateLimited(int(service.options.AttemptWindow.Seconds()))
	}

	user, err := service.users.FindByUsername(context, input.Username)
	if err != nil {
		return "", err
	}

	if !service.codes.Verify(user.CodeSubject(), input.ConfirmationCode) {
		return "", service.rejectCode(context, user)
	}

	consumed, err := service.users.ConsumeTokenVersion(context, user.ID, user.TokenVersion)
	if err != nil {
		return "", err
	}
	if !consumed {
		return "", service.rejectCode(context, user)
	}

	if err := service.attempts.Reset(context, user.Username); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "code_attempts_reset_failed", slog.Any("error", err))
	}

	token, err := service.tokens.GenerateAccessToken(user.ID, user.Username, string(user.EffectiveRole()), service.options.AccessTokenTTL)
	if err != nil {
		return "", apperr.Internal(err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "access_token_issued", slog.Int64("user_id", user.ID))
	return token, nil
}

// rejectCode counts a failed attempt and returns the generic redemption error.
func (service *Service) rejectCode(context context.Context, user *User) error {
	if err := service.attempts.RecordFailure(context, user.Username, service.options.AttemptWindow); err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "code_attempt_record_failed", slog.Any("error", err))
	}

	ctxutil.GetLogger(context).InfoContext(context, "confirmation_code_rejected", slog.Int64("user_id", user.ID))
	return apperr.ValidationError("Invalid confirmation code", apperr.FieldError{
		Field:   FieldConfirmationCode,
		Message: "Invalid confirmation code",
	})
}

// contextWithTimeout bounds parent by timeout; a non-positive timeout only
// inherits the parent's deadline.
func contextWithTimeout(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
