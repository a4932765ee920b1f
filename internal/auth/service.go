// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/internal/platform/sec"
	"github.com/taibuivan/pizzanoir/pkg/pointer"
)

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	users UserRepository
	now   func() time.Time
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(users UserRepository) *Service {
	return &Service{users: users, now: time.Now}
}

// WithClock replaces the time source used for timestamps. Intended for tests.
func (service *Service) WithClock(now func() time.Time) *Service {
	service.now = now
	return service
}

// SignIn verifies credentials and returns the matching user.
//
// # Business Rules
//   - The identifier is the login, else the email, else the phone number.
//   - An unknown identifier and a wrong password fail identically.
//   - Only the identifier is normalized. The password is compared verbatim.
func (service *Service) SignIn(ctx context.Context, credentials Credentials) (*UserDTO, error) {
	identifier := normalize(credentials.Identifier())
	if identifier == "" {
		return nil, apperr.AuthenticationFailed(MsgWrongCredentials)
	}

	user, err := service.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.AuthenticationFailed(MsgWrongCredentials)
		}
		return nil, fmt.Errorf("auth_service_sign_in_failed: %w", err)
	}

	if !sec.CheckPasswordHash(credentials.Password, user.PasswordHash) {
		return nil, apperr.AuthenticationFailed(MsgWrongCredentials)
	}

	return user.ToDTO(), nil
}

// SignUp validates uniqueness, hashes the password and persists a new user.
//
// # Returns
//   - [ErrDuplicateCredential] if login, email or phone number is taken.
//   - A ValidationFailed error if a role ID does not exist.
func (service *Service) SignUp(ctx context.Context, input RegistrationInput) error {
	login := normalize(input.Login)
	phoneNumber := normalize(input.PhoneNumber)
	email := normalizeOptional(input.Email)

	// ── 1. Uniqueness Checks ──────────────────────────────────────────────

	_, err := service.users.FindByAnyCredential(ctx, login, pointer.Val(email), phoneNumber)
	if err == nil {
		return ErrDuplicateCredential
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		return fmt.Errorf("auth_service_sign_up_lookup_failed: %w", err)
	}

	// ── 2. Security ───────────────────────────────────────────────────────

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// ── 3. Persistence ────────────────────────────────────────────────────

	now := service.now().UTC()
	user := &User{
		Login:        login,
		PasswordHash: hashedPassword,
		Name:         normalize(input.Name),
		Surname:      normalizeOptional(input.Surname),
		PhoneNumber:  phoneNumber,
		Email:        email,
		Birthday:     normalizeOptional(input.Birthday),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := service.users.Create(ctx, user, input.RoleIDs); err != nil {
		if apperr.As(err) != nil {
			return err
		}
		return fmt.Errorf("auth_service_sign_up_failed: %w", err)
	}

	return nil
}

// CurrentUserInfo returns the profile of the user with the given ID.
//
// A missing user is reported as AuthenticationFailed, not NotFound.
func (service *Service) CurrentUserInfo(ctx context.Context, id int64) (*UserDTO, error) {
	user, err := service.users.FindByID(ctx, id)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.AuthenticationFailed(MsgUserNotFoundByID)
		}
		return nil, fmt.Errorf("auth_service_current_user_failed: %w", err)
	}

	return user.ToDTO(), nil
}
