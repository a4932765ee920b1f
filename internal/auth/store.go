// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

//go:generate mockgen -source=store.go -destination=../mock/user_store_mock.go -package=mock

import (
	"context"
	"time"
)

// UserRepository defines the data access contract for user accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently by the team.
//
// # Implementations
//
// The canonical implementation is [PostgresUserRepository].
type UserRepository interface {
	// FindByID returns the account with the given ID, roles included.
	//
	// Returns [apperr.NotFound] if the account does not exist.
	FindByID(ctx context.Context, id int64) (*User, error)

	// FindByIdentifier returns the account whose login, email or phone number
	// equals identifier. A login match wins over email, email over phone.
	//
	// Returns [apperr.NotFound] if nothing matches.
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)

	// FindByAnyCredential returns an account matching any of the non-empty
	// values. Used to reject duplicate registrations.
	//
	// Returns [apperr.NotFound] if nothing matches.
	FindByAnyCredential(ctx context.Context, login, email, phoneNumber string) (*User, error)

	// Create persists a brand-new account and links it to roleIDs, setting user.ID.
	//
	// Returns [ErrDuplicateCredential] when a unique constraint fails and a
	// ValidationFailed error when a role ID is unknown.
	Create(ctx context.Context, user *User, roleIDs []int64) error
}

// Denylist stores revoked access tokens until they expire.
type Denylist interface {
	// Add revokes token in the named list until expiresAt.
	Add(ctx context.Context, list, token string, expiresAt time.Time) error

	// Contains reports whether token is revoked in the named list.
	Contains(ctx context.Context, list, token string) (bool, error)
}
