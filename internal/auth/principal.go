// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"strconv"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/internal/platform/sec"
)

// PrincipalLoader resolves request identities from the credential store.
type PrincipalLoader struct {
	users UserRepository
}

// NewPrincipalLoader constructs a [PrincipalLoader].
func NewPrincipalLoader(users UserRepository) *PrincipalLoader {
	return &PrincipalLoader{users: users}
}

// LoadByID returns the principal for the given user ID.
//
// Returns [apperr.UserNotFound] when no user has that ID.
func (loader *PrincipalLoader) LoadByID(ctx context.Context, id int64) (*sec.Principal, error) {
	user, err := loader.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundAsUserNotFound(err, "Cannot find user with ID "+strconv.FormatInt(id, 10))
	}
	return user.Principal(), nil
}

// LoadByIdentifier returns the principal whose login, email or phone number
// matches identifier.
func (loader *PrincipalLoader) LoadByIdentifier(ctx context.Context, identifier string) (*sec.Principal, error) {
	user, err := loader.users.FindByIdentifier(ctx, normalize(identifier))
	if err != nil {
		return nil, notFoundAsUserNotFound(err, "Cannot find user with credential "+identifier)
	}
	return user.Principal(), nil
}

func notFoundAsUserNotFound(err error, msg string) error {
	if apperr.IsKind(err, apperr.KindNotFound) {
		return apperr.UserNotFound(msg)
	}
	return err
}
