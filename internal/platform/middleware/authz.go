// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/internal/platform/constants"
	"github.com/taibuivan/pizzanoir/internal/platform/ctxutil"
	"github.com/taibuivan/pizzanoir/internal/platform/respond"
	"github.com/taibuivan/pizzanoir/internal/platform/sec"
)

var errRevoked = errors.New("token is on the denylist")

// TokenVerifier is the slice of the token codec the filter needs.
type TokenVerifier interface {
	Validate(token string) error
	ExtractPrincipalID(token string) (int64, error)
}

// Denylist reports whether a token was revoked.
type Denylist interface {
	Contains(ctx context.Context, list, token string) (bool, error)
}

// PrincipalLoader resolves a user ID into a principal.
type PrincipalLoader interface {
	LoadByID(ctx context.Context, id int64) (*sec.Principal, error)
}

// Authenticate reads the access token cookie and, when it checks out, puts the
// principal into the request context.
//
// # Flow
//  1. No cookie: the request proceeds as anonymous.
//  2. The token is validated, then checked against the denylist.
//  3. The subject is resolved through the [PrincipalLoader].
//  4. The principal is injected with [ctxutil.WithPrincipal].
//
// Every failure is logged and the request continues anonymously. Rejection
// happens later in [RequireAuth], so whitelisted routes stay reachable with a
// stale cookie.
func Authenticate(verifier TokenVerifier, denylist Denylist, loader PrincipalLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()

			cookie, err := request.Cookie(constants.AccessTokenCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			principal, err := resolvePrincipal(ctx, cookie.Value, verifier, denylist, loader)
			if err != nil {
				ctxutil.GetLogger(ctx).WarnContext(ctx, "authentication_skipped", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			logger := ctxutil.GetLogger(ctx).With(slog.Int64("principal_id", principal.ID))
			ctx = ctxutil.WithLogger(ctxutil.WithPrincipal(ctx, principal), logger)

			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func resolvePrincipal(
	ctx context.Context,
	token string,
	verifier TokenVerifier,
	denylist Denylist,
	loader PrincipalLoader,
) (*sec.Principal, error) {
	if err := verifier.Validate(token); err != nil {
		return nil, err
	}

	revoked, err := denylist.Contains(ctx, constants.DenylistName, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, apperr.TokenInvalid(errRevoked)
	}

	id, err := verifier.ExtractPrincipalID(token)
	if err != nil {
		return nil, err
	}

	return loader.LoadByID(ctx, id)
}

// RequireAuth is the authentication entry point: requests without a principal
// get a 401.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			respond.Error(writer, request, apperr.AuthenticationFailed(constants.UnauthorizedMessage))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
