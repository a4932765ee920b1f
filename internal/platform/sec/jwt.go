// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces declared by the consumers.
package sec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
)

// minSecretBytes is the smallest HMAC-SHA256 key accepted after base64 decoding.
const minSecretBytes = 32

// TokenCodec issues and verifies HS256 access tokens whose subject is a
// numeric user ID.
//
// # Concurrency
//
// A TokenCodec holds only immutable configuration and is safe for concurrent use.
type TokenCodec struct {
	secret   []byte
	lifetime time.Duration
	issuer   string
	now      func() time.Time
}

// NewTokenCodec decodes the base64 secret and returns a codec that signs
// tokens valid for lifetime.
func NewTokenCodec(base64Secret string, lifetime time.Duration, issuer string) (*TokenCodec, error) {
	secret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return nil, fmt.Errorf("sec: secret is not valid base64: %w", err)
	}

	if len(secret) < minSecretBytes {
		return nil, fmt.Errorf("sec: secret must decode to at least %d bytes, got %d", minSecretBytes, len(secret))
	}

	if lifetime <= 0 {
		return nil, errors.New("sec: token lifetime must be positive")
	}

	return &TokenCodec{
		secret:   secret,
		lifetime: lifetime,
		issuer:   issuer,
		now:      time.Now,
	}, nil
}

// WithClock returns a copy of the codec that reads the current time from now.
func (codec *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	clone := *codec
	clone.now = now
	return &clone
}

// Lifetime returns the configured token lifetime.
func (codec *TokenCodec) Lifetime() time.Duration {
	return codec.lifetime
}

// Issue signs a token for principalID. It returns the token and the expiry
// embedded in it, which is rounded down to whole seconds.
func (codec *TokenCodec) Issue(principalID int64, issuedAt time.Time) (string, time.Time, error) {
	claims := jwt.RegisteredClaims{
		Issuer:    codec.issuer,
		Subject:   strconv.FormatInt(principalID, 10),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(codec.lifetime)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, claims.ExpiresAt.Time, nil
}

// Validate reports a TokenInvalid error when the token is malformed, carries a
// bad signature or issuer, or has expired.
func (codec *TokenCodec) Validate(tokenString string) error {
	_, err := codec.parse(tokenString)
	return err
}

// ExtractPrincipalID verifies the token and returns the numeric subject.
func (codec *TokenCodec) ExtractPrincipalID(tokenString string) (int64, error) {
	claims, err := codec.parse(tokenString)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, apperr.TokenInvalid(fmt.Errorf("sec: subject %q is not numeric: %w", claims.Subject, err))
	}

	return id, nil
}

// ExpiresAt verifies the token and returns its expiry instant.
func (codec *TokenCodec) ExpiresAt(tokenString string) (time.Time, error) {
	claims, err := codec.parse(tokenString)
	if err != nil {
		return time.Time{}, err
	}
	return claims.ExpiresAt.Time, nil
}

func (codec *TokenCodec) parse(tokenString string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return codec.secret, nil
	},
		jwt.WithIssuer(codec.issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(codec.now),
	)

	if err != nil {
		return nil, apperr.TokenInvalid(err)
	}

	if !token.Valid {
		return nil, apperr.TokenInvalid(errors.New("sec: invalid token claims"))
	}

	return claims, nil
}
