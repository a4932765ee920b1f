// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth owns user accounts and the session lifecycle: sign-in, sign-up,
// sign-out, and principal resolution for the authentication filter.
package auth

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/taibuivan/pizzanoir/internal/platform/sec"
	"github.com/taibuivan/pizzanoir/pkg/slice"
)

// Role is an authority granted to a user.
type Role struct {
	ID   int64
	Name string
}

// User is a registered customer or administrator.
//
// # Rules
//   - Login, PhoneNumber and Email (when set) are unique.
//   - PasswordHash is produced by bcrypt in [Service.SignUp] only.
//   - Accounts are never hard-deleted.
type User struct {
	ID           int64
	Login        string
	PasswordHash string
	Name         string
	Surname      *string
	PhoneNumber  string
	Email        *string
	Birthday     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Roles        []Role
}

// Principal derives the request identity from the user.
// Authorities is empty, never nil, for a user without roles.
func (u *User) Principal() *sec.Principal {
	authorities := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		authorities = append(authorities, role.Name)
	}

	return &sec.Principal{
		ID:          u.ID,
		Login:       u.Login,
		Name:        u.Name,
		Authorities: authorities,
	}
}

// RoleDTO is the wire form of a [Role].
type RoleDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// UserDTO is the wire form of a [User]. The password hash never leaves the service.
type UserDTO struct {
	ID          int64     `json:"id"`
	Login       string    `json:"login"`
	Name        string    `json:"name"`
	Surname     *string   `json:"surname,omitempty"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       *string   `json:"email,omitempty"`
	Birthday    *string   `json:"birthday,omitempty"`
	Roles       []RoleDTO `json:"roles"`
}

// ToDTO maps the entity to its wire form.
func (u *User) ToDTO() *UserDTO {
	roles := slice.Map(u.Roles, func(role Role) RoleDTO {
		return RoleDTO{ID: role.ID, Name: role.Name}
	})
	if roles == nil {
		roles = []RoleDTO{}
	}

	return &UserDTO{
		ID:          u.ID,
		Login:       u.Login,
		Name:        u.Name,
		Surname:     u.Surname,
		PhoneNumber: u.PhoneNumber,
		Email:       u.Email,
		Birthday:    u.Birthday,
		Roles:       roles,
	}
}

// Credentials is a sign-in attempt. Only one identifier is required.
type Credentials struct {
	Login       string
	Email       string
	PhoneNumber string
	Password    string
}

// Identifier picks the identifier to look up: login, then email, then phone.
func (c Credentials) Identifier() string {
	switch {
	case c.Login != "":
		return c.Login
	case c.Email != "":
		return c.Email
	default:
		return c.PhoneNumber
	}
}

// RegistrationInput holds the data required to enroll a new user.
type RegistrationInput struct {
	Login       string
	Password    string
	Name        string
	Surname     *string
	PhoneNumber string
	Email       *string
	Birthday    *string
	RoleIDs     []int64
}

// normalize folds identifiers and secrets to NFC so visually identical input
// compares equal.
func normalize(value string) string {
	return norm.NFC.String(strings.TrimSpace(value))
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	normalized := normalize(*value)
	if normalized == "" {
		return nil
	}
	return &normalized
}
