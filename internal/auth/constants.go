// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

// # Request Fields

const (
	FieldLogin       = "login"
	FieldEmail       = "email"
	FieldPhoneNumber = "phoneNumber"
	FieldPassword    = "password"
	FieldName        = "name"
	FieldSurname     = "surname"
	FieldBirthday    = "birthday"
	FieldRoles       = "roles"
)

// # Field Limits

const (
	NameMaxLength     = 20
	SurnameMaxLength  = 40
	EmailMaxLength    = 50
	BirthdayMaxLength = 10
)

// # Response Subjects

const (
	SubjectSignIn      = "Sign In"
	SubjectSignUp      = "Sign Up"
	SubjectSignOut     = "Sign Out"
	SubjectCurrentUser = "Current User"
)

// # Messages

const (
	// MsgWrongCredentials covers both an unknown identifier and a bad password.
	MsgWrongCredentials = "Wrong credentials. Try again"

	MsgUserNotFoundByID = "Couldn't find user with such ID"
	MsgSignedUp         = "Successfully signed up"
	MsgSignedOut        = "Successfully signed out"
	MsgMissingToken     = "Access token cookie is missing"
)
