// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/internal/platform/constants"
	"github.com/taibuivan/pizzanoir/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/pizzanoir/internal/platform/request"
	"github.com/taibuivan/pizzanoir/internal/platform/respond"
	"github.com/taibuivan/pizzanoir/internal/platform/validate"
	"github.com/taibuivan/pizzanoir/pkg/pointer"
	"github.com/taibuivan/pizzanoir/pkg/slice"
)

// TokenIssuer issues and inspects access tokens. Implemented by [sec.TokenCodec].
type TokenIssuer interface {
	Issue(principalID int64, issuedAt time.Time) (string, time.Time, error)
	ExpiresAt(token string) (time.Time, error)
	Lifetime() time.Duration
}

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
//
// # Scope
//
// The service decides who the user is. The handler owns the transport side:
// issuing the token, the access_token cookie and the denylist on sign-out.
type Handler struct {
	service      *Service
	tokens       TokenIssuer
	denylist     Denylist
	secureCookie bool
	now          func() time.Time
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, tokens TokenIssuer, denylist Denylist, secureCookie bool) *Handler {
	return &Handler{
		service:      service,
		tokens:       tokens,
		denylist:     denylist,
		secureCookie: secureCookie,
		now:          time.Now,
	}
}

// # Request Payloads

type signInRequest struct {
	Login       string `json:"login"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type signUpRequest struct {
	Login       string    `json:"login"`
	Password    string    `json:"password"`
	Name        string    `json:"name"`
	Surname     *string   `json:"surname"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       *string   `json:"email"`
	Birthday    *string   `json:"birthday"`
	Roles       []RoleDTO `json:"roles"`
}

/*
SignIn authenticates a user and sets the access token cookie.

POST /api/auth/sign-in

Request:
  - Body: signInRequest (one of Login, Email, PhoneNumber; Password)

Response:
  - 200: UserDTO, Set-Cookie access_token
  - 400: ValidationFailed
  - 401: AuthenticationFailed "Wrong credentials. Try again"
*/
func (handler *Handler) SignIn(writer http.ResponseWriter, request *http.Request) {
	var input signInRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldPassword, input.Password).
		Custom(FieldLogin, input.Login == "" && input.Email == "" && input.PhoneNumber == "",
			"One of login, email or phone number is required").
		MaxLen(FieldEmail, input.Email, EmailMaxLength)
	if input.PhoneNumber != "" {
		validator.Phone(FieldPhoneNumber, input.PhoneNumber)
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.SignIn(request.Context(), Credentials{
		Login:       input.Login,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		Password:    input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	token, expiresAt, err := handler.tokens.Issue(user.ID, handler.now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.accessTokenCookie(token, expiresAt))
	respond.OK(writer, SubjectSignIn, user)
}

/*
SignUp registers a new user.

POST /api/auth/sign-up

Response:
  - 201: "Successfully signed up"
  - 400: ValidationFailed (bad body or unknown role ID)
  - 409: AuthenticationFailed "User with prompted credential already exists"
*/
func (handler *Handler) SignUp(writer http.ResponseWriter, request *http.Request) {
	var input signUpRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldLogin, input.Login).
		Required(FieldPassword, input.Password).
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, NameMaxLength).
		Required(FieldPhoneNumber, input.PhoneNumber).
		Phone(FieldPhoneNumber, input.PhoneNumber).
		MaxLen(FieldSurname, pointer.Val(input.Surname), SurnameMaxLength).
		MaxLen(FieldBirthday, pointer.Val(input.Birthday), BirthdayMaxLength)

	if email := pointer.Val(input.Email); email != "" {
		validator.MaxLen(FieldEmail, email, EmailMaxLength).Email(FieldEmail, email)
	}

	for _, role := range input.Roles {
		validator.Custom(FieldRoles, role.ID < 1, "Role ID must be a positive number")
	}

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.service.SignUp(request.Context(), RegistrationInput{
		Login:       input.Login,
		Password:    input.Password,
		Name:        input.Name,
		Surname:     input.Surname,
		PhoneNumber: input.PhoneNumber,
		Email:       input.Email,
		Birthday:    input.Birthday,
		RoleIDs:     slice.Map(input.Roles, func(role RoleDTO) int64 { return role.ID }),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, SubjectSignUp, MsgSignedUp)
}

/*
SignOut revokes the current access token and expires the cookie.

POST /api/auth/sign-out

Response:
  - 200: "Successfully signed out"
  - 401: AuthenticationFailed when the cookie is missing
  - 503: StoreUnavailable when the denylist cannot be reached
*/
func (handler *Handler) SignOut(writer http.ResponseWriter, request *http.Request) {
	token, err := accessTokenFrom(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.revoke(request.Context(), token); err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, handler.expiredCookie())
	respond.OK(writer, SubjectSignOut, MsgSignedOut)
}

/*
CurrentUser returns the profile of the authenticated caller.

GET /api/auth/current-user

The principal is the one the authentication filter attached to the request,
so the cookie is not parsed a second time here.

Response:
  - 200: UserDTO
  - 401: AuthenticationFailed when no principal is attached or the user is gone
*/
func (handler *Handler) CurrentUser(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.CurrentUserInfo(request.Context(), principal.ID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, SubjectCurrentUser, user)
}

// # Helpers

// revoke adds token to the denylist until its own expiry. A token that no
// longer parses is kept for a full lifetime instead.
func (handler *Handler) revoke(ctx context.Context, token string) error {
	expiresAt, err := handler.tokens.ExpiresAt(token)
	if err != nil {
		ctxutil.GetLogger(ctx).WarnContext(ctx, "sign_out_unparsable_token", "error", err)
		expiresAt = handler.now().Add(handler.tokens.Lifetime())
	}

	return handler.denylist.Add(ctx, constants.DenylistName, token, expiresAt)
}

func accessTokenFrom(request *http.Request) (string, error) {
	cookie, err := request.Cookie(constants.AccessTokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", apperr.AuthenticationFailed(MsgMissingToken)
	}
	return cookie.Value, nil
}

func (handler *Handler) accessTokenCookie(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    token,
		Path:     constants.AccessTokenCookiePath,
		Expires:  expiresAt,
		MaxAge:   int(handler.tokens.Lifetime().Seconds()),
		HttpOnly: true,
		Secure:   handler.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

func (handler *Handler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    "",
		Path:     constants.AccessTokenCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   handler.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}
