// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/taibuivan/pizzanoir/internal/auth"
	"github.com/taibuivan/pizzanoir/internal/mock"
	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/internal/platform/constants"
	"github.com/taibuivan/pizzanoir/internal/platform/ctxutil"
	"github.com/taibuivan/pizzanoir/internal/platform/respond"
	"github.com/taibuivan/pizzanoir/internal/platform/sec"
)

type handlerFixture struct {
	handler  *auth.Handler
	users    *mock.MockUserRepository
	denylist *mock.MockDenylist
	codec    *sec.TokenCodec
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	users := mock.NewMockUserRepository(ctrl)
	denylist := mock.NewMockDenylist(ctrl)

	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	codec, err := sec.NewTokenCodec(secret, time.Hour, constants.AuthIssuer)
	require.NoError(t, err)

	service := auth.NewService(users)
	return &handlerFixture{
		handler:  auth.NewHandler(service, codec, denylist, true),
		users:    users,
		denylist: denylist,
		codec:    codec,
	}
}

func serve(handlerFunc http.HandlerFunc, method, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, "/api/auth", strings.NewReader(body))
	if cookie != nil {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	handlerFunc(recorder, request)
	return recorder
}

func accessCookie(recorder *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.AccessTokenCookieName {
			return cookie
		}
	}
	return nil
}

func decodeError(t *testing.T, recorder *httptest.ResponseRecorder) respond.ErrorEnvelope {
	t.Helper()

	var envelope respond.ErrorEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	return envelope
}

// ── Sign In ──────────────────────────────────────────────────────────────────

func TestHandler_SignIn(t *testing.T) {
	fixture := newHandlerFixture(t)
	fixture.users.EXPECT().FindByIdentifier(gomock.Any(), "bob").Return(storedUser(t, "pw123"), nil)

	recorder := serve(fixture.handler.SignIn, http.MethodPost, `{"login":"bob","password":"pw123"}`, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		StatusCode int          `json:"statusCode"`
		Subject    string       `json:"subject"`
		Data       auth.UserDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, auth.SubjectSignIn, envelope.Subject)
	assert.Equal(t, int64(7), envelope.Data.ID)
	assert.NotContains(t, recorder.Body.String(), "password")

	cookie := accessCookie(recorder)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)

	id, err := fixture.codec.ExtractPrincipalID(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestHandler_SignIn_Rejected(t *testing.T) {
	t.Run("wrong_password", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.users.EXPECT().FindByIdentifier(gomock.Any(), "bob").Return(storedUser(t, "pw123"), nil)

		recorder := serve(fixture.handler.SignIn, http.MethodPost, `{"login":"bob","password":"nope"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Nil(t, accessCookie(recorder))
		assert.Equal(t, auth.MsgWrongCredentials, decodeError(t, recorder).Message)
	})

	t.Run("no_identifier", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		recorder := serve(fixture.handler.SignIn, http.MethodPost, `{"password":"pw123"}`, nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, apperr.KindValidationFailed, decodeError(t, recorder).Exception)
	})

	t.Run("bad_phone", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		recorder := serve(fixture.handler.SignIn, http.MethodPost, `{"phoneNumber":"123","password":"pw123"}`, nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("malformed_json", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		recorder := serve(fixture.handler.SignIn, http.MethodPost, `{"login":`, nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Nil(t, accessCookie(recorder))
	})
}

// ── Sign Up ──────────────────────────────────────────────────────────────────

func TestHandler_SignUp(t *testing.T) {
	fixture := newHandlerFixture(t)

	fixture.users.EXPECT().FindByAnyCredential(gomock.Any(), "bob", "", "+79990000000").
		Return(nil, apperr.NotFound("Unable to find user"))
	fixture.users.EXPECT().Create(gomock.Any(), gomock.Any(), []int64{2}).Return(nil)

	body := `{"login":"bob","password":"pw123","name":"Bob","phoneNumber":"+79990000000","roles":[{"id":2}]}`
	recorder := serve(fixture.handler.SignUp, http.MethodPost, body, nil)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var envelope respond.SuccessEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, auth.SubjectSignUp, envelope.Subject)
	assert.Equal(t, auth.MsgSignedUp, envelope.Data)
}

func TestHandler_SignUp_Rejected(t *testing.T) {
	t.Run("duplicate", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		fixture.users.EXPECT().FindByAnyCredential(gomock.Any(), "bob", "", "+79990000000").
			Return(storedUser(t, "pw123"), nil)

		body := `{"login":"bob","password":"pw123","name":"Bob","phoneNumber":"+79990000000"}`
		recorder := serve(fixture.handler.SignUp, http.MethodPost, body, nil)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		envelope := decodeError(t, recorder)
		assert.Equal(t, apperr.KindAuthenticationFailed, envelope.Exception)
		assert.Equal(t, "User with prompted credential already exists", envelope.Message)
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing_login", `{"password":"pw123","name":"Bob","phoneNumber":"+79990000000"}`},
		{"long_name", `{"login":"bob","password":"pw123","name":"Bartholomew Bobbington","phoneNumber":"+79990000000"}`},
		{"bad_phone", `{"login":"bob","password":"pw123","name":"Bob","phoneNumber":"555-0100"}`},
		{"bad_email", `{"login":"bob","password":"pw123","name":"Bob","phoneNumber":"+79990000000","email":"bob"}`},
		{"bad_role", `{"login":"bob","password":"pw123","name":"Bob","phoneNumber":"+79990000000","roles":[{"id":0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fixture := newHandlerFixture(t)

			recorder := serve(fixture.handler.SignUp, http.MethodPost, tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.NotEmpty(t, decodeError(t, recorder).Details)
		})
	}
}

// ── Sign Out ─────────────────────────────────────────────────────────────────

func TestHandler_SignOut(t *testing.T) {
	fixture := newHandlerFixture(t)

	token, expiresAt, err := fixture.codec.Issue(7, time.Now())
	require.NoError(t, err)

	fixture.denylist.EXPECT().
		Add(gomock.Any(), constants.DenylistName, token, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ string, until time.Time) error {
			assert.True(t, until.Equal(expiresAt), "entry lives until the token expires")
			return nil
		})

	recorder := serve(fixture.handler.SignOut, http.MethodPost, "",
		&http.Cookie{Name: constants.AccessTokenCookieName, Value: token})

	require.Equal(t, http.StatusOK, recorder.Code)

	cookie := accessCookie(recorder)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Equal(t, -1, cookie.MaxAge)
}

func TestHandler_SignOut_Rejected(t *testing.T) {
	t.Run("missing_cookie", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		recorder := serve(fixture.handler.SignOut, http.MethodPost, "", nil)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, auth.MsgMissingToken, decodeError(t, recorder).Message)
	})

	t.Run("denylist_down", func(t *testing.T) {
		fixture := newHandlerFixture(t)
		token, _, err := fixture.codec.Issue(7, time.Now())
		require.NoError(t, err)

		fixture.denylist.EXPECT().Add(gomock.Any(), constants.DenylistName, token, gomock.Any()).
			DoAndReturn(func(context.Context, string, string, time.Time) error {
				return apperr.StoreUnavailable("Denylist", nil)
			})

		recorder := serve(fixture.handler.SignOut, http.MethodPost, "",
			&http.Cookie{Name: constants.AccessTokenCookieName, Value: token})

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Nil(t, accessCookie(recorder), "cookie is kept when revocation failed")
	})
}

// ── Current User ─────────────────────────────────────────────────────────────

func serveAs(handlerFunc http.HandlerFunc, principal *sec.Principal) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodGet, "/api/auth/current-user", nil)
	if principal != nil {
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), principal))
	}
	recorder := httptest.NewRecorder()
	handlerFunc(recorder, request)
	return recorder
}

func TestHandler_CurrentUser(t *testing.T) {
	fixture := newHandlerFixture(t)

	fixture.users.EXPECT().FindByID(gomock.Any(), int64(7)).Return(storedUser(t, "pw123"), nil)

	recorder := serveAs(fixture.handler.CurrentUser, &sec.Principal{ID: 7, Login: "bob", Authorities: []string{}})

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope respond.SuccessEnvelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, auth.SubjectCurrentUser, envelope.Subject)
}

func TestHandler_CurrentUser_Rejected(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		// A cookie alone is not enough without the filter having attached a principal
		request := httptest.NewRequest(http.MethodGet, "/api/auth/current-user", nil)
		token, _, err := fixture.codec.Issue(7, time.Now())
		require.NoError(t, err)
		request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: token})
		recorder := httptest.NewRecorder()
		fixture.handler.CurrentUser(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, apperr.KindAuthenticationFailed, decodeError(t, recorder).Exception)
	})

	t.Run("deleted_user", func(t *testing.T) {
		fixture := newHandlerFixture(t)

		fixture.users.EXPECT().FindByID(gomock.Any(), int64(9)).Return(nil, apperr.NotFound("Unable to find user"))

		recorder := serveAs(fixture.handler.CurrentUser, &sec.Principal{ID: 9, Authorities: []string{}})

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, auth.MsgUserNotFoundByID, decodeError(t, recorder).Message)
	})
}
