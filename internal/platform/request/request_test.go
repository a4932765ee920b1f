// Copyright (c) 2026 Pizza Noir. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pizzanoir/internal/platform/apperr"
	"github.com/taibuivan/pizzanoir/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/pizzanoir/internal/platform/request"
	"github.com/taibuivan/pizzanoir/internal/platform/sec"
)

/*
TestRequiredPrincipal returns the attached principal and rejects anonymous
requests with AuthenticationFailed.
*/
func TestRequiredPrincipal(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)

		assert.Nil(t, requestutil.Principal(request))

		_, err := requestutil.RequiredPrincipal(request)
		require.Error(t, err)
		assert.True(t, apperr.IsKind(err, apperr.KindAuthenticationFailed))
	})

	t.Run("authenticated", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request = request.WithContext(ctxutil.WithPrincipal(request.Context(), &sec.Principal{ID: 7, Authorities: []string{}}))

		principal, err := requestutil.RequiredPrincipal(request)
		require.NoError(t, err)
		assert.Equal(t, int64(7), principal.ID)
	})
}
