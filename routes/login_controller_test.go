package routes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sci-platform/riskform/app"
	"github.com/sci-platform/riskform/model"
	"github.com/sci-platform/riskform/routes"
)

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func seedCredentials(t *testing.T, a app.App, email, password string) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u, err := a.CreateUser(context.Background(), model.User{
		Name:         "Ana",
		Email:        email,
		ToRespond:    "y",
		UserTypeID:   model.RoleRespondent,
		DepartmentID: intPtr(1),
	}, string(hash))
	require.NoError(t, err)
	return u
}

func login(t *testing.T, a app.App, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/api/login", nil)
	r.SetBasicAuth(email, password)
	routes.Login(a)(w, r)
	return w
}

func TestLoginIssuesTokens(t *testing.T) {
	a, _ := testApp(t)
	seedCredentials(t, a, "ana@sci.example", "secreto")

	w := login(t, a, "ana@sci.example", "secreto")
	require.Equal(t, http.StatusOK, w.Code)

	tokens := tokenResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&tokens))
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a, _ := testApp(t)
	seedCredentials(t, a, "ana@sci.example", "secreto")

	// no basic auth at all
	w := httptest.NewRecorder()
	routes.Login(a)(w, httptest.NewRequest("POST", "/api/login", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = login(t, a, "ana@sci.example", "equivocada")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = login(t, a, "nadie@sci.example", "secreto")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRotatesTokens(t *testing.T) {
	a, _ := testApp(t)
	seedCredentials(t, a, "ana@sci.example", "secreto")

	w := login(t, a, "ana@sci.example", "secreto")
	require.Equal(t, http.StatusOK, w.Code)
	issued := tokenResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&issued))

	refresh := func(token string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/api/refresh", nil)
		r.Header.Set("Authorization", "refresh "+token)
		routes.Refresh(a)(w, r)
		return w
	}

	// missing or malformed authorization header
	w = httptest.NewRecorder()
	routes.Refresh(a)(w, httptest.NewRequest("POST", "/api/refresh", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = refresh(issued.RefreshToken)
	require.Equal(t, http.StatusOK, w.Code)

	rotated := tokenResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rotated))
	assert.NotEmpty(t, rotated.AccessToken)
	assert.NotEqual(t, issued.RefreshToken, rotated.RefreshToken)

	// a refresh token is single use
	w = refresh(issued.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
