package routes_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sci-platform/riskform/model"
	"github.com/sci-platform/riskform/routes"
)

func TestListUsersByTypeInvalidParams(t *testing.T) {
	a, _ := testApp(t)
	handler := routes.ListUsersByType(a)

	for _, query := range []string{"", "userTypeId=", "userTypeId=0", "userTypeId=-3", "userTypeId=abc"} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/api/adminTI?"+query, nil)
		handler(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)

		body := map[string]string{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "Invalid parameters", body["error"], "query %q", query)
	}
}

func TestListUsersByTypeFiltersByRole(t *testing.T) {
	a, _ := testApp(t)
	seedUser(t, a, "resp1", model.RoleRespondent, intPtr(1), "y")
	seedUser(t, a, "resp2", model.RoleRespondent, intPtr(2), "y")
	seedUser(t, a, "ti", model.RoleTI, nil, "n")

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/adminTI?userTypeId=4", nil)
	routes.ListUsersByType(a)(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	users := []model.User{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&users))
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Equal(t, model.RoleRespondent, u.UserTypeID)
	}
}

func TestUpdateUserStateInvalidBody(t *testing.T) {
	a, _ := testApp(t)
	handler := routes.UpdateUserState(a)

	for _, body := range []string{"", "{}", `{"userId":1}`, `{"state":"I"}`, "not json"} {
		w := httptest.NewRecorder()
		r := httptest.NewRequest("PUT", "/api/adminTI", strings.NewReader(body))
		handler(w, r)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
	}
}

func TestUpdateUserStateUnknownUser(t *testing.T) {
	a, _ := testApp(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("PUT", "/api/adminTI", strings.NewReader(`{"userId":9999,"state":"I"}`))
	routes.UpdateUserState(a)(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUserStateRejectsUnknownState(t *testing.T) {
	a, _ := testApp(t)
	user := seedUser(t, a, "resp", model.RoleRespondent, intPtr(1), "y")

	w := httptest.NewRecorder()
	r := httptest.NewRequest("PUT", "/api/adminTI", strings.NewReader(`{"userId":`+itoa(user.ID)+`,"state":"Z"}`))
	routes.UpdateUserState(a)(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateUserStateDeactivation(t *testing.T) {
	a, spy := testApp(t)
	user := seedUser(t, a, "resp", model.RoleRespondent, intPtr(1), "y")

	w := httptest.NewRecorder()
	r := httptest.NewRequest("PUT", "/api/adminTI", strings.NewReader(`{"userId":`+itoa(user.ID)+`,"state":"I"}`))
	routes.UpdateUserState(a)(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	updated := model.User{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.Equal(t, model.UserInactive, updated.State)

	// deactivation sends the reminder mail
	require.Len(t, spy.to, 1)
	assert.Equal(t, user.Email, spy.to[0])

	// the user is no longer listed as active
	w = httptest.NewRecorder()
	r = httptest.NewRequest("GET", "/api/adminTI?userTypeId=4", nil)
	routes.ListUsersByType(a)(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	users := []model.User{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&users))
	for _, u := range users {
		if u.ID == user.ID {
			assert.Equal(t, model.UserInactive, u.State)
		}
	}
}

func TestUpdateUserStateActivationSendsNoMail(t *testing.T) {
	a, spy := testApp(t)
	user := seedUser(t, a, "resp", model.RoleRespondent, intPtr(1), "y")

	w := httptest.NewRecorder()
	r := httptest.NewRequest("PUT", "/api/adminTI", strings.NewReader(`{"userId":`+itoa(user.ID)+`,"state":"A"}`))
	routes.UpdateUserState(a)(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, spy.to)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
