package middlewares

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"

	"github.com/sci-platform/riskform/httpx"
	"github.com/sci-platform/riskform/model"
)

// Admin gates a route to administrative roles (admin, TI, auditor).
func Admin(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), AdminOnly).Handler(next)
	}
}

// AdminOnly is the claims check behind Admin, split out so it can run after
// any authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r)
		if !ok || user.UserTypeID < model.RoleAdmin || user.UserTypeID > model.RoleAuditor {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Respondent gates a route to eligible respondents. Ineligible users get an
// explicit 403 instead of the indefinite empty state of the old UI.
func Respondent(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return chi.Chain(oauth.Authorize(secret, nil), RespondentOnly).Handler(next)
	}
}

// RespondentOnly is the eligibility check behind Respondent. When it fails,
// the wrapped handler is never reached: no form fetch is attempted for an
// ineligible user.
func RespondentOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r)
		if !ok || !user.IsRespondent() {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromContext rebuilds the current user from the token claims.
func UserFromContext(r *http.Request) (model.User, bool) {
	claims, ok := r.Context().Value(oauth.ClaimsContext).(map[string]string)
	if !ok {
		return model.User{}, false
	}

	id, err := strconv.Atoi(claims[httpx.ClaimUserID])
	if err != nil {
		return model.User{}, false
	}
	userType, err := strconv.Atoi(claims[httpx.ClaimUserType])
	if err != nil {
		return model.User{}, false
	}

	user := model.User{
		ID:         id,
		UserTypeID: userType,
		State:      model.UserState(claims[httpx.ClaimState]),
		ToRespond:  claims[httpx.ClaimToRespond],
	}
	if dep, err := strconv.Atoi(claims[httpx.ClaimDepartment]); err == nil {
		user.DepartmentID = &dep
	}
	return user, true
}
