package routes_test

import (
	"context"
	"net/http"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/oauth"
	"github.com/stretchr/testify/require"

	"github.com/sci-platform/riskform/app"
	"github.com/sci-platform/riskform/config"
	"github.com/sci-platform/riskform/database"
	"github.com/sci-platform/riskform/httpx"
	"github.com/sci-platform/riskform/model"
	"github.com/sci-platform/riskform/store"
)

// senderSpy records reminder mails instead of delivering them.
type senderSpy struct {
	to       []string
	subjects []string
}

func (s *senderSpy) Send(ctx context.Context, to, subject, htmlBody string) error {
	s.to = append(s.to, to)
	s.subjects = append(s.subjects, subject)
	return nil
}

func testApp(t *testing.T) (app.App, *senderSpy) {
	t.Helper()
	db, err := database.Open(config.Config{
		DBUrl: filepath.Join(t.TempDir(), "riskform_test.sqlite"),
	})
	require.NoError(t, err)

	st := store.New(db)
	t.Cleanup(func() { st.Close() })

	cfg := config.Config{TokenSecret: "test-secret-test-secret-32bytes!", TokenTTL: time.Minute}
	spy := &senderSpy{}
	return app.App{
		Store:        st,
		BearerServer: httpx.NewBearerServer(st, cfg),
		Config:       cfg,
		Notify:       spy,
	}, spy
}

func seedUser(t *testing.T, a app.App, name string, userType int, depID *int, toRespond string) model.User {
	t.Helper()
	u, err := a.CreateUser(context.Background(), model.User{
		Name:         name,
		Email:        name + "@sci.example",
		ToRespond:    toRespond,
		UserTypeID:   userType,
		DepartmentID: depID,
	}, "")
	require.NoError(t, err)
	return u
}

func seedQuestionnaire(t *testing.T, a app.App, depID int) (model.Form, model.Section, model.Question) {
	t.Helper()
	ctx := context.Background()

	form, err := a.CreateForm(ctx, depID, "Formulario de Control")
	require.NoError(t, err)
	section, err := a.CreateSection(ctx, form.ID, "Ambiente de Control")
	require.NoError(t, err)
	question, err := a.CreateQuestion(ctx, section.ID, 1, "¿Existe un código de ética?")
	require.NoError(t, err)

	return form, section, question
}

// asUser injects the token claims the middleware would have produced.
func asUser(r *http.Request, u model.User) *http.Request {
	claims := map[string]string{
		httpx.ClaimUserID:    strconv.Itoa(u.ID),
		httpx.ClaimUserType:  strconv.Itoa(u.UserTypeID),
		httpx.ClaimState:     string(u.State),
		httpx.ClaimToRespond: u.ToRespond,
	}
	if u.DepartmentID != nil {
		claims[httpx.ClaimDepartment] = strconv.Itoa(*u.DepartmentID)
	}
	return r.WithContext(context.WithValue(r.Context(), oauth.ClaimsContext, claims))
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func intPtr(i int) *int { return &i }
