package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/oauth"
	"golang.org/x/crypto/bcrypt"

	"github.com/sci-platform/riskform/config"
	"github.com/sci-platform/riskform/store"
)

// Claim keys carried in issued tokens. The middleware gates rebuild the
// current user from these.
const (
	ClaimUserID     = "usu_id"
	ClaimUserType   = "usut_id"
	ClaimState      = "usu_state"
	ClaimToRespond  = "usu_torespond"
	ClaimDepartment = "dep_id"
)

func NewBearerServer(st *store.Store, cfg config.Config) *oauth.BearerServer {
	return oauth.NewBearerServer(cfg.TokenSecret, cfg.TokenTTL, CredentialsVerifier(st), nil)
}

type credentialsVerifier struct {
	store *store.Store
}

func CredentialsVerifier(st *store.Store) oauth.CredentialsVerifier {
	return &credentialsVerifier{st}
}

func (cs *credentialsVerifier) ValidateUser(username string, password string, scope string, r *http.Request) error {
	_, hash, err := cs.store.Credentials(r.Context(), username)
	if err != nil {
		return err
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func (cs *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	return cs.store.StoreToken(context.Background(), credential, tokenID, refreshTokenID, time.Now().Add(8760*time.Hour))
}

func (cs *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	ok, err := cs.store.ConsumeToken(context.Background(), credential, tokenID, refreshTokenID)
	if err != nil || !ok {
		return errors.New("could not refresh")
	}
	return nil
}

// AddClaims loads the freshest user record at token issue time; the gates
// downstream rely on these values.
func (cs *credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	user, _, err := cs.store.Credentials(r.Context(), credential)
	if err != nil {
		return nil, err
	}

	claims := map[string]string{
		ClaimUserID:    strconv.Itoa(user.ID),
		ClaimUserType:  strconv.Itoa(user.UserTypeID),
		ClaimState:     string(user.State),
		ClaimToRespond: user.ToRespond,
	}
	if user.DepartmentID != nil {
		claims[ClaimDepartment] = strconv.Itoa(*user.DepartmentID)
	}
	return claims, nil
}

func (*credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}

func (*credentialsVerifier) ValidateClient(clientID string, clientSecret string, scope string, r *http.Request) error {
	return errors.New("not supported")
}
