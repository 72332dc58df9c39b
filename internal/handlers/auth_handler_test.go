package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medrecords-backend/internal/models"
	"medrecords-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCipherServer fakes the encryption service by prefixing "enc:".
func newCipherServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in["key"] != "k" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		switch r.URL.Path {
		case "/encrypt":
			json.NewEncoder(w).Encode(map[string]string{"ciphertext": "enc:" + in["plaintext"]})
		case "/decrypt":
			json.NewEncoder(w).Encode(map[string]string{"plaintext": strings.TrimPrefix(in["ciphertext"], "enc:")})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func TestLoginAndProfile(t *testing.T) {
	e := newTestEnv(t)
	id := e.createUser("maria@example.com")

	rec := e.do(http.MethodPost, "/user/login", map[string]string{"email": "maria@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	login := decode[loginResponse](t, rec)
	assert.Equal(t, "bearer", login.TokenType)
	require.NotEmpty(t, login.AccessToken)

	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	rec = httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := decode[models.UserResponse](t, rec)
	assert.Equal(t, id, me.ID)
	assert.Equal(t, "maria@example.com", me.Email)
}

func TestLogin_WrongCredentials(t *testing.T) {
	e := newTestEnv(t)
	e.createUser("maria@example.com")

	rec := e.do(http.MethodPost, "/user/login", map[string]string{"email": "maria@example.com", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", detail(t, rec))

	rec = e.do(http.MethodPost, "/user/login", map[string]string{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Incorrect email or password", detail(t, rec))
}

func TestLogin_RemoteCipher(t *testing.T) {
	e := newTestEnv(t)
	e.h.Hasher = utils.NewRemoteCipher(newCipherServer(t).URL, "k", 0)
	e.createUser("maria@example.com")

	rec := e.do(http.MethodPost, "/user/login", map[string]string{"email": "maria@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(http.MethodPost, "/user/login", map[string]string{"email": "maria@example.com", "password": "secret124"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfile_RequiresToken(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/user/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// a confirmation token is not an access token
	token, err := e.h.Tokens.ConfirmationToken("maria@example.com")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
