package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"medrecords-backend/internal/config"
	"medrecords-backend/internal/handlers"
	"medrecords-backend/internal/models"
	"medrecords-backend/internal/routes"
	"medrecords-backend/internal/storage"
	"medrecords-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var _ utils.Mailer = (*mockMailer)(nil)
var _ storage.BlobStore = (*mockBlobStore)(nil)

type sentMail struct {
	To, Subject, Body string
}

type mockMailer struct {
	SendFunc func(ctx context.Context, to, subject, body string) error

	mu   sync.Mutex
	Sent []sentMail
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		if err := m.SendFunc(ctx, to, subject, body); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentMail{to, subject, body})
	return nil
}

type mockBlobStore struct {
	PutFunc func(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	Keys []string
	Data [][]byte
}

func (m *mockBlobStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.Keys = append(m.Keys, key)
	m.Data = append(m.Data, b)
	if m.PutFunc != nil {
		return m.PutFunc(ctx, key, contentType, bytes.NewReader(b))
	}
	return "https://files.test/" + key, nil
}

type testEnv struct {
	t      *testing.T
	router *gin.Engine
	h      *handlers.Handler
	mailer *mockMailer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dialector, err := config.Dialector("file:" + filepath.Join(t.TempDir(), "medrecords.db"))
	require.NoError(t, err)
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, config.Migrate(db))

	mailer := &mockMailer{}
	h := &handlers.Handler{
		DB:      db,
		Hasher:  utils.BcryptHasher{},
		Tokens:  utils.NewTokenIssuer("test-secret", "HS256"),
		Mailer:  mailer,
		BaseURL: "http://api.test",
		Log:     zerolog.Nop(),
	}

	r := gin.New()
	routes.SetupRoutes(r, h, routes.Options{Log: zerolog.Nop(), CORSOrigins: []string{"*"}})
	return &testEnv{t: t, router: r, h: h, mailer: mailer}
}

func (e *testEnv) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(e.t, err)
			reader = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) upload(path, field, filename string, content []byte) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(e.t, err)
		_, err = part.Write(content)
		require.NoError(e.t, err)
	}
	require.NoError(e.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func detail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[utils.ErrorResponse](t, rec).Detail
}

func userBody(email string) map[string]interface{} {
	return map[string]interface{}{
		"full_name":      "Maria Silva",
		"email":          email,
		"password":       "secret123",
		"birth_date":     "1990-04-12",
		"biological_sex": "F",
	}
}

func (e *testEnv) createUser(email string) uint64 {
	e.t.Helper()
	rec := e.do(http.MethodPost, "/user/users", userBody(email))
	require.Equal(e.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.UserResponse](e.t, rec).ID
}

func (e *testEnv) count(model interface{}, query string, args ...interface{}) int64 {
	e.t.Helper()
	var n int64
	require.NoError(e.t, e.h.DB.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func pathf(format string, args ...interface{}) string {
	return fmt.Sprintf(format, args...)
}
