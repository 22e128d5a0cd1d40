// Package testutil builds a migrated SQLite store and a full router for
// package tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-extras/go-kit/must"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/foreman-dev/foreman/db"
	"github.com/foreman-dev/foreman/internal/auth"
	"github.com/foreman-dev/foreman/internal/models"
	"github.com/foreman-dev/foreman/internal/router"
	"github.com/foreman-dev/foreman/internal/types"
)

const (
	Secret   = "test-secret"
	Password = "password123"
)

func init() {
	gin.SetMode(gin.TestMode)
	auth.PasswordCost = bcrypt.MinCost
}

// DiscardLogger drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewDB opens a fresh migrated SQLite database under t.TempDir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	database, err := db.Open(db.Config{
		Driver: db.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}

	t.Cleanup(func() { _ = db.Close(database) })

	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate database: %v", err)
	}

	return database
}

type Env struct {
	T      testing.TB
	DB     *gorm.DB
	Issuer *auth.Issuer
	Engine *gin.Engine
}

func NewEnv(t testing.TB) *Env {
	t.Helper()

	issuer := must.Must(auth.NewIssuer(Secret))
	database := NewDB(t)

	return &Env{
		T:      t,
		DB:     database,
		Issuer: issuer,
		Engine: router.NewRouter(router.Options{
			DB:     database,
			Issuer: issuer,
			Logger: DiscardLogger(),
		}),
	}
}

// CreateUser inserts a user whose password is Password.
func (e *Env) CreateUser(username string, role types.Role) *models.User {
	e.T.Helper()

	hash, err := auth.HashPassword(Password)
	if err != nil {
		e.T.Fatal(err)
	}

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		FullName:     username,
	}

	if err := e.DB.Create(user).Error; err != nil {
		e.T.Fatalf("create user %s: %v", username, err)
	}

	return user
}

func (e *Env) Token(user *models.User) string {
	e.T.Helper()

	token, err := e.Issuer.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		e.T.Fatal(err)
	}

	return token
}

// Do sends a request through the router. body is JSON encoded unless it is
// a string, which is sent as is. An empty token sends no Authorization
// header.
func (e *Env) Do(method, path, token string, body any) *httptest.ResponseRecorder {
	e.T.Helper()

	var reader io.Reader

	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			e.T.Fatal(err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)

	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.Engine.ServeHTTP(rec, req)

	return rec
}

// Decode unmarshals the recorded body into a value of type T.
func Decode[T any](t testing.TB, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T

	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}

	return v
}
