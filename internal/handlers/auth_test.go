package handlers_test

import (
	"net/http"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/foreman-dev/foreman/internal/testutil"
	"github.com/foreman-dev/foreman/internal/types"
)

type errorBody struct {
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

type authBody struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    struct {
		ID       uint       `json:"id"`
		Username string     `json:"username"`
		Email    string     `json:"email"`
		Role     types.Role `json:"role"`
		FullName string     `json:"full_name"`
		Phone    *string    `json:"phone"`
	} `json:"user"`
}

func fields(body errorBody) []string {
	out := make([]string, 0, len(body.Errors))
	for _, e := range body.Errors {
		out = append(out, e.Field)
	}
	return out
}

func TestRegisterAndLogin(t *testing.T) {
	c := qt.New(t)
	env := testutil.NewEnv(c)

	rec := env.Do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username":  "  mason  ",
		"email":     "mason@example.com",
		"password":  "secret1",
		"role":      "Employee",
		"full_name": "Mason Stone",
		"phone":     "555-0199",
	})
	c.Assert(rec.Code, qt.Equals, http.StatusCreated, qt.Commentf("body: %s", rec.Body))

	registered := testutil.Decode[authBody](c, rec)
	c.Assert(registered.Message, qt.Equals, "User registered successfully")
	c.Assert(registered.User.Username, qt.Equals, "mason")
	c.Assert(registered.User.Role, qt.Equals, types.RoleEmployee)

	claims, err := env.Issuer.Verify(registered.Token)
	c.Assert(err, qt.IsNil)
	c.Assert(claims.UserID, qt.Equals, registered.User.ID)
	c.Assert(claims.Role, qt.Equals, types.RoleEmployee)

	rec = env.Do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "mason",
		"password": "secret1",
	})
	c.Assert(rec.Code, qt.Equals, http.StatusOK)

	loggedIn := testutil.Decode[authBody](c, rec)
	c.Assert(loggedIn.Message, qt.Equals, "Login successful")
	c.Assert(loggedIn.User.ID, qt.Equals, registered.User.ID)
	c.Assert(*loggedIn.User.Phone, qt.Equals, "555-0199")
	c.Assert(rec.Body.String(), qt.Not(qt.Contains), "password")
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name   string
		body   map[string]any
		fields []string
	}{
		{
			name: "short username after trim",
			body: map[string]any{
				"username": " ab ", "email": "ab@example.com", "password": "secret1",
				"role": "Employee", "full_name": "AB",
			},
			fields: []string{"username"},
		},
		{
			name: "bad email and short password",
			body: map[string]any{
				"username": "abc", "email": "not-an-email", "password": "12345",
				"role": "Employee", "full_name": "ABC",
			},
			fields: []string{"email", "password"},
		},
		{
			name: "unknown role",
			body: map[string]any{
				"username": "abc", "email": "abc@example.com", "password": "secret1",
				"role": "Superuser", "full_name": "ABC",
			},
			fields: []string{"role"},
		},
		{
			name: "blank full name",
			body: map[string]any{
				"username": "abc", "email": "abc@example.com", "password": "secret1",
				"role": "Admin", "full_name": "   ",
			},
			fields: []string{"full_name"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)
			env := testutil.NewEnv(c)

			rec := env.Do(http.MethodPost, "/api/auth/register", "", tt.body)
			c.Assert(rec.Code, qt.Equals, http.StatusBadRequest)

			body := testutil.Decode[errorBody](c, rec)
			c.Assert(body.Error, qt.Equals, "Validation failed")
			c.Assert(fields(body), qt.DeepEquals, tt.fields)

			var count int64
			c.Assert(env.DB.Table("users").Count(&count).Error, qt.IsNil)
			c.Assert(count, qt.Equals, int64(0))
		})
	}
}

func TestRegisterRejectsRoleMessage(t *testing.T) {
	c := qt.New(t)
	env := testutil.NewEnv(c)

	rec := env.Do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "abc", "email": "abc@example.com", "password": "secret1",
		"role": "root", "full_name": "ABC",
	})
	body := testutil.Decode[errorBody](c, rec)
	c.Assert(body.Errors, qt.HasLen, 1)
	c.Assert(body.Errors[0].Message, qt.Equals, "role must be one of: Admin, Employee")
}

func TestRegisterDuplicateIsConflict(t *testing.T) {
	c := qt.New(t)
	env := testutil.NewEnv(c)
	env.CreateUser("taken", types.RoleEmployee)

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{name: "same username", username: "taken", email: "fresh@example.com"},
		{name: "same email", username: "fresh", email: "taken@example.com"},
	}

	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			rec := env.Do(http.MethodPost, "/api/auth/register", "", map[string]any{
				"username": tt.username, "email": tt.email, "password": "secret1",
				"role": "Employee", "full_name": "Fresh",
			})
			c.Assert(rec.Code, qt.Equals, http.StatusConflict)
			c.Assert(testutil.Decode[errorBody](c, rec).Error, qt.Equals, "Username or email already exists")
		})
	}

	var count int64
	c.Assert(env.DB.Table("users").Count(&count).Error, qt.IsNil)
	c.Assert(count, qt.Equals, int64(1))
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	c := qt.New(t)
	env := testutil.NewEnv(c)
	env.CreateUser("john_doe", types.RoleEmployee)

	unknown := env.Do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "nobody", "password": testutil.Password,
	})
	wrong := env.Do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "john_doe", "password": "wrong-password",
	})

	c.Assert(unknown.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(wrong.Code, qt.Equals, http.StatusUnauthorized)
	c.Assert(unknown.Body.String(), qt.Equals, wrong.Body.String())
	c.Assert(testutil.Decode[errorBody](c, wrong).Error, qt.Equals, "Invalid credentials")

	blank := env.Do(http.MethodPost, "/api/auth/login", "", map[string]any{"username": "  ", "password": ""})
	c.Assert(blank.Code, qt.Equals, http.StatusBadRequest)

	malformed := env.Do(http.MethodPost, "/api/auth/login", "", "{not json")
	c.Assert(malformed.Code, qt.Equals, http.StatusBadRequest)
	c.Assert(testutil.Decode[errorBody](c, malformed).Error, qt.Equals, "Invalid request body")
}

func TestAuthenticationErrors(t *testing.T) {
	c := qt.New(t)
	env := testutil.NewEnv(c)
	user := env.CreateUser("john_doe", types.RoleEmployee)

	expired, err := env.Issuer.
		WithClock(func() time.Time { return time.Now().Add(-48 * time.Hour) }).
		Issue(user.ID, user.Username, user.Role)
	c.Assert(err, qt.IsNil)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{name: "no header", header: "", message: "Access denied. No token provided."},
		{name: "scheme only", header: "Bearer", message: "Access denied. No token provided."},
		{name: "wrong scheme", header: "Basic abc", message: "Access denied. No token provided."},
		{name: "garbage token", header: "Bearer not-a-jwt", message: "Invalid or expired token"},
		{name: "expired token", header: "Bearer " + expired, message: "Invalid or expired token"},
	}

	for _, tt := range tests {
		c.Run(tt.name, func(c *qt.C) {
			req, err := http.NewRequest(http.MethodGet, "/api/projects", nil)
			c.Assert(err, qt.IsNil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := serve(env, req)
			c.Assert(rec.Code, qt.Equals, http.StatusUnauthorized)
			c.Assert(testutil.Decode[errorBody](c, rec).Error, qt.Equals, tt.message)
		})
	}

	rec := env.Do(http.MethodGet, "/api/projects", env.Token(user), nil)
	c.Assert(rec.Code, qt.Equals, http.StatusOK)
	c.Assert(rec.Header().Get(types.RequestIDHeader), qt.Not(qt.Equals), "")
}
