package auth_test

import (
	"strings"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/foreman-dev/foreman/internal/auth"
	"github.com/foreman-dev/foreman/internal/types"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	c := qt.New(t)

	_, err := auth.NewIssuer("")
	c.Assert(err, qt.ErrorMatches, "JWT_SECRET environment variable is not set")
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	c := qt.New(t)

	issuer, err := auth.NewIssuer("test-secret")
	c.Assert(err, qt.IsNil)

	token, err := issuer.Issue(42, "john_doe", types.RoleEmployee)
	c.Assert(err, qt.IsNil)

	claims, err := issuer.Verify(token)
	c.Assert(err, qt.IsNil)
	c.Assert(claims.Identity(), qt.DeepEquals, types.AuthenticatedUser{
		ID:       42,
		Username: "john_doe",
		Role:     types.RoleEmployee,
	})
	c.Assert(claims.ExpiresAt.Sub(claims.IssuedAt.Time), qt.Equals, auth.TokenTTL)
}

func TestTokenValidityWindow(t *testing.T) {
	issuedAt := time.Date(2024, 1, 1, 8, 0, 0, 250*int(time.Millisecond), time.UTC)

	base, err := auth.NewIssuer("test-secret")
	if err != nil {
		t.Fatal(err)
	}
	token, err := base.WithClock(fixedClock(issuedAt)).Issue(1, "admin", types.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{name: "at issuance", at: issuedAt, valid: true},
		{name: "one hour later", at: issuedAt.Add(time.Hour), valid: true},
		{name: "one minute before expiry", at: issuedAt.Add(auth.TokenTTL - time.Minute), valid: true},
		{name: "exactly at expiry", at: issuedAt.Add(auth.TokenTTL), valid: true},
		{name: "one millisecond after expiry", at: issuedAt.Add(auth.TokenTTL + time.Millisecond), valid: false},
		{name: "900ms after expiry", at: issuedAt.Add(auth.TokenTTL + 900*time.Millisecond), valid: false},
		{name: "one second after expiry", at: issuedAt.Add(auth.TokenTTL + time.Second), valid: false},
		{name: "a day after expiry", at: issuedAt.Add(2 * auth.TokenTTL), valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			_, err := base.WithClock(fixedClock(tt.at)).Verify(token)
			if tt.valid {
				c.Assert(err, qt.IsNil)
			} else {
				c.Assert(err, qt.Equals, auth.ErrInvalidToken)
			}
		})
	}
}

func TestVerifyRejectsForgedTokens(t *testing.T) {
	issuer, err := auth.NewIssuer("test-secret")
	if err != nil {
		t.Fatal(err)
	}
	other, err := auth.NewIssuer("another-secret")
	if err != nil {
		t.Fatal(err)
	}

	valid, err := issuer.Issue(1, "admin", types.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	foreign, err := other.Issue(1, "admin", types.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":       1,
		"username": "admin",
		"role":     "Admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       1,
		"username": "admin",
		"role":     "Admin",
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       1,
		"username": "admin",
		"role":     "Superuser",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "signed with another secret", token: foreign},
		{name: "alg none", token: unsigned},
		{name: "tampered payload", token: tampered},
		{name: "missing exp", token: noExpiry},
		{name: "unknown role", token: badRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := qt.New(t)

			claims, err := issuer.Verify(tt.token)
			c.Assert(err, qt.Equals, auth.ErrInvalidToken)
			c.Assert(claims, qt.IsNil)
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	c := qt.New(t)

	auth.PasswordCost = bcrypt.MinCost
	c.Cleanup(func() { auth.PasswordCost = bcrypt.DefaultCost })

	hash, err := auth.HashPassword("employee123")
	c.Assert(err, qt.IsNil)
	c.Assert(hash, qt.Not(qt.Equals), "employee123")

	c.Assert(auth.CheckPassword(hash, "employee123"), qt.IsTrue)
	c.Assert(auth.CheckPassword(hash, "employee124"), qt.IsFalse)
	c.Assert(auth.CheckPassword("plaintext", "plaintext"), qt.IsFalse)

	again, err := auth.HashPassword("employee123")
	c.Assert(err, qt.IsNil)
	c.Assert(again, qt.Not(qt.Equals), hash)

	auth.BurnPasswordCheck("whatever")
}
