package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/foreman-dev/foreman/internal/types"
)

// TokenTTL is the fixed validity window of an issued token.
const TokenTTL = 24 * time.Hour

// ErrInvalidToken covers every verification failure: malformed, expired,
// wrong algorithm or bad signature. Callers cannot tell them apart.
var ErrInvalidToken = errors.New("invalid or expired token")

// iat and exp are encoded with millisecond precision so a token expires at
// its issue instant plus TokenTTL, not at a whole-second boundary.
func init() {
	jwt.TimePrecision = time.Millisecond
}

type Claims struct {
	UserID   uint       `json:"id"`
	Username string     `json:"username"`
	Role     types.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens with a single shared secret.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret string) (*Issuer, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	return &Issuer{secret: []byte(secret), now: time.Now}, nil
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	tmp := *i
	tmp.now = now
	return &tmp
}

func (i *Issuer) Issue(userID uint, username string, role types.Role) (string, error) {
	issuedAt := i.now()

	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	// Expiry is checked below so that a token is still valid at exactly exp.
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ExpiresAt == nil || i.now().After(claims.ExpiresAt.Time) {
		return nil, ErrInvalidToken
	}

	if claims.UserID == 0 || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Identity extracts the request identity from verified claims.
func (c *Claims) Identity() types.AuthenticatedUser {
	return types.AuthenticatedUser{
		ID:       c.UserID,
		Username: c.Username,
		Role:     c.Role,
	}
}
