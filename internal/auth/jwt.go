// Package auth provides session token issuance and validation.
//
// Login issues a signed JWT carrying the account identity; the token
// travels in an HttpOnly cookie (or an Authorization bearer header) and the
// middleware validates it on protected routes. The token is the explicit
// session context: every owner-scoped operation derives its account from it
// rather than from ambient state.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/xid"
)

const issuer = "diary-server"

// Session identifies the authenticated account for the duration of a
// request. Both fields come from the validated token, so protected handlers
// never re-read the user table just to know who is calling.
type Session struct {
	AccountID int64
	Username  string
}

// TokenService signs and verifies session tokens with an HMAC secret. The
// same secret must be used for both operations.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. The secret should be at least 32
// bytes of random data in production (e.g. `openssl rand -hex 32`).
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: session secret must be at least 16 characters")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}, nil
}

// claims embeds jwt.RegisteredClaims. The account id goes into the Subject
// claim, the username into a custom claim, and each token gets a unique xid
// as its token id.
type claims struct {
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// Generate creates and signs a session token for the given account.
func (s *TokenService) Generate(accountID int64, username string) (string, error) {
	now := time.Now()

	c := claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(accountID, 10),
			ID:        xid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the session it
// encodes. Rejects tampered, expired, foreign-issuer, and non-HS256 tokens.
func (s *TokenService) Validate(tokenStr string) (Session, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Session{}, errors.New("auth: token expired")
		}
		return Session{}, fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return Session{}, errors.New("auth: invalid token claims")
	}

	accountID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || accountID <= 0 || c.Username == "" {
		return Session{}, errors.New("auth: token has no usable identity")
	}

	return Session{AccountID: accountID, Username: c.Username}, nil
}
