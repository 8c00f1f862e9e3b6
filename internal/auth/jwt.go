// Package auth verifies and issues the HS256 bearer tokens that identify API callers.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var (
	ErrMissingToken = errors.New("authorization token is missing")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Verifier turns a raw bearer token into the caller's user id.
type Verifier interface {
	Verify(token string) (userID string, err error)
}

// claims is the token payload. uid wins over sub when both are set.
type claims struct {
	UserID string `json:"uid,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier validates HS256 tokens signed with a shared secret.
type JWTVerifier struct {
	secret []byte
	issuer string
}

// NewJWTVerifier creates a verifier. An empty issuer accepts any iss claim.
func NewJWTVerifier(secret, issuer string) *JWTVerifier {
	if secret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}
}

// Verify implements Verifier.
func (v *JWTVerifier) Verify(tokenString string) (string, error) {
	if tokenString == "" {
		return "", ErrMissingToken
	}

	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", ErrInvalidToken
	}
	if c.ExpiresAt == nil {
		return "", fmt.Errorf("%w: missing exp claim", ErrInvalidToken)
	}
	if v.issuer != "" && !c.VerifyIssuer(v.issuer, true) {
		return "", fmt.Errorf("%w: unexpected issuer %q", ErrInvalidToken, c.Issuer)
	}

	userID := c.UserID
	if userID == "" {
		userID = c.Subject
	}
	if userID == "" {
		return "", fmt.Errorf("%w: missing user id claim", ErrInvalidToken)
	}
	return userID, nil
}

// Signer issues tokens accepted by a JWTVerifier with the same secret and issuer.
type Signer struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// NewSigner creates a signer. A non-positive expiration defaults to one hour.
func NewSigner(secret, issuer string, expiration time.Duration) *Signer {
	if secret == "" {
		panic("JWT secret cannot be empty")
	}
	if expiration <= 0 {
		expiration = time.Hour
	}
	return &Signer{secret: []byte(secret), issuer: issuer, expiration: expiration, now: time.Now}
}

// IssueToken signs a token for userID.
func (s *Signer) IssueToken(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("user id is required")
	}
	now := s.now()
	c := &claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}
