package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	ConfirmationTTL = 24 * time.Hour
	AccessTTL       = 24 * time.Hour

	purposeConfirm = "confirm"
	purposeAccess  = "access"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenIssuer signs and checks the HMAC tokens used in confirmation links
// and for bearer auth.
type TokenIssuer struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

// NewTokenIssuer falls back to HS256 for an unknown algorithm name.
func NewTokenIssuer(secret, algorithm string) *TokenIssuer {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}
	return &TokenIssuer{secret: []byte(secret), method: method, now: time.Now}
}

// WithClock is used by tests to move time.
func (t *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	cp := *t
	cp.now = now
	return &cp
}

// ConfirmationToken embeds the email and a 24 hour expiry.
func (t *TokenIssuer) ConfirmationToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email":   email,
		"purpose": purposeConfirm,
		"exp":     t.now().Add(ConfirmationTTL).Unix(),
	}
	return jwt.NewWithClaims(t.method, claims).SignedString(t.secret)
}

// ParseConfirmationToken returns the email of a valid confirmation token.
func (t *TokenIssuer) ParseConfirmationToken(encoded string) (string, error) {
	claims, err := t.parse(encoded, purposeConfirm)
	if err != nil {
		return "", err
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidToken
	}
	return email, nil
}

// AccessToken is handed out by login and carries the user id.
func (t *TokenIssuer) AccessToken(userID uint64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"purpose": purposeAccess,
		"exp":     t.now().Add(AccessTTL).Unix(),
	}
	return jwt.NewWithClaims(t.method, claims).SignedString(t.secret)
}

func (t *TokenIssuer) ParseAccessToken(encoded string) (uint64, error) {
	claims, err := t.parse(encoded, purposeAccess)
	if err != nil {
		return 0, err
	}
	// JSON numbers come back as float64
	val, ok := claims["user_id"].(float64)
	if !ok || val <= 0 {
		return 0, ErrInvalidToken
	}
	return uint64(val), nil
}

func (t *TokenIssuer) parse(encoded, purpose string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(encoded, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{t.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != purpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
