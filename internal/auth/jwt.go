package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenCodec signs and verifies bearer tokens with a process-wide HMAC key.
type TokenCodec struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec pins the codec to one HMAC algorithm. A zero ttl issues
// tokens without an exp claim.
func NewTokenCodec(secret, algorithm string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}

	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)

	if !ok {
		return nil, errors.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &TokenCodec{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (c *TokenCodec) Sign(subject string) (string, error) {
	now := c.now()

	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
	}

	if c.ttl > 0 {
		claims["exp"] = now.Add(c.ttl).Unix()
	}

	token := jwt.NewWithClaims(c.method, claims)

	signed, err := token.SignedString(c.secret)

	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Verify checks signature, algorithm and expiry and returns the subject.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithValidMethods([]string{c.method.Alg()}), jwt.WithTimeFunc(c.now))

	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	subject, err := token.Claims.GetSubject()

	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}

	return subject, nil
}
