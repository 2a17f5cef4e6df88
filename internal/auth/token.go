// Package auth issues and parses bearer tokens and hashes passwords.
package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenCodec turns a user id into a bearer token and back.
type TokenCodec interface {
	Issue(userID int64) (string, error)
	Parse(token string) (int64, error)
}

// Base64Codec produces base64("<userId>:<epochMillis>"). The token carries no
// signature and never expires.
type Base64Codec struct {
	Now func() time.Time
}

func NewBase64Codec() *Base64Codec {
	return &Base64Codec{Now: time.Now}
}

func (c *Base64Codec) Issue(userID int64) (string, error) {
	raw := fmt.Sprintf("%d:%d", userID, c.Now().UnixMilli())
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

func (c *Base64Codec) Parse(token string) (int64, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0, ErrInvalidToken
	}
	idPart, _, _ := strings.Cut(string(decoded), ":")
	userID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return userID, nil
}

// Claims represents the JWT claims for our application
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTCodec signs the user id with HS256. A zero TTL issues tokens without an
// expiry, matching the base64 format.
type JWTCodec struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	return &JWTCodec{Secret: []byte(secret), TTL: ttl, Now: time.Now}
}

func (c *JWTCodec) Issue(userID int64) (string, error) {
	now := c.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
			Issuer:   "activity-hub",
			Subject:  strconv.FormatInt(userID, 10),
		},
	}
	if c.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.TTL))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.Secret)
}

func (c *JWTCodec) Parse(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return c.Secret, nil
		},
		jwt.WithTimeFunc(c.Now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
