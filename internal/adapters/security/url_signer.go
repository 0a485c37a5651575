package security

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTURLSigner mints short-lived HS256-signed asset URLs. The grant token
// rides as a query parameter; the asset host verifies signature and expiry
// before serving bytes, so the URL is useless after its TTL.
type JWTURLSigner struct {
	secret  []byte
	baseURL string
}

// NewJWTURLSigner builds a signer for asset grants under baseURL.
func NewJWTURLSigner(secret, baseURL string) (*JWTURLSigner, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("asset signing secret is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parse asset base url: %w", err)
	}
	return &JWTURLSigner{
		secret:  []byte(secret),
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

type assetGrantClaims struct {
	Asset string `json:"asset"`
	jwt.RegisteredClaims
}

func (s *JWTURLSigner) SignedURL(assetPath string, expiresAt time.Time) (string, error) {
	assetPath = "/" + strings.TrimLeft(assetPath, "/")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, assetGrantClaims{
		Asset: assetPath,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().UTC()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign asset grant: %w", err)
	}
	return s.baseURL + assetPath + "?token=" + url.QueryEscape(signed), nil
}

// VerifySignedURL checks the grant on an incoming asset request and returns
// the asset path it covers.
func (s *JWTURLSigner) VerifySignedURL(tokenString string) (string, error) {
	var claims assetGrantClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", fmt.Errorf("verify asset grant: %w", err)
	}
	return claims.Asset, nil
}
