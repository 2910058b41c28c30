// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidAuthorizationHeader is returned by [ParseBearerToken].
var ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")

// JWTSigner signs and verifies tokens with one algorithm and one issuer.
// HS256 uses a shared secret; RS256 signs with a private key and verifies
// with the matching public key.
type JWTSigner struct {
	method    jwt.SigningMethod
	signKey   any
	verifyKey any
	issuer    string
}

// NewHMACSigner returns an HS256 signer.
func NewHMACSigner(secret, issuer string) (*JWTSigner, error) {
	if secret == "" || issuer == "" {
		return nil, errors.New("invalid params for HMAC JWT signer")
	}

	return &JWTSigner{
		method:    jwt.SigningMethodHS256,
		signKey:   []byte(secret),
		verifyKey: []byte(secret),
		issuer:    issuer,
	}, nil
}

// NewRSASigner returns an RS256 signer from PEM encoded keys.
func NewRSASigner(privatePEM, publicPEM []byte, issuer string) (*JWTSigner, error) {
	if issuer == "" {
		return nil, errors.New("invalid params for RSA JWT signer")
	}

	private, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("error parsing RSA private key: %w", err)
	}
	public, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("error parsing RSA public key: %w", err)
	}

	return &JWTSigner{
		method:    jwt.SigningMethodRS256,
		signKey:   private,
		verifyKey: public,
		issuer:    issuer,
	}, nil
}

// NewRSASignerFromFiles reads both PEM files and calls [NewRSASigner].
func NewRSASignerFromFiles(privatePath, publicPath, issuer string) (*JWTSigner, error) {
	privatePEM, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("error reading RSA private key: %w", err)
	}
	publicPEM, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("error reading RSA public key: %w", err)
	}

	return NewRSASigner(privatePEM, publicPEM, issuer)
}

// Issuer returns the iss value stamped on and required from every token.
func (s *JWTSigner) Issuer() string {
	return s.issuer
}

// Algorithm returns the JWS algorithm name.
func (s *JWTSigner) Algorithm() string {
	return s.method.Alg()
}

// Sign returns the compact serialization of claims.
func (s *JWTSigner) Sign(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}
	return signed, nil
}

// Parse verifies tokenString and decodes it into claims. The signature,
// algorithm, issuer and expiry are all checked.
func (s *JWTSigner) Parse(tokenString string, claims jwt.Claims) error {
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.verifyKey, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return fmt.Errorf("error occurred validating and parsing token: %w", err)
	}
	return nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	return parts[1], nil
}
