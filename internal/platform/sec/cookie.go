// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives: password hashing, random
// session tokens, and session cookie signing.
//
// # Architecture
//
// This package isolates security-sensitive code from the domain logic. The
// session and account packages receive its types through constructors.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCookie is returned when a session cookie fails signature or claim checks.
var ErrInvalidCookie = errors.New("sec: invalid session cookie")

// cookieClaims is the payload of a signed session cookie.
//
// The session token itself stays opaque: it is only carried, never interpreted.
type cookieClaims struct {
	jwt.RegisteredClaims

	Token string `json:"sid"`
}

// CookieSigner wraps opaque session tokens in an HS256 signature keyed by the
// session secret, so that the server rejects forged or tampered cookies before
// touching the session store.
type CookieSigner struct {
	secret []byte
	issuer string
}

// NewCookieSigner creates a [CookieSigner].
func NewCookieSigner(secret, issuer string) (*CookieSigner, error) {
	if secret == "" {
		return nil, errors.New("sec: session secret must not be empty")
	}
	return &CookieSigner{secret: []byte(secret), issuer: issuer}, nil
}

// Sign returns the cookie value carrying token, valid for timeToLive.
func (signer *CookieSigner) Sign(token string, timeToLive time.Duration) (string, error) {
	currentTime := time.Now()
	claims := cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    signer.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Token: token,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signer.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign session cookie: %w", err)
	}

	return signed, nil
}

// Verify checks the signature, issuer and expiry of a cookie value and returns
// the session token it carries.
func (signer *CookieSigner) Verify(value string) (string, error) {
	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(token *jwt.Token) (interface{}, error) {
		return signer.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(signer.issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil || !token.Valid || claims.Token == "" {
		return "", ErrInvalidCookie
	}

	return claims.Token, nil
}
