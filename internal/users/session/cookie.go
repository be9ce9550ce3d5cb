// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/taibuivan/snipbin/internal/platform/constants"
	"github.com/taibuivan/snipbin/internal/platform/sec"
)

// CookieOptions configures the session cookie.
type CookieOptions struct {
	// Name is the cookie name.
	Name string
	// Secure restricts the cookie to HTTPS. Enable behind TLS termination.
	Secure bool
	// TTL is both the cookie Max-Age and the store TTL.
	TTL time.Duration
}

// cookieJar reads and writes the signed session cookie.
type cookieJar struct {
	signer  *sec.CookieSigner
	options CookieOptions
}

// read returns the token carried by the request's session cookie.
//
// ok is false when the cookie is missing or fails verification; present
// reports whether a cookie was sent at all.
func (jar cookieJar) read(request *http.Request) (token string, present, ok bool) {
	cookie, err := request.Cookie(jar.options.Name)
	if err != nil {
		return "", false, false
	}

	token, err = jar.signer.Verify(cookie.Value)
	if err != nil {
		return "", true, false
	}

	return token, true, true
}

// write sets the session cookie for token.
func (jar cookieJar) write(writer http.ResponseWriter, token string) error {
	value, err := jar.signer.Sign(token, jar.options.TTL)
	if err != nil {
		return fmt.Errorf("session_cookie_sign_failed: %w", err)
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     jar.options.Name,
		Value:    value,
		Path:     constants.SessionCookiePath,
		MaxAge:   int(jar.options.TTL.Seconds()),
		HttpOnly: true,
		Secure:   jar.options.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// clear expires the session cookie in the browser.
func (jar cookieJar) clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     jar.options.Name,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   jar.options.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
