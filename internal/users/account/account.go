// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements the credential store and the authenticator.

It owns everything that touches a password: registration (validation and
bcrypt hashing) and login verification. Callers only ever receive an
[Account] whose hash is excluded from serialization, and a session
[session.Identity] derived from it.

# Architecture

  - Service: Register and Authenticate use cases.
  - Repository: Persistence contract, with duplicate-key translation done
    once inside each implementation.
  - Handler: Register, login and logout pages.
*/
package account

import (
	"time"

	"github.com/taibuivan/snipbin/internal/users/session"
)

// # Domain Entities

// Account is a registered member.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialized and never logged.
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity returns the session identity for this account.
func (account *Account) Identity() session.Identity {
	return session.Identity{UserID: account.ID, Username: account.Username}
}

// # Field Identifiers

// Form field names for validation and re-rendering.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
)
