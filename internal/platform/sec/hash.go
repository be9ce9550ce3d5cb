// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordPepper keys the pre-hash applied before bcrypt. Changing it
// invalidates every stored hash.
const passwordPepper = "snipbin-password-prehash-v1"

// PasswordHasher hashes and verifies passwords with bcrypt at a fixed cost.
//
// Passwords are first reduced to a fixed 44-byte HMAC-SHA256 digest, so
// inputs longer than bcrypt's 72-byte limit are accepted and every byte of
// them counts.
type PasswordHasher struct {
	cost int

	// dummyHash is compared against when the account does not exist, so that
	// an unknown username costs the same as a wrong password.
	dummyHash []byte
}

// NewPasswordHasher creates a [PasswordHasher] using the given bcrypt cost.
func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("sec: bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	dummy, err := bcrypt.GenerateFromPassword(prehash("snipbin-timing-equalizer"), cost)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to prepare dummy hash: %w", err)
	}

	return &PasswordHasher{cost: cost, dummyHash: dummy}, nil
}

// Hash hashes a plain-text password using the bcrypt algorithm.
func (hasher *PasswordHasher) Hash(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword(prehash(plainTextPassword), hasher.cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// Compare reports whether plainTextPassword matches existingHash.
//
// A malformed hash is reported as an error; a simple mismatch is not.
func (hasher *PasswordHasher) Compare(plainTextPassword, existingHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), prehash(plainTextPassword))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("sec: failed to compare password: %w", err)
}

// CompareDummy burns the same CPU time as a real comparison and always fails.
func (hasher *PasswordHasher) CompareDummy(plainTextPassword string) {
	_ = bcrypt.CompareHashAndPassword(hasher.dummyHash, prehash(plainTextPassword))
}

func prehash(plainTextPassword string) []byte {
	mac := hmac.New(sha256.New, []byte(passwordPepper))
	mac.Write([]byte(plainTextPassword))

	encoded := make([]byte, base64.StdEncoding.EncodedLen(sha256.Size))
	base64.StdEncoding.Encode(encoded, mac.Sum(nil))
	return encoded
}
