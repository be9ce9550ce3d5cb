// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/constants"
	"github.com/taibuivan/snipbin/internal/platform/ctxutil"
	"github.com/taibuivan/snipbin/internal/platform/validate"
	"github.com/taibuivan/snipbin/pkg/uuid"
)

// # Contracts & Types

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	// Hash returns a salted hash of the plaintext.
	Hash(plainTextPassword string) (string, error)

	// Compare reports whether the plaintext matches the hash.
	Compare(plainTextPassword, existingHash string) (bool, error)

	// CompareDummy spends the cost of one comparison and discards the result.
	CompareDummy(plainTextPassword string)
}

// Service implements registration and authentication.
//
// # Review Process
//
// This service is critical for security. Plaintext passwords must never be
// stored, returned, logged, or placed in an error message.
type Service struct {
	repository Repository
	hasher     PasswordHasher
}

// NewService constructs a new [Service] with its dependencies.
func NewService(repository Repository, hasher PasswordHasher) *Service {
	return &Service{repository: repository, hasher: hasher}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register validates, hashes, and persists a brand new account.

Description: Uniqueness is not pre-checked; the store's constraints decide
and the repository reports DuplicateUsername or DuplicateEmail.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Account: Created entity
  - error: ValidationError, DuplicateUsername, DuplicateEmail, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Account, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, constants.UsernameMinLength).
		MaxLen(FieldUsername, input.Username, constants.UsernameMaxLength).
		Alphanumeric(FieldUsername, input.Username).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, constants.PasswordMinLength).
		MaxLen(FieldPassword, input.Password, constants.PasswordMaxLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	hashedPassword, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("account_service_hash_failed: %w", err)
	}

	currentTime := time.Now().UTC()
	account := &Account{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		CreatedAt:    currentTime,
		UpdatedAt:    currentTime,
	}

	if err := service.repository.Create(context, account); err != nil {
		if apperr.IsDomain(err) {
			return nil, err
		}
		return nil, fmt.Errorf("account_service_register_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "account_registered",
		slog.String("user_id", account.ID),
	)

	return account, nil
}

// # Authentication Flow

/*
Authenticate verifies a username and password.

Description: An unknown username and a wrong password return the same
InvalidCredentials error, and an unknown username still pays for one bcrypt
comparison so response time does not reveal which case occurred.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *Account: The verified account
  - error: apperr.InvalidCredentials or storage failures
*/
func (service *Service) Authenticate(context context.Context, username, password string) (*Account, error) {
	logger := ctxutil.GetLogger(context)

	account, err := service.repository.FindByUsername(context, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			service.hasher.CompareDummy(password)
			logger.InfoContext(context, "authentication_failed")
			return nil, apperr.InvalidCredentials()
		}
		return nil, fmt.Errorf("account_service_lookup_failed: %w", err)
	}

	matches, err := service.hasher.Compare(password, account.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("account_service_compare_failed: %w", err)
	}

	if !matches {
		logger.InfoContext(context, "authentication_failed")
		return nil, apperr.InvalidCredentials()
	}

	logger.InfoContext(context, "account_authenticated", slog.String("user_id", account.ID))

	return account, nil
}
