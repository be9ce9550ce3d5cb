// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import "context"

// # Account Data Access

// Repository defines the data access contract for accounts.
type Repository interface {

	/*
		Create persists a new account.

		Parameters:
		  - context: context.Context
		  - account: *Account (with PasswordHash already set)

		Returns:
		  - error: apperr.DuplicateUsername, apperr.DuplicateEmail, or storage failures
	*/
	Create(context context.Context, account *Account) error

	/*
		FindByUsername returns the account with exactly this username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*Account, error)
}
