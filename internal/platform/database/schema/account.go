// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema holds table and column identifiers for the PostgreSQL schema
// in data/migrations, so repositories never hard-code names inline.
package schema

// AccountTable represents the 'account' table.
type AccountTable struct {
	Table     string
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt string
	UpdatedAt string

	// Unique constraint names, as reported by pgconn.PgError.ConstraintName.
	UsernameKey string
	EmailKey    string
}

// Account is the schema definition for account.
var Account = AccountTable{
	Table:     "account",
	ID:        "id",
	Username:  "username",
	Email:     "email",
	Password:  "passwordhash",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",

	UsernameKey: "account_username_key",
	EmailKey:    "account_email_key",
}

// Columns returns all standard column names in scan order.
func (t AccountTable) Columns() []string {
	return []string{t.ID, t.Username, t.Email, t.Password, t.CreatedAt, t.UpdatedAt}
}
