// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides time-ordered unique identifiers for accounts and snippets.

It wraps the google/uuid library to generate Version 7 values.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision), which
    gives snippet listings a stable tie-breaker after createdat.
  - Friendly: Keeps PostgreSQL B-tree primary keys append-mostly.

Every primary key in the snippet service is generated here.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
