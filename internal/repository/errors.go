package repository

import "errors"

// ErrNotFound is returned when a query for a single entity finds no rows.
//
// The service layer checks for this error and translates it into a
// domain-level error (app_errors.ErrNotFound), keeping business logic
// decoupled from sql.ErrNoRows and other driver details.
var ErrNotFound = errors.New("repository: not found")
