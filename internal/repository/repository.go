package repository

import "errors"

// ErrNoDatabase is returned by every repository when the service started
// without a Postgres DSN.
var ErrNoDatabase = errors.New("database not configured")
