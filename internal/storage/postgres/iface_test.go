package postgres_test

import (
	"github.com/swbase/swb/internal/storage"
	postgres "github.com/swbase/swb/internal/storage/postgres"
)

// Compile-time interface checks
var (
	_ storage.Backend = (*postgres.Backend)(nil)
)
