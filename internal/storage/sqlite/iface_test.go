package sqlitestorage_test

import (
	"github.com/swbase/swb/internal/storage"
	sqlitestorage "github.com/swbase/swb/internal/storage/sqlite"
)

// Compile-time interface checks
var (
	_ storage.Backend = (*sqlitestorage.Backend)(nil)
)
