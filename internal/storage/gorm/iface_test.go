package gormstorage_test

import (
	"github.com/swbase/swb/internal/storage"
	gormstorage "github.com/swbase/swb/internal/storage/gorm"
)

// Compile-time interface checks
var (
	_ storage.Backend    = (*gormstorage.Backend)(nil)
	_ storage.Summarizer = (*gormstorage.Backend)(nil)
)
