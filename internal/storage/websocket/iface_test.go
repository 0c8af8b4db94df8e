package websocket_test

import (
	"github.com/swbase/swb/internal/storage"
	websocket "github.com/swbase/swb/internal/storage/websocket"
)

// Compile-time interface checks
var (
	_ storage.Backend    = (*websocket.Backend)(nil)
	_ storage.Summarizer = (*websocket.Backend)(nil)
)
