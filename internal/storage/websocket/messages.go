package websocket

import (
	"encoding/json"
	"time"

	"github.com/swbase/swb/internal/model/core"
)

// Message types of the combat stream.
const (
	TypeSessionStart = "session_start"
	TypeSessionEnd   = "session_end"
	TypeFired        = "fired"
	TypeHit          = "hit"
	TypeDryFire      = "dryfire"
	TypeReload       = "reload"
	TypeBolt         = "bolt"
	TypeAck          = "ack"
)

// Envelope wraps all messages sent over the WebSocket.
type Envelope struct {
	Type    string          `json:"type"`
	Seq     uint64          `json:"seq"`
	Payload json.RawMessage `json:"payload"`
}

// AckMessage is the server's acknowledgement response.
type AckMessage struct {
	Type string `json:"type"` // always "ack"
	For  string `json:"for"`  // the message type being acknowledged
}

// SessionStartPayload announces a session and its loadout names.
type SessionStartPayload struct {
	Session *core.Session `json:"session"`
}

// SessionEndPayload closes a session with the sender's tallies.
type SessionEndPayload struct {
	SessionID uint                `json:"sessionId"`
	EndTime   time.Time           `json:"endTime"`
	Summary   core.SessionSummary `json:"summary"`
}
