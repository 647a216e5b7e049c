package server

import (
	"encoding/json"
	"time"

	"github.com/cardhouse/dealerschoice/internal/game"
)

// MessageType identifies a wire message
type MessageType string

const (
	// Client to server
	TypeAuth      MessageType = "auth"
	TypeJoinTable MessageType = "join_table"
	TypeLeave     MessageType = "leave_table"
	TypeSitOut    MessageType = "sit_out"
	TypeStartHand MessageType = "start_hand"
	TypeAction    MessageType = "action"
	TypeListGames MessageType = "list_tables"

	// Server to client
	TypeAuthOK     MessageType = "auth_ok"
	TypeTableList  MessageType = "table_list"
	TypeJoined     MessageType = "joined"
	TypeState      MessageType = "state"
	TypeActionAck  MessageType = "action_ack"
	TypeHandResult MessageType = "hand_result"
	TypeError      MessageType = "error"
)

// Message is the base WebSocket envelope
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage wraps a payload in an envelope with the current timestamp
func NewMessage(t MessageType, data any) (*Message, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Message{Type: t, Data: raw, Timestamp: time.Now()}, nil
}

// Client to server payloads

type AuthData struct {
	PlayerName string `json:"playerName"`
}

type JoinTableData struct {
	TableID string `json:"tableId"`
	Seat    *int   `json:"seat,omitempty"`
}

type LeaveTableData struct {
	TableID string `json:"tableId"`
}

type SitOutData struct {
	TableID string `json:"tableId"`
	Seat    int    `json:"seat"`
	SitOut  bool   `json:"sitOut"`
}

type StartHandData struct {
	TableID string `json:"tableId"`
}

type ActionData struct {
	TableID  string `json:"tableId"`
	Action   string `json:"action"`
	Amount   int    `json:"amount,omitempty"`
	Discards []int  `json:"discards,omitempty"`
}

// Server to client payloads

type AuthOKData struct {
	PlayerID string `json:"playerId"`
}

type TableSummary struct {
	ID      string `json:"id"`
	Game    string `json:"game"`
	Seats   int    `json:"seats"`
	Seated  int    `json:"seated"`
	HandNo  int    `json:"handNo"`
	Playing bool   `json:"playing"`
}

type TableListData struct {
	Tables []TableSummary `json:"tables"`
}

type JoinedData struct {
	TableID string `json:"tableId"`
	Seat    int    `json:"seat"`
	Chips   int    `json:"chips"`
}

type StateData struct {
	TableID string        `json:"tableId"`
	State   game.Snapshot `json:"state"`
}

type ActionAckData struct {
	TableID string `json:"tableId"`
	Applied bool   `json:"applied"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
