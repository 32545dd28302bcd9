// Package qr decodes the payload printed on queue tickets and posters. The
// payload is JSON with a fixed type tag; anything else is rejected so a scan
// of an unrelated code never reaches the ticket flow.
package qr

import (
	"encoding/json"
	"errors"
	"fmt"
)

// PayloadType is the tag every valid payload must carry.
const PayloadType = "tetoca-queue"

var (
	ErrNotJSON   = errors.New("qr: payload is not valid JSON")
	ErrWrongType = errors.New("qr: payload is not a queue code")
)

// TicketData is the embedded ticket reference. TicketID is the only field
// the app requires; the rest travels along when present.
type TicketData struct {
	TicketID   string `json:"ticketId"`
	QueueID    string `json:"queueId,omitempty"`
	TenantID   string `json:"tenantId,omitempty"`
	Number     string `json:"number,omitempty"`
	QueueName  string `json:"queueName,omitempty"`
	TenantName string `json:"tenantName,omitempty"`
}

type payload struct {
	Type       string     `json:"type"`
	TicketData TicketData `json:"ticketData"`
}

// Parse validates raw scanned text and returns the ticket reference inside.
// Errors wrap ErrNotJSON or ErrWrongType so callers can pick the right
// user-facing message.
func Parse(raw string) (TicketData, error) {
	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return TicketData{}, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}
	if p.Type != PayloadType {
		return TicketData{}, fmt.Errorf("%w: type %q", ErrWrongType, p.Type)
	}
	if p.TicketData.TicketID == "" {
		return TicketData{}, fmt.Errorf("%w: missing ticketId", ErrWrongType)
	}
	return p.TicketData, nil
}
