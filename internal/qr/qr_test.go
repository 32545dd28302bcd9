package qr

import (
	"errors"
	"testing"
)

func TestParseValidPayload(t *testing.T) {
	got, err := Parse(`{"type":"tetoca-queue","ticketData":{"ticketId":"Q1","queueId":"3"}}`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.TicketID != "Q1" || got.QueueID != "3" {
		t.Fatalf("unexpected data %+v", got)
	}
}

func TestParseRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"not json", "not json", ErrNotJSON},
		{"empty", "", ErrNotJSON},
		{"wrong type", `{"type":"other"}`, ErrWrongType},
		{"missing type", `{"ticketData":{"ticketId":"Q1"}}`, ErrWrongType},
		{"missing ticket id", `{"type":"tetoca-queue","ticketData":{}}`, ErrWrongType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.raw)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tt.raw, err, tt.want)
			}
		})
	}
}
