package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewEnterpriseDefaults(t *testing.T) {
	e := NewEnterprise(EnterpriseData{ID: "1", Name: "BCP"})
	if !e.IsActive {
		t.Fatalf("expected isActive default true")
	}
	if e.ActiveQueues != 0 {
		t.Fatalf("expected activeQueues default 0, got %d", e.ActiveQueues)
	}
	if e.Queues == nil || len(e.Queues) != 0 {
		t.Fatalf("expected empty queues slice, got %v", e.Queues)
	}
}

func TestNewEnterpriseExplicitInactive(t *testing.T) {
	inactive := false
	e := NewEnterprise(EnterpriseData{ID: "1", IsActive: &inactive})
	if e.IsActive {
		t.Fatalf("explicit isActive=false must survive defaulting")
	}
}

func TestNewQueueDefaultsAndAliases(t *testing.T) {
	q := NewQueue(QueueData{ID: "1", Name: "Ventanilla"})
	if q.Icon != DefaultQueueIcon {
		t.Fatalf("expected default icon, got %s", q.Icon)
	}
	if q.Priority != PriorityMedium {
		t.Fatalf("expected priority medium, got %s", q.Priority)
	}
	if q.AvgTime != DefaultQueueAvgTime {
		t.Fatalf("expected avgTime %q, got %q", DefaultQueueAvgTime, q.AvgTime)
	}

	q = NewQueue(QueueData{ID: "2", WaitingCount: 7, AverageWaitTime: "12 min", TenantID: "t1"})
	if q.PeopleWaiting != 7 {
		t.Fatalf("waitingCount alias not applied, got %d", q.PeopleWaiting)
	}
	if q.AvgTime != "12 min" {
		t.Fatalf("averageWaitTime alias not applied, got %s", q.AvgTime)
	}
	if q.EnterpriseID != "t1" {
		t.Fatalf("tenantId alias not applied, got %s", q.EnterpriseID)
	}
}

func TestNewCategoryDefaultColor(t *testing.T) {
	c := NewCategory(CategoryData{ID: "1", Name: "Documentos"})
	if c.Color != DefaultCategoryColor {
		t.Fatalf("expected default color, got %s", c.Color)
	}
	c = NewCategory(CategoryData{ID: "2", Color: "#2ecc71"})
	if c.Color != "#2ecc71" {
		t.Fatalf("explicit color overridden: %s", c.Color)
	}
}

func TestNewTicketDefaults(t *testing.T) {
	before := time.Now().UTC()
	tk := NewTicket(TicketData{ID: "123", TicketID: "AB25", QueueID: "1"})
	if tk.Number != "AB25" {
		t.Fatalf("ticketId alias not applied, got %s", tk.Number)
	}
	if tk.Status != StatusWaiting {
		t.Fatalf("expected default status waiting, got %s", tk.Status)
	}
	if tk.Priority != TicketPriorityNormal {
		t.Fatalf("expected default priority normal, got %s", tk.Priority)
	}
	if tk.CreatedAt.Before(before) {
		t.Fatalf("expected createdAt defaulted to now")
	}
	if tk.CancelledAt != nil {
		t.Fatalf("expected nil cancelledAt")
	}
}

func TestNewTenantDefaultSettings(t *testing.T) {
	tn := NewTenant(TenantData{ID: "t1", Name: "Gobierno Regional"})
	if tn.Settings.Timezone != "America/Lima" {
		t.Fatalf("expected default timezone, got %s", tn.Settings.Timezone)
	}
	if tn.Settings.BusinessHours.Start != "08:00" || tn.Settings.BusinessHours.End != "18:00" {
		t.Fatalf("expected default business hours, got %+v", tn.Settings.BusinessHours)
	}
}

func TestEnterpriseWireRoundTrip(t *testing.T) {
	raw := []byte(`{"id":"1","name":"BCP","queues":[{"id":"9","waitingCount":3}]}`)
	var data EnterpriseData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	e := NewEnterprise(data)
	if len(e.Queues) != 1 || e.Queues[0].PeopleWaiting != 3 {
		t.Fatalf("nested queue not mapped: %+v", e.Queues)
	}
	if !e.Queues[0].IsActive {
		t.Fatalf("nested queue default isActive lost")
	}
}
