package models

import "time"

type Ticket struct {
	ID                string     `json:"id"`
	Number            string     `json:"number"`
	QueueID           string     `json:"queueId"`
	EnterpriseID      string     `json:"enterpriseId"`
	EnterpriseName    string     `json:"enterpriseName"`
	QueueName         string     `json:"queueName"`
	CustomerName      string     `json:"customerName"`
	CustomerPhone     string     `json:"customerPhone"`
	CustomerEmail     string     `json:"customerEmail"`
	ServiceType       string     `json:"serviceType"`
	Priority          string     `json:"priority"`
	Status            string     `json:"status"`
	Position          int        `json:"position"`
	EstimatedWaitTime int        `json:"estimatedWaitTime"`
	ActualWaitTime    int        `json:"actualWaitTime"`
	ServiceTime       int        `json:"serviceTime"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt,omitempty"`
	CalledAt          *time.Time `json:"calledAt,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	CancelledAt       *time.Time `json:"cancelledAt,omitempty"`
	SkippedAt         *time.Time `json:"skippedAt,omitempty"`
	Notes             string     `json:"notes,omitempty"`
	Reason            string     `json:"reason,omitempty"`
}

// TicketData accepts the legacy ticketId alias for the display number.
type TicketData struct {
	ID                string     `json:"id"`
	Number            string     `json:"number"`
	TicketID          string     `json:"ticketId"`
	QueueID           string     `json:"queueId"`
	EnterpriseID      string     `json:"enterpriseId"`
	TenantID          string     `json:"tenantId"`
	EnterpriseName    string     `json:"enterpriseName"`
	TenantName        string     `json:"tenantName"`
	QueueName         string     `json:"queueName"`
	CustomerName      string     `json:"customerName"`
	CustomerPhone     string     `json:"customerPhone"`
	CustomerEmail     string     `json:"customerEmail"`
	ServiceType       string     `json:"serviceType"`
	Priority          string     `json:"priority"`
	Status            string     `json:"status"`
	Position          int        `json:"position"`
	EstimatedWaitTime int        `json:"estimatedWaitTime"`
	ActualWaitTime    int        `json:"actualWaitTime"`
	ServiceTime       int        `json:"serviceTime"`
	CreatedAt         *time.Time `json:"createdAt"`
	UpdatedAt         *time.Time `json:"updatedAt"`
	CalledAt          *time.Time `json:"calledAt"`
	CompletedAt       *time.Time `json:"completedAt"`
	CancelledAt       *time.Time `json:"cancelledAt"`
	SkippedAt         *time.Time `json:"skippedAt"`
	Notes             string     `json:"notes"`
	Reason            string     `json:"reason"`
}

const (
	StatusWaiting    = "waiting"
	StatusPaused     = "paused"
	StatusCalled     = "called"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusSkipped    = "skipped"
)

const (
	TicketPriorityNormal   = "normal"
	TicketPriorityPriority = "priority"
)

func NewTicket(data TicketData) Ticket {
	createdAt := time.Now().UTC()
	if data.CreatedAt != nil {
		createdAt = *data.CreatedAt
	}
	return Ticket{
		ID:                data.ID,
		Number:            stringOr(data.Number, data.TicketID),
		QueueID:           data.QueueID,
		EnterpriseID:      stringOr(data.EnterpriseID, data.TenantID),
		EnterpriseName:    stringOr(data.EnterpriseName, data.TenantName),
		QueueName:         data.QueueName,
		CustomerName:      data.CustomerName,
		CustomerPhone:     data.CustomerPhone,
		CustomerEmail:     data.CustomerEmail,
		ServiceType:       data.ServiceType,
		Priority:          stringOr(data.Priority, TicketPriorityNormal),
		Status:            stringOr(data.Status, StatusWaiting),
		Position:          data.Position,
		EstimatedWaitTime: data.EstimatedWaitTime,
		ActualWaitTime:    data.ActualWaitTime,
		ServiceTime:       data.ServiceTime,
		CreatedAt:         createdAt,
		UpdatedAt:         data.UpdatedAt,
		CalledAt:          data.CalledAt,
		CompletedAt:       data.CompletedAt,
		CancelledAt:       data.CancelledAt,
		SkippedAt:         data.SkippedAt,
		Notes:             data.Notes,
		Reason:            data.Reason,
	}
}

// Client-initiated ticket actions. called/in_progress/completed/skipped are
// produced only by the operator side and never appear here.
const (
	ActionPause  = "pause"
	ActionResume = "resume"
	ActionCancel = "cancel"
)

var transitionMap = map[string][]string{
	ActionPause:  {StatusWaiting},
	ActionResume: {StatusPaused},
	ActionCancel: {StatusWaiting, StatusPaused},
}

func ValidTransition(action, fromStatus string) bool {
	allowed, ok := transitionMap[action]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == fromStatus {
			return true
		}
	}
	return false
}

func IsTerminalStatus(status string) bool {
	switch status {
	case StatusCompleted, StatusCancelled, StatusSkipped:
		return true
	}
	return false
}
