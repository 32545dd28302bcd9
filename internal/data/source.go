// Package data defines the strategy boundary between the domain services and
// the backend. Exactly one Source implementation is picked at startup: the
// REST client, or the in-memory fixture store when mock mode is on. Services
// never branch on the mode themselves.
package data

import (
	"context"

	"github.com/tetoca/tetoca-go/internal/models"
)

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required,min=6"`
}

type JoinQueueInput struct {
	QueueID       string `json:"-" validate:"required"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail" validate:"omitempty,email"`
}

// Session is the result of a successful login or registration.
type Session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type Source interface {
	Login(ctx context.Context, creds Credentials) (Session, error)
	Register(ctx context.Context, input RegisterInput) (Session, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)

	ListEnterprises(ctx context.Context) ([]models.Enterprise, error)
	GetEnterprise(ctx context.Context, enterpriseID string) (models.Enterprise, error)
	SearchEnterprises(ctx context.Context, query string) ([]models.Enterprise, error)
	EnterprisesByCategory(ctx context.Context, categoryID string) ([]models.Enterprise, error)
	ListCategories(ctx context.Context) ([]models.Category, error)

	QueuesByEnterprise(ctx context.Context, enterpriseID string) ([]models.Queue, error)
	GetQueue(ctx context.Context, queueID string) (models.Queue, error)

	JoinQueue(ctx context.Context, input JoinQueueInput) (models.Ticket, error)
	GetTicket(ctx context.Context, ticketID string) (models.Ticket, error)
	PauseTicket(ctx context.Context, ticketID string) (models.Ticket, error)
	ResumeTicket(ctx context.Context, ticketID string) (models.Ticket, error)
	CancelTicket(ctx context.Context, ticketID string) (models.Ticket, error)
	MyTickets(ctx context.Context) ([]models.Ticket, error)

	RegisterPushToken(ctx context.Context, token string) error
}
