package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/tetoca/tetoca-go/internal/data"
	"github.com/tetoca/tetoca-go/internal/models"
	"github.com/tetoca/tetoca-go/internal/storage"
	"github.com/tetoca/tetoca-go/internal/transport"
)

type Tickets struct {
	source   data.Source
	local    storage.Store
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewTickets(source data.Source, local storage.Store, logger zerolog.Logger) *Tickets {
	return &Tickets{
		source:   source,
		local:    local,
		validate: validator.New(),
		logger:   logger.With().Str("service", "ticket").Logger(),
	}
}

func (t *Tickets) Join(ctx context.Context, input data.JoinQueueInput) (models.Ticket, error) {
	if err := t.validate.Struct(input); err != nil {
		return models.Ticket{}, &transport.APIError{Code: transport.CodeBadRequest, Message: err.Error()}
	}
	return t.source.JoinQueue(ctx, input)
}

func (t *Tickets) Get(ctx context.Context, ticketID string) (models.Ticket, error) {
	return t.source.GetTicket(ctx, ticketID)
}

// Pause, Resume and Cancel take the last known ticket so an action that is
// already impossible fails fast, before a network round trip. The server
// remains the authority; its rejection surfaces the same way.
func (t *Tickets) Pause(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	if err := checkTransition(models.ActionPause, ticket.Status); err != nil {
		return models.Ticket{}, err
	}
	return t.source.PauseTicket(ctx, ticket.ID)
}

func (t *Tickets) Resume(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	if err := checkTransition(models.ActionResume, ticket.Status); err != nil {
		return models.Ticket{}, err
	}
	return t.source.ResumeTicket(ctx, ticket.ID)
}

func (t *Tickets) Cancel(ctx context.Context, ticket models.Ticket) (models.Ticket, error) {
	if err := checkTransition(models.ActionCancel, ticket.Status); err != nil {
		return models.Ticket{}, err
	}
	return t.source.CancelTicket(ctx, ticket.ID)
}

func (t *Tickets) Mine(ctx context.Context) ([]models.Ticket, error) {
	return t.source.MyTickets(ctx)
}

// RegisterPushToken forwards the device token and remembers it locally so
// re-registration on the next launch can be skipped.
func (t *Tickets) RegisterPushToken(ctx context.Context, deviceToken string) error {
	stored, _ := t.local.Get(storage.KeyPushToken)
	if stored == deviceToken {
		return nil
	}
	if err := t.source.RegisterPushToken(ctx, deviceToken); err != nil {
		return err
	}
	return t.local.Set(storage.KeyPushToken, deviceToken)
}

func checkTransition(action, status string) error {
	if models.ValidTransition(action, status) {
		return nil
	}
	return transport.NewAPIError(http.StatusConflict,
		fmt.Sprintf("cannot %s a ticket in status %s", action, status))
}
