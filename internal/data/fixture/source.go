package fixture

import (
	"context"
	"time"

	"github.com/tetoca/tetoca-go/internal/data"
	"github.com/tetoca/tetoca-go/internal/models"
	"github.com/tetoca/tetoca-go/internal/storage"
)

// DefaultDelay mirrors the artificial network delay of the original mock
// layer. Tests pass 0.
const DefaultDelay = 500 * time.Millisecond

// Source adapts Store to data.Source. The current session token comes from
// local storage, exactly as the real transport would read it.
type Source struct {
	store *Store
	local storage.Store
	delay time.Duration
}

var _ data.Source = (*Source)(nil)

func NewSource(store *Store, local storage.Store, delay time.Duration) *Source {
	return &Source{store: store, local: local, delay: delay}
}

func (s *Source) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Source) token() string {
	token, _ := s.local.Get(storage.KeyAuthToken)
	return token
}

func (s *Source) Login(ctx context.Context, creds data.Credentials) (data.Session, error) {
	if err := s.wait(ctx); err != nil {
		return data.Session{}, err
	}
	return s.store.Login(creds.Email, creds.Password)
}

func (s *Source) Register(ctx context.Context, input data.RegisterInput) (data.Session, error) {
	if err := s.wait(ctx); err != nil {
		return data.Session{}, err
	}
	return s.store.Register(input)
}

func (s *Source) Logout(ctx context.Context) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	s.store.RevokeToken(s.token())
	return nil
}

func (s *Source) CurrentUser(ctx context.Context) (models.User, error) {
	if err := s.wait(ctx); err != nil {
		return models.User{}, err
	}
	return s.store.UserByToken(s.token())
}

func (s *Source) ListEnterprises(ctx context.Context) ([]models.Enterprise, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.Enterprises(), nil
}

func (s *Source) GetEnterprise(ctx context.Context, enterpriseID string) (models.Enterprise, error) {
	if err := s.wait(ctx); err != nil {
		return models.Enterprise{}, err
	}
	return s.store.Enterprise(enterpriseID)
}

func (s *Source) SearchEnterprises(ctx context.Context, query string) ([]models.Enterprise, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.Search(query), nil
}

func (s *Source) EnterprisesByCategory(ctx context.Context, categoryID string) ([]models.Enterprise, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.EnterprisesByCategory(categoryID)
}

func (s *Source) ListCategories(ctx context.Context) ([]models.Category, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.Categories(), nil
}

func (s *Source) QueuesByEnterprise(ctx context.Context, enterpriseID string) ([]models.Queue, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.QueuesByEnterprise(enterpriseID), nil
}

func (s *Source) GetQueue(ctx context.Context, queueID string) (models.Queue, error) {
	if err := s.wait(ctx); err != nil {
		return models.Queue{}, err
	}
	return s.store.Queue(queueID)
}

func (s *Source) JoinQueue(ctx context.Context, input data.JoinQueueInput) (models.Ticket, error) {
	if err := s.wait(ctx); err != nil {
		return models.Ticket{}, err
	}
	return s.store.Join(s.token(), input)
}

func (s *Source) GetTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	if err := s.wait(ctx); err != nil {
		return models.Ticket{}, err
	}
	return s.store.Ticket(ticketID)
}

func (s *Source) PauseTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	if err := s.wait(ctx); err != nil {
		return models.Ticket{}, err
	}
	return s.store.Apply(s.token(), ticketID, models.ActionPause)
}

func (s *Source) ResumeTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	if err := s.wait(ctx); err != nil {
		return models.Ticket{}, err
	}
	return s.store.Apply(s.token(), ticketID, models.ActionResume)
}

func (s *Source) CancelTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	if err := s.wait(ctx); err != nil {
		return models.Ticket{}, err
	}
	return s.store.Apply(s.token(), ticketID, models.ActionCancel)
}

func (s *Source) MyTickets(ctx context.Context) ([]models.Ticket, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return s.store.TicketsByToken(s.token())
}

func (s *Source) RegisterPushToken(ctx context.Context, token string) error {
	if err := s.wait(ctx); err != nil {
		return err
	}
	return s.store.SetPushToken(s.token(), token)
}
