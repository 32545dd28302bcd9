// Package fixture is the mock-mode backend: an explicit in-memory store
// mutated across calls to simulate server state, plus a data.Source that
// adds the artificial network delay. It fails with the same typed errors the
// real backend produces, so screens cannot tell the modes apart.
package fixture

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tetoca/tetoca-go/internal/data"
	"github.com/tetoca/tetoca-go/internal/models"
	"github.com/tetoca/tetoca-go/internal/transport"
)

// Store is constructed per run (or per test) and never shared as a package
// global; Reset restores the seed state for test isolation.
type Store struct {
	mu          sync.Mutex
	users       []models.User
	passwords   map[string]string // email -> password
	tokens      map[string]string // token -> user id
	pushTokens  map[string]string // user id -> device token
	enterprises []models.Enterprise
	categories  []models.Category
	queues      map[string][]models.Queue // enterprise id -> queues
	tickets     []models.Ticket
	ticketOwner map[string]string // ticket id -> user id
	numberSeq   int
}

func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = seedUsers()
	s.passwords = map[string]string{DemoEmail: DemoPassword}
	s.tokens = map[string]string{}
	s.pushTokens = map[string]string{}
	s.enterprises = seedEnterprises()
	s.categories = seedCategories()
	s.queues = seedQueues()
	s.tickets = nil
	s.ticketOwner = map[string]string{}
	s.numberSeq = 25
}

func (s *Store) Login(email, password string) (data.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want, ok := s.passwords[strings.ToLower(email)]
	if !ok || want != password {
		return data.Session{}, transport.NewAPIError(http.StatusUnauthorized, "invalid email or password")
	}
	user, ok := s.userByEmail(email)
	if !ok {
		return data.Session{}, transport.NewAPIError(http.StatusUnauthorized, "invalid email or password")
	}
	token := s.issueToken(user.ID)
	return data.Session{Token: token, User: user}, nil
}

func (s *Store) Register(input data.RegisterInput) (data.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.passwords[strings.ToLower(input.Email)]; exists {
		return data.Session{}, transport.NewAPIError(http.StatusConflict, "email already registered")
	}
	user := models.NewUser(models.UserData{
		ID:    uuid.NewString(),
		Name:  input.Name,
		Email: strings.ToLower(input.Email),
		Phone: input.Phone,
	})
	s.users = append(s.users, user)
	s.passwords[user.Email] = input.Password
	token := s.issueToken(user.ID)
	return data.Session{Token: token, User: user}, nil
}

func (s *Store) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

func (s *Store) UserByToken(token string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userByTokenLocked(token)
}

func (s *Store) Enterprises() []models.Enterprise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Enterprise(nil), s.enterprises...)
}

func (s *Store) Enterprise(enterpriseID string) (models.Enterprise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.enterprises {
		if e.ID == enterpriseID {
			return e, nil
		}
	}
	return models.Enterprise{}, transport.NewAPIError(http.StatusNotFound, "company not found")
}

// Search matches name, address and type, case-insensitively.
func (s *Store) Search(query string) []models.Enterprise {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(query)
	var out []models.Enterprise
	for _, e := range s.enterprises {
		if strings.Contains(strings.ToLower(e.Name), needle) ||
			strings.Contains(strings.ToLower(e.Address), needle) ||
			strings.Contains(strings.ToLower(e.Type), needle) {
			out = append(out, e)
		}
	}
	return out
}

// EnterprisesByCategory returns every company: the fixture taxonomy does not
// link companies to categories, matching the original mock behavior.
func (s *Store) EnterprisesByCategory(categoryID string) ([]models.Enterprise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	found := false
	for _, c := range s.categories {
		if c.ID == categoryID {
			found = true
			break
		}
	}
	if !found {
		return nil, transport.NewAPIError(http.StatusNotFound, "category not found")
	}
	return append([]models.Enterprise(nil), s.enterprises...), nil
}

func (s *Store) Categories() []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Category(nil), s.categories...)
}

func (s *Store) QueuesByEnterprise(enterpriseID string) []models.Queue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Queue(nil), s.queues[enterpriseID]...)
}

// Queue scans every enterprise bucket for the id.
func (s *Store) Queue(queueID string) (models.Queue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, _, _, err := s.findQueueLocked(queueID)
	if err != nil {
		return models.Queue{}, err
	}
	return *q, nil
}

func (s *Store) Join(token string, input data.JoinQueueInput) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, err := s.userByTokenLocked(token)
	if err != nil {
		return models.Ticket{}, err
	}
	queue, enterpriseID, _, err := s.findQueueLocked(input.QueueID)
	if err != nil {
		return models.Ticket{}, err
	}

	position := queue.PeopleWaiting + 1
	queue.PeopleWaiting = position

	s.numberSeq++
	enterpriseName := ""
	for _, e := range s.enterprises {
		if e.ID == enterpriseID {
			enterpriseName = e.Name
		}
	}

	now := time.Now().UTC()
	ticket := models.NewTicket(models.TicketData{
		ID:                uuid.NewString(),
		Number:            fmt.Sprintf("AB%02d", s.numberSeq),
		QueueID:           queue.ID,
		EnterpriseID:      enterpriseID,
		EnterpriseName:    enterpriseName,
		QueueName:         queue.Name,
		CustomerName:      stringOr(input.CustomerName, user.Name),
		CustomerPhone:     stringOr(input.CustomerPhone, user.Phone),
		CustomerEmail:     stringOr(input.CustomerEmail, user.Email),
		Position:          position,
		EstimatedWaitTime: position * perPersonWaitSeconds,
		CreatedAt:         &now,
	})
	s.tickets = append(s.tickets, ticket)
	s.ticketOwner[ticket.ID] = user.ID
	return ticket, nil
}

// Four minutes of estimated wait per person ahead.
const perPersonWaitSeconds = 240

func (s *Store) Ticket(ticketID string) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.findTicketLocked(ticketID)
	if err != nil {
		return models.Ticket{}, err
	}
	return *t, nil
}

func (s *Store) Apply(token, ticketID, action string) (models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, err := s.userByTokenLocked(token)
	if err != nil {
		return models.Ticket{}, err
	}
	ticket, err := s.findTicketLocked(ticketID)
	if err != nil {
		return models.Ticket{}, err
	}
	if s.ticketOwner[ticket.ID] != user.ID {
		return models.Ticket{}, transport.NewAPIError(http.StatusForbidden, "ticket belongs to another user")
	}
	if !models.ValidTransition(action, ticket.Status) {
		return models.Ticket{}, transport.NewAPIError(http.StatusConflict,
			fmt.Sprintf("cannot %s a ticket in status %s", action, ticket.Status))
	}

	now := time.Now().UTC()
	switch action {
	case models.ActionPause:
		ticket.Status = models.StatusPaused
	case models.ActionResume:
		ticket.Status = models.StatusWaiting
	case models.ActionCancel:
		ticket.Status = models.StatusCancelled
		ticket.CancelledAt = &now
		s.decrementWaitingLocked(ticket.QueueID)
	}
	ticket.UpdatedAt = &now
	return *ticket, nil
}

func (s *Store) TicketsByToken(token string) ([]models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, err := s.userByTokenLocked(token)
	if err != nil {
		return nil, err
	}
	var out []models.Ticket
	for _, t := range s.tickets {
		if s.ticketOwner[t.ID] == user.ID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) SetPushToken(token, device string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, err := s.userByTokenLocked(token)
	if err != nil {
		return err
	}
	s.pushTokens[user.ID] = device
	return nil
}

func (s *Store) issueToken(userID string) string {
	token := "mock_token_" + uuid.NewString()
	s.tokens[token] = userID
	return token
}

func (s *Store) userByEmail(email string) (models.User, bool) {
	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *Store) userByTokenLocked(token string) (models.User, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return models.User{}, transport.NewAPIError(http.StatusUnauthorized, "invalid or expired token")
	}
	for _, u := range s.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return models.User{}, transport.NewAPIError(http.StatusUnauthorized, "invalid or expired token")
}

func (s *Store) findQueueLocked(queueID string) (*models.Queue, string, int, error) {
	for enterpriseID, bucket := range s.queues {
		for i := range bucket {
			if bucket[i].ID == queueID {
				return &bucket[i], enterpriseID, i, nil
			}
		}
	}
	return nil, "", 0, transport.NewAPIError(http.StatusNotFound, "queue not found")
}

func (s *Store) findTicketLocked(ticketID string) (*models.Ticket, error) {
	for i := range s.tickets {
		if s.tickets[i].ID == ticketID {
			return &s.tickets[i], nil
		}
	}
	return nil, transport.NewAPIError(http.StatusNotFound, "ticket not found")
}

func (s *Store) decrementWaitingLocked(queueID string) {
	q, _, _, err := s.findQueueLocked(queueID)
	if err != nil {
		return
	}
	if q.PeopleWaiting > 0 {
		q.PeopleWaiting--
	}
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
