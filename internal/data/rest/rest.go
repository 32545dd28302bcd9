// Package rest implements data.Source against the TeToca REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/tetoca/tetoca-go/internal/data"
	"github.com/tetoca/tetoca-go/internal/models"
	"github.com/tetoca/tetoca-go/internal/transport"
)

// Route table for the consumed API surface. Tenant-scoped variants carry the
// {tenantId} placeholder resolved by the transport wrapper.
const (
	pathLogin     = "/auth/user/login"
	pathRegister  = "/auth/user/register"
	pathLogout    = "/auth/user/logout"
	pathProfile   = "/user/profile"
	pathMyTickets = "/user/tickets"
	pathPushToken = "/user/push-token"

	pathCompanies       = "/public/companies"
	pathCompanySearch   = "/public/companies/search"
	pathCategories      = "/public/categories"
	pathCategoryCompany = "/public/categories/%s/companies"
	pathCompanyQueues   = "/public/companies/%s/queues"
	pathQueueDetail     = "/public/queues/%s"

	pathJoinQueue    = "/queues/%s/join"
	pathTicket       = "/tickets/%s"
	pathTicketPause  = "/tickets/%s/pause"
	pathTicketResume = "/tickets/%s/resume"
	pathTicketCancel = "/tickets/%s/cancel"
)

type Source struct {
	client *transport.Client
}

var _ data.Source = (*Source)(nil)

func New(client *transport.Client) *Source {
	return &Source{client: client}
}

func (s *Source) Login(ctx context.Context, creds data.Credentials) (data.Session, error) {
	raw, err := s.client.Post(ctx, pathLogin, creds)
	if err != nil {
		return data.Session{}, err
	}
	return decodeSession(raw)
}

func (s *Source) Register(ctx context.Context, input data.RegisterInput) (data.Session, error) {
	raw, err := s.client.Post(ctx, pathRegister, input)
	if err != nil {
		return data.Session{}, err
	}
	return decodeSession(raw)
}

func (s *Source) Logout(ctx context.Context) error {
	_, err := s.client.Post(ctx, pathLogout, nil)
	return err
}

func (s *Source) CurrentUser(ctx context.Context) (models.User, error) {
	raw, err := s.client.Get(ctx, pathProfile, nil)
	if err != nil {
		return models.User{}, err
	}
	return decodeOne(raw, models.NewUser)
}

func (s *Source) ListEnterprises(ctx context.Context) ([]models.Enterprise, error) {
	raw, err := s.client.Get(ctx, pathCompanies, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, models.NewEnterprise)
}

func (s *Source) GetEnterprise(ctx context.Context, enterpriseID string) (models.Enterprise, error) {
	raw, err := s.client.Get(ctx, pathCompanies+"/"+url.PathEscape(enterpriseID), nil)
	if err != nil {
		return models.Enterprise{}, err
	}
	return decodeOne(raw, models.NewEnterprise)
}

func (s *Source) SearchEnterprises(ctx context.Context, query string) ([]models.Enterprise, error) {
	q := url.Values{}
	q.Set("q", query)
	raw, err := s.client.Get(ctx, pathCompanySearch, q)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, models.NewEnterprise)
}

func (s *Source) EnterprisesByCategory(ctx context.Context, categoryID string) ([]models.Enterprise, error) {
	raw, err := s.client.Get(ctx, sprintfPath(pathCategoryCompany, categoryID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, models.NewEnterprise)
}

func (s *Source) ListCategories(ctx context.Context) ([]models.Category, error) {
	raw, err := s.client.Get(ctx, pathCategories, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, models.NewCategory)
}

func (s *Source) QueuesByEnterprise(ctx context.Context, enterpriseID string) ([]models.Queue, error) {
	raw, err := s.client.Get(ctx, sprintfPath(pathCompanyQueues, enterpriseID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, models.NewQueue)
}

func (s *Source) GetQueue(ctx context.Context, queueID string) (models.Queue, error) {
	raw, err := s.client.Get(ctx, sprintfPath(pathQueueDetail, queueID), nil)
	if err != nil {
		return models.Queue{}, err
	}
	return decodeOne(raw, models.NewQueue)
}

func (s *Source) JoinQueue(ctx context.Context, input data.JoinQueueInput) (models.Ticket, error) {
	raw, err := s.client.Post(ctx, sprintfPath(pathJoinQueue, input.QueueID), input)
	if err != nil {
		return models.Ticket{}, err
	}
	return decodeOne(raw, models.NewTicket)
}

func (s *Source) GetTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	raw, err := s.client.Get(ctx, sprintfPath(pathTicket, ticketID), nil)
	if err != nil {
		return models.Ticket{}, err
	}
	return decodeOne(raw, models.NewTicket)
}

func (s *Source) PauseTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	raw, err := s.client.Put(ctx, sprintfPath(pathTicketPause, ticketID), nil)
	if err != nil {
		return models.Ticket{}, err
	}
	return decodeOne(raw, models.NewTicket)
}

func (s *Source) ResumeTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	raw, err := s.client.Put(ctx, sprintfPath(pathTicketResume, ticketID), nil)
	if err != nil {
		return models.Ticket{}, err
	}
	return decodeOne(raw, models.NewTicket)
}

func (s *Source) CancelTicket(ctx context.Context, ticketID string) (models.Ticket, error) {
	raw, err := s.client.Delete(ctx, sprintfPath(pathTicketCancel, ticketID))
	if err != nil {
		return models.Ticket{}, err
	}
	// Some deployments answer the cancel with an empty body.
	if len(bytes.TrimSpace(raw)) == 0 {
		return models.Ticket{ID: ticketID, Status: models.StatusCancelled}, nil
	}
	return decodeOne(raw, models.NewTicket)
}

func (s *Source) MyTickets(ctx context.Context) ([]models.Ticket, error) {
	raw, err := s.client.Get(ctx, pathMyTickets, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(raw, models.NewTicket)
}

func (s *Source) RegisterPushToken(ctx context.Context, token string) error {
	_, err := s.client.Post(ctx, pathPushToken, map[string]string{"token": token})
	return err
}

func sprintfPath(format, id string) string {
	return fmt.Sprintf(format, url.PathEscape(id))
}

// unwrap tolerates both response shapes the backend has shipped: the bare
// payload, and the payload nested under a "data" field.
func unwrap(raw []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		return env.Data
	}
	return raw
}

func decodeSession(raw []byte) (data.Session, error) {
	var wire struct {
		Token string          `json:"token"`
		User  models.UserData `json:"user"`
	}
	if err := json.Unmarshal(unwrap(raw), &wire); err != nil {
		return data.Session{}, err
	}
	return data.Session{Token: wire.Token, User: models.NewUser(wire.User)}, nil
}

func decodeOne[D, M any](raw []byte, build func(D) M) (M, error) {
	var wire D
	if err := json.Unmarshal(unwrap(raw), &wire); err != nil {
		var zero M
		return zero, err
	}
	return build(wire), nil
}

func decodeList[D, M any](raw []byte, build func(D) M) ([]M, error) {
	var wire []D
	if err := json.Unmarshal(unwrap(raw), &wire); err != nil {
		return nil, err
	}
	out := make([]M, 0, len(wire))
	for _, item := range wire {
		out = append(out, build(item))
	}
	return out, nil
}
