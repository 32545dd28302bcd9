package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tetoca/tetoca-go/internal/data"
	"github.com/tetoca/tetoca-go/internal/data/fixture"
	"github.com/tetoca/tetoca-go/internal/models"
	"github.com/tetoca/tetoca-go/internal/session"
	"github.com/tetoca/tetoca-go/internal/storage"
	"github.com/tetoca/tetoca-go/internal/transport"
)

func newAuth(t *testing.T) (*Auth, *Tickets, *storage.MemoryStore) {
	t.Helper()
	local := storage.NewMemoryStore()
	source := fixture.NewSource(fixture.NewStore(), local, 0)
	logger := zerolog.Nop()
	return NewAuth(source, local, session.New(local), logger), NewTickets(source, local, logger), local
}

func TestLoginPersistsToken(t *testing.T) {
	auth, _, local := newAuth(t)
	ctx := context.Background()

	user, err := auth.Login(ctx, fixture.DemoEmail, fixture.DemoPassword)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Name != "Juan Pérez" {
		t.Fatalf("unexpected user %+v", user)
	}
	token, _ := local.Get(storage.KeyAuthToken)
	if token == "" {
		t.Fatalf("token not persisted")
	}
	if !auth.IsAuthenticated() {
		t.Fatalf("expected authenticated")
	}
}

func TestLoginValidatesInput(t *testing.T) {
	auth, _, _ := newAuth(t)
	_, err := auth.Login(context.Background(), "not-an-email", "x")
	apiErr, ok := err.(*transport.APIError)
	if !ok || apiErr.Code != transport.CodeBadRequest {
		t.Fatalf("expected bad request before any call, got %v", err)
	}
}

func TestLogoutAlwaysClearsLocalState(t *testing.T) {
	auth, _, local := newAuth(t)
	ctx := context.Background()

	if _, err := auth.Login(ctx, fixture.DemoEmail, fixture.DemoPassword); err != nil {
		t.Fatalf("login: %v", err)
	}
	_ = auth.SetTenant("t1")

	if ok := auth.Logout(ctx); !ok {
		t.Fatalf("expected logout to succeed")
	}
	token, _ := local.Get(storage.KeyAuthToken)
	tenant, _ := local.Get(storage.KeyTenantID)
	if token != "" || tenant != "" {
		t.Fatalf("local state not cleared: token=%q tenant=%q", token, tenant)
	}
}

func TestCurrentUserWithoutSession(t *testing.T) {
	auth, _, _ := newAuth(t)
	user, err := auth.CurrentUser(context.Background())
	if err != nil || user != nil {
		t.Fatalf("expected nil user without session, got %v %v", user, err)
	}
}

func TestCurrentUserDiscardsRejectedToken(t *testing.T) {
	auth, _, local := newAuth(t)
	_ = local.Set(storage.KeyAuthToken, "forged")

	user, err := auth.CurrentUser(context.Background())
	if err != nil || user != nil {
		t.Fatalf("expected nil user for rejected token, got %v %v", user, err)
	}
	token, _ := local.Get(storage.KeyAuthToken)
	if token != "" {
		t.Fatalf("rejected token kept in storage")
	}
}

func TestTicketActionsFastFail(t *testing.T) {
	_, tickets, _ := newAuth(t)
	ctx := context.Background()

	done := models.Ticket{ID: "x", Status: models.StatusCompleted}
	if _, err := tickets.Cancel(ctx, done); !transport.IsConflict(err) {
		t.Fatalf("expected local 409 for completed ticket, got %v", err)
	}
	waiting := models.Ticket{ID: "x", Status: models.StatusWaiting}
	if _, err := tickets.Resume(ctx, waiting); !transport.IsConflict(err) {
		t.Fatalf("expected local 409 resuming a waiting ticket, got %v", err)
	}
}

func TestJoinValidatesInput(t *testing.T) {
	_, tickets, _ := newAuth(t)
	_, err := tickets.Join(context.Background(), data.JoinQueueInput{})
	apiErr, ok := err.(*transport.APIError)
	if !ok || apiErr.Code != transport.CodeBadRequest {
		t.Fatalf("expected bad request for missing queue id, got %v", err)
	}

	_, err = tickets.Join(context.Background(), data.JoinQueueInput{QueueID: "1", CustomerEmail: "nope"})
	if apiErr, ok := err.(*transport.APIError); !ok || apiErr.Code != transport.CodeBadRequest {
		t.Fatalf("expected bad request for malformed email, got %v", err)
	}
}

func TestJoinAndCancelThroughServices(t *testing.T) {
	auth, tickets, _ := newAuth(t)
	ctx := context.Background()

	if _, err := auth.Login(ctx, fixture.DemoEmail, fixture.DemoPassword); err != nil {
		t.Fatalf("login: %v", err)
	}

	ticket, err := tickets.Join(ctx, data.JoinQueueInput{QueueID: "3"})
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if ticket.Position != 6 { // queue 3 seeds with 5 waiting
		t.Fatalf("position = %d, want 6", ticket.Position)
	}

	cancelled, err := tickets.Cancel(ctx, ticket)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != models.StatusCancelled {
		t.Fatalf("status = %s", cancelled.Status)
	}
}

func TestRegisterPushTokenSkipsDuplicate(t *testing.T) {
	auth, tickets, local := newAuth(t)
	ctx := context.Background()
	if _, err := auth.Login(ctx, fixture.DemoEmail, fixture.DemoPassword); err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := tickets.RegisterPushToken(ctx, "ExponentPushToken[a]"); err != nil {
		t.Fatalf("register push token: %v", err)
	}
	stored, _ := local.Get(storage.KeyPushToken)
	if stored != "ExponentPushToken[a]" {
		t.Fatalf("push token not remembered: %q", stored)
	}
	// Second call with the same token is a no-op.
	if err := tickets.RegisterPushToken(ctx, "ExponentPushToken[a]"); err != nil {
		t.Fatalf("duplicate register: %v", err)
	}
}

func TestSessionObservesAuthChanges(t *testing.T) {
	local := storage.NewMemoryStore()
	source := fixture.NewSource(fixture.NewStore(), local, 0)
	sessions := session.New(local)
	auth := NewAuth(source, local, sessions, zerolog.Nop())

	var states []session.State
	unsubscribe := sessions.Subscribe(func(s session.State) { states = append(states, s) })
	defer unsubscribe()

	ctx := context.Background()
	if _, err := auth.Login(ctx, fixture.DemoEmail, fixture.DemoPassword); err != nil {
		t.Fatalf("login: %v", err)
	}
	last := states[len(states)-1]
	if !last.Authenticated || last.User == nil || last.User.Email != fixture.DemoEmail {
		t.Fatalf("login not observed: %+v", last)
	}

	if err := auth.SetTenant("t1"); err != nil {
		t.Fatalf("set tenant: %v", err)
	}
	if states[len(states)-1].TenantID != "t1" {
		t.Fatalf("tenant change not observed")
	}

	auth.Logout(ctx)
	last = states[len(states)-1]
	if last.Authenticated || last.TenantID != "" {
		t.Fatalf("logout not observed: %+v", last)
	}
}
