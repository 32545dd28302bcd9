package session

import (
	"testing"

	"github.com/tetoca/tetoca-go/internal/models"
	"github.com/tetoca/tetoca-go/internal/storage"
)

func TestSeedsFromStorage(t *testing.T) {
	local := storage.NewMemoryStore()
	_ = local.Set(storage.KeyAuthToken, "tok")
	_ = local.Set(storage.KeyTenantID, "t2")

	m := New(local)
	state := m.Current()
	if !state.Authenticated || state.TenantID != "t2" {
		t.Fatalf("unexpected seeded state %+v", state)
	}
}

func TestSubscribeGetsCurrentStateImmediately(t *testing.T) {
	m := New(storage.NewMemoryStore())
	var got []State
	unsubscribe := m.Subscribe(func(s State) { got = append(got, s) })
	defer unsubscribe()

	if len(got) != 1 || got[0].Authenticated {
		t.Fatalf("expected one initial callback with empty state, got %+v", got)
	}
}

func TestSignInNotifiesListeners(t *testing.T) {
	m := New(storage.NewMemoryStore())
	var got []State
	unsubscribe := m.Subscribe(func(s State) { got = append(got, s) })
	defer unsubscribe()

	m.SignIn(models.User{ID: "u1", Name: "Juan"})
	last := got[len(got)-1]
	if !last.Authenticated || last.User == nil || last.User.ID != "u1" {
		t.Fatalf("sign-in not observed: %+v", last)
	}

	m.SignOut()
	last = got[len(got)-1]
	if last.Authenticated || last.User != nil || last.TenantID != "" {
		t.Fatalf("sign-out not observed: %+v", last)
	}
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	m := New(storage.NewMemoryStore())
	calls := 0
	unsubscribe := m.Subscribe(func(State) { calls++ })
	unsubscribe()

	m.SetTenant("t1")
	if calls != 1 {
		t.Fatalf("expected only the initial callback, got %d", calls)
	}
	if m.Current().TenantID != "t1" {
		t.Fatalf("tenant not recorded")
	}
}
