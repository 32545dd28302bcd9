package stub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/tetoca/tetoca-go/internal/data/fixture"
)

func newRouter(t *testing.T) (*gin.Engine, *fixture.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := fixture.NewStore()
	return Router(store, zerolog.Nop(), Options{}), store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/user/login", "",
		`{"email":"`+fixture.DemoEmail+`","password":"`+fixture.DemoPassword+`"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login status %d: %s", w.Code, w.Body.String())
	}
	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session.Token
}

func TestLoginEndpoint(t *testing.T) {
	r, _ := newRouter(t)
	if token := login(t, r); token == "" {
		t.Fatalf("expected token")
	}

	w := doJSON(t, r, http.MethodPost, "/auth/user/login", "",
		`{"email":"`+fixture.DemoEmail+`","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/auth/user/login", "", `{"email":"not-an-email"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload, got %d", w.Code)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r, _ := newRouter(t)
	w := doJSON(t, r, http.MethodPost, "/auth/user/register", "",
		`{"name":"Ana","email":"ana@email.com","password":"secreto"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status %d: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/auth/user/register", "",
		`{"name":"Ana","email":"ana@email.com","password":"secreto"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestJoinRequiresToken(t *testing.T) {
	r, _ := newRouter(t)
	w := doJSON(t, r, http.MethodPost, "/queues/1/join", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestJoinUnknownQueue(t *testing.T) {
	r, _ := newRouter(t)
	token := login(t, r)
	w := doJSON(t, r, http.MethodPost, "/queues/999/join", token, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var payload struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload.Error.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND code, got %s", payload.Error.Code)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	r, _ := newRouter(t)
	w := doJSON(t, r, http.MethodGet, "/public/companies/search", "", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/public/companies/search?q=bcp", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestTenantScopedCompanies(t *testing.T) {
	r, _ := newRouter(t)
	w := doJSON(t, r, http.MethodGet, "/tenant/t2/public/companies", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var payload struct {
		Data []struct {
			ShortName string `json:"shortName"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Data) != 1 || payload.Data[0].ShortName != "RENIEC" {
		t.Fatalf("tenant filter not applied: %+v", payload.Data)
	}
}

func TestCancelFlowOverHTTP(t *testing.T) {
	r, _ := newRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodPost, "/queues/1/join", token, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("join status %d: %s", w.Code, w.Body.String())
	}
	var joined struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &joined); err != nil {
		t.Fatalf("decode ticket: %v", err)
	}

	w = doJSON(t, r, http.MethodDelete, "/tickets/"+joined.Data.ID+"/cancel", token, "")
	if w.Code != http.StatusOK {
		t.Fatalf("cancel status %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/tickets/"+joined.Data.ID+"/cancel", token, "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on double cancel, got %d", w.Code)
	}
}
