package session

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/onboard/internal/client/client"
	"github.com/dmitrijs2005/onboard/internal/client/notify"
	"github.com/dmitrijs2005/onboard/internal/client/services"
	"github.com/dmitrijs2005/onboard/internal/client/storage"
	"github.com/dmitrijs2005/onboard/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// stubBackend imitates the auth backend: one registered user, a fixed OTP,
// and a set of e-mails that already have an account.
type stubBackend struct {
	mu       sync.Mutex
	users    map[string]string
	otp      string
	requests map[string]int
}

func newStubBackend() *stubBackend {
	return &stubBackend{
		users:    map[string]string{"ada@example.com": "correct-horse"},
		otp:      "12345678",
		requests: map[string]int{},
	}
}

func (b *stubBackend) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return tok
}

func (b *stubBackend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests[path]
}

func (b *stubBackend) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests[r.URL.Path]++
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func reply(w http.ResponseWriter, r *http.Request, status int, v render.M) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func (b *stubBackend) handler(t *testing.T) http.Handler {
	mux := chi.NewRouter()
	mux.Use(b.countRequests)

	mux.Post("/auth/send-otp", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email string }
		_ = render.DecodeJSON(r.Body, &req)
		b.mu.Lock()
		_, exists := b.users[req.Email]
		b.mu.Unlock()
		if exists {
			reply(w, r, http.StatusOK, render.M{"success": false, "message": "Email already registered"})
			return
		}
		reply(w, r, http.StatusOK, render.M{"success": true, "message": "OTP sent"})
	})
	mux.Post("/auth/signup", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Name, Email, Password, OTP string }
		_ = render.DecodeJSON(r.Body, &req)
		if req.OTP != b.otp {
			reply(w, r, http.StatusBadRequest, render.M{"success": false, "message": "Invalid OTP"})
			return
		}
		b.mu.Lock()
		b.users[req.Email] = req.Password
		b.mu.Unlock()
		reply(w, r, http.StatusOK, render.M{
			"success": true,
			"token":   b.token(t, "new-"+req.Email),
			"user":    render.M{"_id": "new-" + req.Email, "email": req.Email, "firstName": req.Name},
		})
	})
	mux.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct{ Email, Password string }
		_ = render.DecodeJSON(r.Body, &req)
		b.mu.Lock()
		pw, ok := b.users[req.Email]
		b.mu.Unlock()
		if !ok || pw != req.Password {
			reply(w, r, http.StatusUnauthorized, render.M{"success": false, "message": "Invalid credentials"})
			return
		}
		reply(w, r, http.StatusOK, render.M{
			"success": true,
			"token":   b.token(t, "id-"+req.Email),
			"user":    render.M{"_id": "id-" + req.Email, "email": req.Email, "firstName": "Ada"},
		})
	})

	return mux
}

type harness struct {
	backend *stubBackend
	db      *sql.DB
	store   *storage.SessionStore
	rec     *notify.Recorder
	manager *Manager
	newMgr  func() *Manager
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	backend := newStubBackend()
	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)

	db, err := storage.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	transport, err := client.NewHTTPClient(srv.URL, 2*time.Second)
	require.NoError(t, err)

	store := storage.NewSessionStore(db)
	rec := &notify.Recorder{}
	newMgr := func() *Manager {
		svc := services.NewAuthService(client.NewAPI(transport), store, rec, logging.Nop())
		return NewManager(svc, store, logging.Nop())
	}

	return &harness{backend: backend, db: db, store: store, rec: rec, manager: newMgr(), newMgr: newMgr}
}

func (h *harness) stored(t *testing.T, key string) bool {
	t.Helper()
	var n int
	require.NoError(t, h.db.QueryRow(`SELECT COUNT(*) FROM kv WHERE key = ?`, key).Scan(&n))
	return n > 0
}
