package session

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/onboard/internal/client/models"
	"github.com/dmitrijs2005/onboard/internal/client/services"
	"github.com/dmitrijs2005/onboard/internal/client/storage"
	"github.com/dmitrijs2005/onboard/internal/client/tokens"
	"github.com/dmitrijs2005/onboard/internal/logging"
)

const (
	// CodeLength is the exact length of the e-mailed verification code.
	CodeLength = 8
	// MinPasswordLength applies to signup and password reset.
	MinPasswordLength = 6
)

var (
	ErrInFlight              = errors.New("another auth operation is in progress")
	ErrAlreadyAuthenticated  = errors.New("already logged in")
	ErrNoPendingVerification = errors.New("no verification in progress")
)

// Store is the read side of local storage used at startup.
type Store interface {
	LoadSession(ctx context.Context) (string, *models.Session, error)
	ClearSession(ctx context.Context) error
}

// Manager owns the auth state. Operations are serialised: a second call
// while one is outstanding fails fast with ErrInFlight. Every operation
// either changes the state exactly once or leaves it as it was.
type Manager struct {
	auth  services.AuthService
	store Store
	log   logging.Logger
	now   func() time.Time

	op sync.Mutex

	mu      sync.RWMutex
	session *models.Session
	pending *models.PendingVerification
}

func NewManager(auth services.AuthService, store Store, log logging.Logger) *Manager {
	return &Manager{
		auth:  auth,
		store: store,
		log:   log.With("component", "session"),
		now:   time.Now,
	}
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch {
	case m.session != nil:
		s := *m.session
		return Snapshot{State: Authenticated, Session: &s}
	case m.pending != nil:
		return Snapshot{State: PendingVerification, PendingEmail: m.pending.Email}
	default:
		return Snapshot{State: Anonymous}
	}
}

func (m *Manager) State() State             { return m.Snapshot().State }
func (m *Manager) IsAuthenticated() bool    { return m.Snapshot().IsAuthenticated() }
func (m *Manager) NeedsVerification() bool  { return m.Snapshot().NeedsVerification() }
func (m *Manager) PendingEmail() string     { return m.Snapshot().PendingEmail }
func (m *Manager) Session() *models.Session { return m.Snapshot().Session }

func (m *Manager) begin() (func(), error) {
	if !m.op.TryLock() {
		return nil, ErrInFlight
	}
	return m.op.Unlock, nil
}

func (m *Manager) setSession(s models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	m.pending.Wipe()
	m.pending = nil
}

func (m *Manager) reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	m.pending.Wipe()
	m.pending = nil
}

// Restore rebuilds the state from local storage without any network call.
// The token is always decoded, even when a profile is stored next to it.
// Anything unreadable (corrupt profile, undecodable or expired token) is
// wiped and the state stays Anonymous. Only storage I/O errors are returned.
func (m *Manager) Restore(ctx context.Context) error {
	unlock, err := m.begin()
	if err != nil {
		return err
	}
	defer unlock()

	m.reset()

	token, s, err := m.store.LoadSession(ctx)
	switch {
	case errors.Is(err, storage.ErrNoSession):
		return m.discard(ctx, "no token")
	case errors.Is(err, storage.ErrCorrupted):
		return m.discard(ctx, err.Error())
	case err != nil:
		return fmt.Errorf("restore session: %w", err)
	}

	claims, err := tokens.Decode(token)
	if err != nil {
		return m.discard(ctx, err.Error())
	}
	if claims.ExpiredAt(m.now()) {
		return m.discard(ctx, "token expired")
	}

	if s == nil {
		id := claims.Identifier()
		if id == "" {
			return m.discard(ctx, "token names no user")
		}
		s = &models.Session{UserID: id}
	}

	m.setSession(*s)
	m.log.Info(ctx, "session restored", "user_id", s.UserID)
	return nil
}

// discard wipes whatever is stored so that token and profile never survive
// without each other.
func (m *Manager) discard(ctx context.Context, reason string) error {
	if err := m.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear stored session: %w", err)
	}
	m.log.Debug(ctx, "stored session discarded", "reason", reason)
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return &services.ValidationError{Field: "email", Reason: "Email is required"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &services.ValidationError{Field: "email", Reason: "Email is invalid"}
	}
	return nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &services.ValidationError{Field: field, Reason: strings.ToUpper(field[:1]) + field[1:] + " is required"}
	}
	return nil
}

func validatePassword(field, password string) error {
	if err := required(field, password); err != nil {
		return err
	}
	if len(password) < MinPasswordLength {
		return &services.ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("Password must be at least %d characters", MinPasswordLength),
		}
	}
	return nil
}

// SendOTP requests a code for email and moves to PendingVerification(email).
func (m *Manager) SendOTP(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	return m.startVerification(ctx, models.PendingVerification{Email: email})
}

// Signup keeps name and password in memory for the verification step and
// requests a code for email.
func (m *Manager) Signup(ctx context.Context, name, email, password string) error {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if err := required("name", name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword("password", password); err != nil {
		return err
	}
	return m.startVerification(ctx, models.PendingVerification{Email: email, NameDraft: name, PasswordDraft: password})
}

func (m *Manager) startVerification(ctx context.Context, draft models.PendingVerification) error {
	unlock, err := m.begin()
	if err != nil {
		return err
	}
	defer unlock()

	if m.IsAuthenticated() {
		return ErrAlreadyAuthenticated
	}

	if err := m.auth.SendOTP(ctx, draft.Email); err != nil {
		return err
	}

	m.mu.Lock()
	m.pending.Wipe()
	m.pending = &draft
	m.mu.Unlock()
	return nil
}

// ResendOTP asks for a new code for the pending e-mail.
func (m *Manager) ResendOTP(ctx context.Context) error {
	unlock, err := m.begin()
	if err != nil {
		return err
	}
	defer unlock()

	email := m.PendingEmail()
	if email == "" {
		return ErrNoPendingVerification
	}
	return m.auth.SendOTP(ctx, email)
}

// Verify confirms code and moves to Authenticated. The code must be exactly
// CodeLength characters; anything else is rejected before any request.
func (m *Manager) Verify(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if len([]rune(code)) != CodeLength {
		return &services.ValidationError{
			Field:  "code",
			Reason: fmt.Sprintf("Please enter the complete %d-digit code", CodeLength),
		}
	}

	unlock, err := m.begin()
	if err != nil {
		return err
	}
	defer unlock()

	m.mu.RLock()
	var draft models.PendingVerification
	if m.pending != nil {
		draft = *m.pending
	}
	m.mu.RUnlock()

	if draft.Email == "" {
		return ErrNoPendingVerification
	}

	return m.auth.SignUp(ctx, draft, code, m.setSession)
}

// AbandonVerification drops the pending verification and its drafts.
func (m *Manager) AbandonVerification() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending.Wipe()
	m.pending = nil
}

// Close wipes any in-memory drafts. The stored session is left alone so the
// next start can restore it.
func (m *Manager) Close() {
	m.AbandonVerification()
}

// Login authenticates and moves to Authenticated.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := required("password", password); err != nil {
		return err
	}

	unlock, err := m.begin()
	if err != nil {
		return err
	}
	defer unlock()

	if m.IsAuthenticated() {
		return ErrAlreadyAuthenticated
	}
	return m.auth.Login(ctx, email, password, m.setSession)
}

// Logout wipes the stored credential and returns to Anonymous.
func (m *Manager) Logout(ctx context.Context) error {
	unlock, err := m.begin()
	if err != nil {
		return err
	}
	defer unlock()

	return m.auth.Logout(ctx, m.reset)
}

// ForgotPassword requests a reset e-mail. The auth state does not change.
func (m *Manager) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return err
	}

	unlock, err := m.begin()
	if err != nil {
		return err
	}
	defer unlock()

	return m.auth.ForgotPassword(ctx, email)
}

// ResetPassword sets a new password with the e-mailed reset token. The auth
// state does not change.
func (m *Manager) ResetPassword(ctx context.Context, password, confirmPassword, resetToken string) error {
	if err := validatePassword("password", password); err != nil {
		return err
	}
	if password != confirmPassword {
		return &services.ValidationError{Field: "confirmPassword", Reason: "Passwords do not match"}
	}
	if err := required("token", resetToken); err != nil {
		return err
	}

	unlock, err := m.begin()
	if err != nil {
		return err
	}
	defer unlock()

	return m.auth.ResetPassword(ctx, password, confirmPassword, strings.TrimSpace(resetToken))
}
