package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/onboard/internal/client/interests"
	"github.com/dmitrijs2005/onboard/internal/client/models"
	"github.com/dmitrijs2005/onboard/internal/client/router"
	"github.com/dmitrijs2005/onboard/internal/client/services"
	"github.com/dmitrijs2005/onboard/internal/client/session"
	"github.com/dmitrijs2005/onboard/internal/logging"
)

// SessionManager is the part of session.Manager the screens drive.
type SessionManager interface {
	Snapshot() session.Snapshot
	Signup(ctx context.Context, name, email, password string) error
	ResendOTP(ctx context.Context) error
	Verify(ctx context.Context, code string) error
	AbandonVerification()
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, password, confirmPassword, resetToken string) error
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	hintStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// ErrBusy is returned when a form is submitted while another request from
// this client is still outstanding.
var ErrBusy = errors.New("a request is already in progress")

type App struct {
	manager   SessionManager
	router    *router.Router
	catalogue *interests.Catalogue
	store     interests.Store
	log       logging.Logger
	reader    *bufio.Reader
	out       io.Writer

	route     router.Route
	query     url.Values
	page      int
	selection *interests.Selection
	inFlight  bool
}

func NewApp(m SessionManager, catalogue *interests.Catalogue, store interests.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	return &App{
		manager:   m,
		router:    router.New(),
		catalogue: catalogue,
		store:     store,
		log:       log.With("component", "cli"),
		reader:    bufio.NewReader(in),
		out:       out,
		route:     router.Root,
		page:      1,
	}
}

// Run shows the start screen and blocks in the REPL until the user exits.
// An authenticated user starts on the interests screen, everyone else on
// signup.
func (a *App) Run(ctx context.Context) {
	printlnFn(titleStyle.Render("Welcome to the marketplace") + " " + hintStyle.Render("(type 'help' for commands)"))

	start := string(router.Root)
	if a.manager.Snapshot().IsAuthenticated() {
		start = string(router.Interests)
	}
	_ = a.Navigate(ctx, start)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Route() router.Route { return a.route }

func (a *App) getStatus() string {
	snap := a.manager.Snapshot()
	s := string(a.route)
	switch {
	case snap.IsAuthenticated():
		s += " " + snap.Session.Email
	case snap.NeedsVerification():
		s += " verifying " + models.MaskEmail(snap.PendingEmail)
	}
	return fmt.Sprintf("(%s)", s)
}

// Navigate resolves path against the router and renders the resulting
// screen. Redirects applied by the router are reported to the user.
func (a *App) Navigate(ctx context.Context, path string) error {
	res := a.router.Resolve(path, a.manager.Snapshot().State)

	query, err := url.ParseQuery(res.Query)
	if err != nil {
		query = url.Values{}
	}
	a.route, a.query = res.Route, query
	if res.Redirected {
		a.log.Debug(ctx, "redirected", "from", path, "to", string(res.Route))
	}

	return a.render(ctx)
}

func (a *App) render(ctx context.Context) error {
	switch a.route {
	case router.Signup:
		printlnFn(titleStyle.Render("Create your account"))
		printlnFn(hintStyle.Render("Type 'signup' to fill in name, e-mail and password. Have an account? 'go /login'"))

	case router.VerifyEmail:
		printlnFn(titleStyle.Render("Verify your email"))
		snap := a.manager.Snapshot()
		if !snap.NeedsVerification() {
			printlnFn(hintStyle.Render("No verification in progress. Start with 'go /signup'."))
			return nil
		}
		printlnFn(fmt.Sprintf("Enter the %d digit code you have received on %s", session.CodeLength, models.MaskEmail(snap.PendingEmail)))
		printlnFn(hintStyle.Render("Type 'verify' to enter it or 'resend' for a new code."))

	case router.Login:
		printlnFn(titleStyle.Render("Login"))
		printlnFn(hintStyle.Render("Type 'login'. Forgot your password? 'go /forgot-password'. New here? 'go /signup'"))

	case router.Interests:
		a.page = 1
		return a.List(ctx)

	case router.ForgotPassword:
		printlnFn(titleStyle.Render("Forgot password"))
		printlnFn(hintStyle.Render("Type 'forgot' and we will e-mail you a reset link."))

	case router.ResetPassword:
		printlnFn(titleStyle.Render("Choose a new password"))
		printlnFn(hintStyle.Render("Type 'reset' to set it."))

	default:
		printlnFn(titleStyle.Render("404") + " Oops! Page not found")
		printlnFn(hintStyle.Render("Type 'go /' to return home."))
	}
	return nil
}

// submit runs fn with the in-flight flag raised. A second submission while
// the flag is up is refused, and the flag is always lowered afterwards.
func (a *App) submit(fn func() error) error {
	if a.inFlight {
		return ErrBusy
	}
	a.inFlight = true
	defer func() { a.inFlight = false }()
	return fn()
}

// report prints the inline message for a failed form. Backend failures are
// already announced by the notifier, so only fallback is shown for them.
func (a *App) report(err error, fallback string) error {
	var v *services.ValidationError
	switch {
	case errors.As(err, &v):
		printlnFn(errorStyle.Render(v.Reason))
	case errors.Is(err, ErrBusy),
		errors.Is(err, session.ErrInFlight),
		errors.Is(err, session.ErrAlreadyAuthenticated),
		errors.Is(err, session.ErrNoPendingVerification):
		printlnFn(errorStyle.Render(capitalize(err.Error())))
	default:
		printlnFn(errorStyle.Render(fallback))
	}
	return err
}

func (a *App) expect(route router.Route, cmd string) bool {
	if a.route == route {
		return true
	}
	printlnFn(fmt.Sprintf("'%s' is not available here. Try 'go %s'.", cmd, route))
	return false
}

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

// promptSecret reads a password and returns it as a string. The raw bytes
// are wiped before returning.
func (a *App) promptSecret(label string) (string, error) {
	pw, err := getPassword(a.reader, label, a.out)
	if err != nil {
		return "", err
	}
	defer wipe(pw)
	return string(pw), nil
}

// Status prints the auth state.
func (a *App) Status(context.Context) error {
	snap := a.manager.Snapshot()
	printlnFn("State:", snap.State.String())
	switch {
	case snap.IsAuthenticated():
		s := snap.Session
		name := s.DisplayName
		if name == "" {
			name = s.Email
		}
		printlnFn("User:", name, "<"+s.Email+">")
		if s.AvatarURL != "" {
			printlnFn("Avatar:", s.AvatarURL)
		}
	case snap.NeedsVerification():
		printlnFn("Verifying:", models.MaskEmail(snap.PendingEmail))
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
