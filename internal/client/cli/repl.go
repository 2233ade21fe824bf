package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/onboard/internal/client/router"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Route() router.Route
	Navigate(ctx context.Context, path string) error
	Signup(ctx context.Context) error
	Verify(ctx context.Context) error
	Resend(ctx context.Context) error
	Cancel(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error
	List(ctx context.Context) error
	Toggle(ctx context.Context, row string) error
	Page(ctx context.Context, to string) error
	Status(ctx context.Context) error
}

// pages are the paths listed by help, in navigation order.
var pages = router.New().Routes()

// helpFor lists the commands that make sense on route, then the pages that
// "go" accepts.
func helpFor(route router.Route) string {
	paths := make([]string, len(pages))
	for i, p := range pages {
		paths[i] = string(p)
	}
	return commandsFor(route) + "\nPages: " + strings.Join(paths, " ")
}

func commandsFor(route router.Route) string {
	common := "go <path>, status, help, exit"
	switch route {
	case router.Signup:
		return "Available commands: signup, go /login, " + common
	case router.VerifyEmail:
		return "Available commands: verify, resend, cancel, " + common
	case router.Login:
		return "Available commands: login, go /forgot-password, go /signup, " + common
	case router.Interests:
		return "Available commands: (l)ist, toggle <n>, next, prev, page <n>, logout, " + common
	case router.ForgotPassword:
		return "Available commands: forgot, go /login, " + common
	case router.ResetPassword:
		return "Available commands: reset, go /login, " + common
	default:
		return "Available commands: " + common
	}
}

// runREPL starts a simple read–eval–print loop for the onboarding client.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are not printed here; handlers report
// their own failures. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("mk %s> ", statusFn()))
		line, err := readLine(in)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				printlnFn("input error:", err)
			}
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpFor(a.Route()))

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Navigate(ctx, args[0])

		case "signup":
			_ = a.Signup(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "resend":
			_ = a.Resend(ctx)

		case "cancel":
			_ = a.Cancel(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "toggle", "t":
			if len(args) == 0 {
				printlnFn("Usage: toggle <n>")
				continue
			}
			_ = a.Toggle(ctx, args[0])

		case "next", "prev":
			_ = a.Page(ctx, cmd)

		case "page":
			if len(args) == 0 {
				printlnFn("Usage: page <n>")
				continue
			}
			_ = a.Page(ctx, args[0])

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
