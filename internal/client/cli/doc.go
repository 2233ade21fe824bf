// Package cli provides the interactive onboarding client.
//
// Each screen of the onboarding flow (signup, e-mail verification, login,
// interests, forgot and reset password) is a REPL route. Navigation goes
// through the router, so the auth guard is applied on every move. Form
// commands prompt for their fields and call the session manager; progress
// and outcome banners come from the notifier wired into the auth service.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
