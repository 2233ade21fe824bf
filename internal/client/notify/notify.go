// Package notify renders the side-channel banners shown while an auth
// operation runs: a loading banner first, dismissed before the success or
// error banner.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Notifier receives banner events in order.
type Notifier interface {
	Loading(msg string)
	Dismiss()
	Success(msg string)
	Error(msg string)
}

var (
	loadingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// Terminal writes banners to w, one per line.
type Terminal struct {
	mu      sync.Mutex
	w       io.Writer
	loading bool
}

func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Loading(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = true
	fmt.Fprintln(t.w, loadingStyle.Render("… "+msg))
}

func (t *Terminal) Dismiss() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false
}

func (t *Terminal) Success(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, successStyle.Render("✔ "+msg))
}

func (t *Terminal) Error(msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintln(t.w, errorStyle.Render("✖ "+msg))
}

// Kind identifies a recorded event.
type Kind string

const (
	KindLoading Kind = "loading"
	KindDismiss Kind = "dismiss"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

type Event struct {
	Kind    Kind
	Message string
}

// Recorder keeps every event in memory. Useful in tests and for callers
// that want to inspect the last outcome.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) add(k Kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{Kind: k, Message: msg})
}

func (r *Recorder) Loading(msg string) { r.add(KindLoading, msg) }
func (r *Recorder) Dismiss()           { r.add(KindDismiss, "") }
func (r *Recorder) Success(msg string) { r.add(KindSuccess, msg) }
func (r *Recorder) Error(msg string)   { r.add(KindError, msg) }

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Last returns the most recent event, or the zero Event.
func (r *Recorder) Last() Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return Event{}
	}
	return r.events[len(r.events)-1]
}
