// Package models defines the client-side data model: the authenticated
// session, the pending e-mail verification, the interest catalogue entries,
// and the wire DTOs exchanged with the backend.
package models

import "strings"

// Session is the authenticated user's identity for the lifetime of the
// process. It is mirrored to local storage (key "user") so that a restart
// can rebuild it without a network call.
type Session struct {
	UserID      string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// PendingVerification is the signup flow waiting for the e-mailed one-time
// code. Drafts live only in memory and are dropped when verification
// succeeds or is abandoned.
type PendingVerification struct {
	Email         string
	NameDraft     string
	PasswordDraft string
}

// Wipe clears the password draft.
func (p *PendingVerification) Wipe() {
	if p == nil {
		return
	}
	p.PasswordDraft = ""
}

// MaskEmail hides all but the first three characters of the local part:
// "johnny@example.com" becomes "joh***@example.com". Addresses that do not
// have at least three characters before '@' are returned unchanged.
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 3 {
		return email
	}
	return email[:3] + "***" + email[at:]
}
