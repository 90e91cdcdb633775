// DTOs for the AI usage quota gate.
package dto

import "time"

// QuotaStatus is attached to successful AI-analysis responses so the client
// can render "N requests remaining".
type QuotaStatus struct {
	Used  int `json:"used"`
	Limit int `json:"limit"` // -1 = unlimited
}

// QuotaExceededError is returned by the quota gate when a caller is over
// their daily limit. Guest distinguishes anonymous callers so the client can
// show a sign-in prompt instead of an upgrade prompt.
type QuotaExceededError struct {
	Limit    int       `json:"limit"`
	Used     int       `json:"used"`
	Guest    bool      `json:"guest"`
	ResetsAt time.Time `json:"resets_at"`
}

func (e *QuotaExceededError) Error() string {
	if e.Guest {
		return "daily guest limit reached"
	}
	return "daily usage limit reached"
}
