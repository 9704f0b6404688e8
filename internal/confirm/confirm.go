// Package confirm defines the confirmation-host boundary: a collaborator
// that presents a modal dialog and delivers at most one user response. The
// workflow owns none of the presentation; it only opens dialogs and waits.
package confirm

import "context"

// Dialog identifies which modal to present.
type Dialog string

const (
	DialogSeasonalService    Dialog = "seasonal-service"
	DialogEarlyFlight        Dialog = "early-flight"
	DialogClubUpsell         Dialog = "club-upsell"
	DialogInsufficientPoints Dialog = "insufficient-points"
	DialogModifyFlight       Dialog = "modify-flight"
)

// Options carries the initial display state for a dialog.
type Options struct {
	Fields map[string]any
}

// Response is the user's answer. Which fields are meaningful depends on the
// dialog; Answered distinguishes a real answer from a dismissal.
type Response struct {
	Answered                bool    `json:"answered"`
	Confirmed               bool    `json:"confirmed"`
	Continue                bool    `json:"continue"`
	PointCash               bool    `json:"pointCash"`
	Password                string  `json:"password,omitempty"`
	LoggedInPersonOnBooking bool    `json:"loggedInPersonOnBooking"`
	LoggedInAsClub          bool    `json:"loggedInAsClub"`
	UpdatedBalance          float64 `json:"updatedBalance,omitempty"`
}

// Host opens dialogs. The returned channel delivers at most one response;
// a channel closed without a value means the user dismissed the dialog.
// Callers must ignore anything after the first value.
type Host interface {
	Open(ctx context.Context, dialog Dialog, opts Options) (<-chan Response, error)
}

// Await takes the single response the workflow is allowed to act on.
// Dismissal and context cancellation both read as "declined".
func Await(ctx context.Context, ch <-chan Response) (Response, bool) {
	select {
	case resp, ok := <-ch:
		if !ok {
			return Response{}, false
		}
		return resp, true
	case <-ctx.Done():
		return Response{}, false
	}
}
