// Package delivery abstracts the outbound nudge channels. The engine
// only sees Send; what a send means (a chat message, a queued row) is
// the channel's business.
package delivery

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/nudge-worker/internal/models"
)

var ErrNoDestination = errors.New("no destination configured for channel")

// Channel delivers one nudge text to one user.
type Channel interface {
	Send(ctx context.Context, user *models.UserContext, text string) error
}
