package bus

import (
	"context"

	"github.com/moodtunes/moodtunes-backend/internal/realtime"
)

// Bus is the producer side of the dialogue event stream. Consumers (the
// recommendation engine, analytics) subscribe from their own deployments.
type Bus interface {
	Publish(ctx context.Context, msg realtime.Message) error
	Close() error
}
