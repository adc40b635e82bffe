package app

import (
	"fmt"
	"strings"

	"github.com/moodtunes/moodtunes-backend/internal/platform/logger"
	"github.com/moodtunes/moodtunes-backend/internal/realtime/bus"
)

type Clients struct {
	Bus bus.Bus
}

// wireClients builds the external connections. The dialogue bus is optional:
// without REDIS_ADDR events are dropped and the service still runs.
func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	var b bus.Bus
	if strings.TrimSpace(cfg.RedisAddr) != "" {
		rb, err := bus.NewRedisBus(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init dialogue bus: %w", err)
		}
		b = rb
	} else {
		log.Warn("REDIS_ADDR not set, dialogue events disabled")
	}

	return Clients{Bus: b}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Bus != nil {
		_ = c.Bus.Close()
	}
}
