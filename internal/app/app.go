package app

import (
	"fmt"

	"github.com/you/tutorportal/domain"
	"github.com/you/tutorportal/internal/config"
)

// Start loads the configuration from the working directory and builds a
// container with session event reporting attached.
func Start() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return Build(cfg)
}

// Build wires a container for cfg
func Build(cfg *config.Config) (*Container, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, err
	}
	c.Store.Subscribe(domain.SessionObserverFunc(c.onSessionEvent))
	c.Logger.Debug("container ready", map[string]interface{}{"api": cfg.APIBaseURL, "env": cfg.Env})
	return c, nil
}

func (c *Container) onSessionEvent(event domain.SessionEvent) {
	switch event.Type {
	case domain.SessionRefreshFailedEvent:
		c.Logger.Warn("session refresh failed", map[string]interface{}{
			"client": event.Client, "role": event.Role.String(), "error": event.ErrorMsg,
		})
		c.Notifier.Error("Your session has expired. Please log in again.")
	case domain.SessionProfileEvent:
		c.Logger.Info("student profile loaded", c.Store.Snapshot().Profile)
	default:
		c.Logger.Debug("session event", map[string]interface{}{
			"type": string(event.Type), "role": event.Role.String(), "client": event.Client,
		})
	}
}
