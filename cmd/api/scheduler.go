package main

import (
	"fmt"

	"bookstore-storefront/pkg/container"
	"bookstore-storefront/pkg/logger"

	"github.com/robfig/cron/v3"
)

// startSweeper schedules eviction of idle in-memory session state.
func startSweeper(c *container.Container) (*cron.Cron, error) {
	scheduler := cron.New()

	schedule := c.Config.Session.SweepSchedule
	if _, err := scheduler.AddFunc(schedule, c.SweepIdle); err != nil {
		return nil, fmt.Errorf("register sweep %q: %w", schedule, err)
	}

	scheduler.Start()
	logger.Info("session sweeper started", map[string]interface{}{"schedule": schedule})
	return scheduler, nil
}
