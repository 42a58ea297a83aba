// Package scheduler keeps the per-section cache warm so first requests
// after TTL expiry rarely pay the aggregation cost.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"emarknews/internal/article"
	"emarknews/internal/feed"
	"emarknews/internal/logger"
)

type Scheduler struct {
	cron  *cron.Cron
	feeds *feed.Service
}

// New schedules a preload of every section on the given cron spec
// (supports "@every 9m50s" style intervals).
func New(spec string, feeds *feed.Service) (*Scheduler, error) {
	c := cron.New()
	s := &Scheduler{cron: c, feeds: feeds}

	if _, err := c.AddFunc(spec, s.runOnce); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	// Warm the cache shortly after boot without competing with the first
	// page loads.
	time.AfterFunc(15*time.Second, func() {
		go s.runOnce()
	})
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runOnce() {
	logger.Info("cache preload starting", "sections", len(article.Sections))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	for _, section := range article.Sections {
		if err := s.feeds.Refresh(ctx, section); err != nil {
			logger.Warn("preload failed", "section", section, "error", err)
		}
	}
	logger.Info("cache preload done")
}
