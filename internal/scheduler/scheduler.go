package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"minimart-pos/internal/config"
	"minimart-pos/internal/repository"
	"minimart-pos/internal/voice"
)

// Scheduler announces the daily summary every evening without anyone
// pressing the button - the spoken counterpart of closing the till.
type Scheduler struct {
	cron      *cron.Cron
	sales     *repository.SaleLedger
	settings  *repository.SettingsRepository
	announcer voice.Announcer
	log       *zap.Logger
}

func New(
	cfg config.ReportingConfig,
	sales *repository.SaleLedger,
	settings *repository.SettingsRepository,
	announcer voice.Announcer,
	log *zap.Logger,
) (*Scheduler, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	s := &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		sales:     sales,
		settings:  settings,
		announcer: announcer,
		log:       log,
	}

	if _, err := s.cron.AddFunc(cfg.CronSchedule, s.announceSummary); err != nil {
		return nil, fmt.Errorf("invalid summary schedule %q: %w", cfg.CronSchedule, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("daily summary scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) announceSummary() {
	ctx := context.Background()

	summary, err := s.sales.DailySummary(ctx)
	if err != nil {
		s.log.Error("failed to compute daily summary", zap.Error(err))
		return
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		s.log.Error("failed to read settings for summary", zap.Error(err))
		return
	}

	topProduct := ""
	if len(summary.TopProducts) > 0 {
		topProduct = summary.TopProducts[0].Name
	}

	s.announcer.Announce(voice.Event{
		Kind:       voice.KindDailySummary,
		Language:   settings.Language,
		Revenue:    summary.TotalRevenue,
		Profit:     summary.TotalProfit,
		TopProduct: topProduct,
	})
	s.log.Info("daily summary announced",
		zap.Float64("revenue", summary.TotalRevenue),
		zap.Int("transactions", summary.TotalTransactions))
}
