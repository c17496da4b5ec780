package cron

import (
	"Skylark/internal/api/config"
	"Skylark/internal/job"
	"fmt"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine   *cron.Cron
	trendJob *job.TrendJob
	cfg      *config.Config
}

func NewCronManager(trendJob *job.TrendJob, cfg *config.Config) *Manager {
	return &Manager{
		engine:   cron.New(cron.WithSeconds()),
		trendJob: trendJob,
		cfg:      cfg,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	interval := s.cfg.Trend.IntervalSeconds
	if interval <= 0 {
		interval = 30
	}
	if _, err := s.engine.AddJob(fmt.Sprintf("@every %ds", interval), s.trendJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
