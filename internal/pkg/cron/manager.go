package cron

import (
	"Community/internal/api/config"
	"Community/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	cfg             config.CronConfig
	top10Job        *job.Top10RefreshJob
	imageCleanupJob *job.ImageCleanupJob
}

func NewCronManager(cfg config.CronConfig, top10Job *job.Top10RefreshJob, imageCleanupJob *job.ImageCleanupJob) *Manager {
	return &Manager{
		engine:          cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		cfg:             cfg,
		top10Job:        top10Job,
		imageCleanupJob: imageCleanupJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.cfg.Top10Spec, s.top10Job); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(s.cfg.ImageCleanupSpec, s.imageCleanupJob); err != nil {
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
	<-s.engine.Stop().Done()
}
