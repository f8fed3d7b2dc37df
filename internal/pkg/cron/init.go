package cron

import (
	"fmt"
	log "log/slog"
)

// InitCron 注册并启动全部定时任务
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return fmt.Errorf("register cron jobs: %w", err)
	}
	log.Info("Cron Jobs starting...", "top10", mgr.cfg.Top10Spec, "image_cleanup", mgr.cfg.ImageCleanupSpec)
	mgr.Start()
	return nil
}
