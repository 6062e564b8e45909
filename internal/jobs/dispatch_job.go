package job

import (
	"context"
	"log/slog"

	"github.com/hilit308-creator/autosocial/internal/service"
)

// DispatchJob is the cron-driven safety net behind the task queue: any
// scheduled post whose time passed without a queue delivery gets picked
// up on the next sweep.
type DispatchJob struct {
	ps service.PublishService
}

func NewDispatchJob(ps service.PublishService) *DispatchJob {
	return &DispatchJob{ps: ps}
}

func (j *DispatchJob) Run() {
	ctx := context.Background()

	outcomes, err := j.ps.ProcessScheduled(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	for _, o := range outcomes {
		if o.Error != "" {
			slog.Info("dispatch failed", "post_id", o.PostID, "error", o.Error)
			continue
		}
		for _, r := range o.Results {
			if !r.Success {
				slog.Info("platform publish failed", "post_id", o.PostID, "platform", r.Platform, "error", r.Error)
			}
		}
	}
}
