package job

import (
	"Bastion/internal/pkg/consts"
	"Bastion/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// LikeReconcileJob repairs posts.like_count drift left by concurrent toggles
type LikeReconcileJob struct {
	postRepo repository.PostRepo
}

func NewLikeReconcileJob(postRepo repository.PostRepo) *LikeReconcileJob {
	return &LikeReconcileJob{postRepo: postRepo}
}

func (s *LikeReconcileJob) Run() {
	withLock("like-reconcile", consts.LikeReconcileLock, 5*time.Minute, func(ctx context.Context) error {
		n, err := s.postRepo.ReconcileLikeCounts(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			log.InfoContext(ctx, "like counts reconciled", "posts", n)
		}
		return nil
	})
}
