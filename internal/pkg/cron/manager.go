package cron

import (
	"Bastion/internal/api/config"
	"Bastion/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type scheduledJob struct {
	name string
	spec string
	job  cron.Job
}

type Manager struct {
	engine               *cron.Cron
	cfg                  config.JobsConfig
	likeReconcileJob     *job.LikeReconcileJob
	notificationPurgeJob *job.NotificationPurgeJob
	cveDigestJob         *job.CVEDigestJob
}

// NewCronManager cveDigestJob may be nil when no feed is configured
func NewCronManager(
	cfg config.JobsConfig,
	likeReconcileJob *job.LikeReconcileJob,
	notificationPurgeJob *job.NotificationPurgeJob,
	cveDigestJob *job.CVEDigestJob,
) *Manager {
	return &Manager{
		engine:               cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		cfg:                  cfg,
		likeReconcileJob:     likeReconcileJob,
		notificationPurgeJob: notificationPurgeJob,
		cveDigestJob:         cveDigestJob,
	}
}

// RegisterJobs an empty spec disables that job
func (s *Manager) RegisterJobs() error {
	jobs := []scheduledJob{
		{"like-reconcile", s.cfg.LikeReconcileSpec, s.likeReconcileJob},
		{"notification-purge", s.cfg.NotificationPurgeSpec, s.notificationPurgeJob},
	}
	if s.cveDigestJob != nil {
		jobs = append(jobs, scheduledJob{"cve-digest", s.cfg.CVEDigestSpec, s.cveDigestJob})
	}

	for _, j := range jobs {
		if j.spec == "" {
			log.Info("cron job disabled", "job", j.name)
			continue
		}
		if _, err := s.engine.AddJob(j.spec, j.job); err != nil {
			return err
		}
		log.Info("cron job registered", "job", j.name, "spec", j.spec)
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine starting")
	s.engine.Start()
}

// Stop waits for running jobs to finish
func (s *Manager) Stop() {
	log.Info("Cron engine stopping")
	<-s.engine.Stop().Done()
}
