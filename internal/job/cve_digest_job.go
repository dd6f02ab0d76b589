package job

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/pkg/consts"
	"Bastion/internal/service"
	"context"
	"fmt"
	log "log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const cveSummaryMax = 140

// cveEntry accepts both the legacy {id, summary} shape and the CVE 5 record shape
type cveEntry struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	CveMetadata struct {
		CveID string `json:"cveId"`
	} `json:"cveMetadata"`
	Containers struct {
		Cna struct {
			Title        string `json:"title"`
			Descriptions []struct {
				Value string `json:"value"`
			} `json:"descriptions"`
		} `json:"cna"`
	} `json:"containers"`
}

func (e *cveEntry) cveID() string {
	if e.ID != "" {
		return e.ID
	}
	return e.CveMetadata.CveID
}

func (e *cveEntry) summary() string {
	s := e.Summary
	if s == "" {
		s = e.Containers.Cna.Title
	}
	if s == "" && len(e.Containers.Cna.Descriptions) > 0 {
		s = e.Containers.Cna.Descriptions[0].Value
	}
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > cveSummaryMax {
		s = string(r[:cveSummaryMax]) + "..."
	}
	return s
}

// CVEDigestJob posts the latest CVEs as one universal system notification
type CVEDigestJob struct {
	notificationSvc service.NotificationService
	client          *resty.Client
	feedURL         string
	limit           int
}

func NewCVEDigestJob(notificationSvc service.NotificationService, feedURL string, limit int) *CVEDigestJob {
	if limit <= 0 {
		limit = 5
	}
	return &CVEDigestJob{
		notificationSvc: notificationSvc,
		client:          resty.New().SetTimeout(15 * time.Second).SetRetryCount(2),
		feedURL:         feedURL,
		limit:           limit,
	}
}

func (s *CVEDigestJob) Run() {
	withLock("cve-digest", consts.CVEDigestLock, 10*time.Minute, s.digest)
}

func (s *CVEDigestJob) digest(ctx context.Context) error {
	entries, err := s.fetch(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		log.InfoContext(ctx, "cve feed returned nothing")
		return nil
	}

	var b strings.Builder
	for _, e := range entries {
		id := e.cveID()
		if id == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s", id, e.summary())
	}
	if b.Len() == 0 {
		return nil
	}

	_, err = s.notificationSvc.CreateUniversal(ctx, 0, &dto.UniversalNotificationDTO{
		Title:   "Security digest: latest CVEs",
		Message: b.String(),
	})
	return err
}

func (s *CVEDigestJob) fetch(ctx context.Context) ([]*cveEntry, error) {
	var entries []*cveEntry
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		ForceContentType("application/json").
		SetResult(&entries).
		Get(s.feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch cve feed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch cve feed: status %d", resp.StatusCode())
	}
	if len(entries) > s.limit {
		entries = entries[:s.limit]
	}
	return entries, nil
}
