package job

import (
	"Bastion/internal/api/dto"
	"Bastion/internal/model"
	"Bastion/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingNotifier struct {
	service.NotificationService
	got []*dto.UniversalNotificationDTO
}

func (n *capturingNotifier) CreateUniversal(_ context.Context, _ uint64, req *dto.UniversalNotificationDTO) (*model.Notification, error) {
	n.got = append(n.got, req)
	return &model.Notification{Title: req.Title, Message: req.Message, IsUniversal: true}, nil
}

func TestCVEDigestMixedFeedShapes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		// text/plain on purpose: the job forces JSON decoding
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(`[
			{"id":"CVE-2026-0001","summary":"Heap overflow in   parser"},
			{"cveMetadata":{"cveId":"CVE-2026-0002"},"containers":{"cna":{"descriptions":[{"value":"Auth bypass"}]}}},
			{"summary":"entry without id"},
			{"id":"CVE-2026-0004","summary":"beyond the limit"}
		]`))
	}))
	defer srv.Close()

	notifier := &capturingNotifier{}
	job := NewCVEDigestJob(notifier, srv.URL, 3)

	require.NoError(t, job.digest(context.Background()))
	require.Len(t, notifier.got, 1)
	assert.Equal(t, "Security digest: latest CVEs", notifier.got[0].Title)
	assert.Equal(t, "CVE-2026-0001: Heap overflow in parser\nCVE-2026-0002: Auth bypass", notifier.got[0].Message)
}

func TestCVEDigestFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	notifier := &capturingNotifier{}
	err := NewCVEDigestJob(notifier, srv.URL, 0).digest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Empty(t, notifier.got)
}

func TestCVESummaryTruncates(t *testing.T) {
	e := &cveEntry{ID: "CVE-1", Summary: strings.Repeat("é", 200)}
	s := e.summary()
	assert.Equal(t, cveSummaryMax+3, len([]rune(s)))
	assert.True(t, strings.HasSuffix(s, "..."))

	e = &cveEntry{}
	e.Containers.Cna.Title = "Title wins"
	e.Containers.Cna.Descriptions = append(e.Containers.Cna.Descriptions, struct {
		Value string `json:"value"`
	}{Value: "description"})
	assert.Equal(t, "Title wins", e.summary())
}
