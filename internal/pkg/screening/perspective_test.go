package screening

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerspectiveScorer(t *testing.T) {
	var got perspectiveRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"attributeScores":{"TOXICITY":{"summaryScore":{"value":0.91}}}}`))
	}))
	defer srv.Close()

	s := NewPerspectiveScorer(srv.URL, "secret", time.Second)
	score, err := s.Score(context.Background(), "some text")
	require.NoError(t, err)
	assert.InDelta(t, 0.91, score, 1e-9)
	assert.Equal(t, "some text", got.Comment.Text)
	assert.Equal(t, []string{"en"}, got.Languages)
	assert.Contains(t, got.RequestedAttributes, "TOXICITY")
}

func TestPerspectiveScorerErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewPerspectiveScorer(srv.URL, "k", time.Second).Score(context.Background(), "x")
		assert.Error(t, err)
	})

	t.Run("missing attribute", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"attributeScores":{}}`))
		}))
		defer srv.Close()

		_, err := NewPerspectiveScorer(srv.URL, "k", time.Second).Score(context.Background(), "x")
		assert.Error(t, err)
	})

	t.Run("timeout blocks through the gate", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		gate := NewGate(NewPerspectiveScorer(srv.URL, "k", 50*time.Millisecond), 0.85)
		err := gate.Check(context.Background(), "harmless")
		assert.ErrorIs(t, err, ErrUnavailable)
	})
}
