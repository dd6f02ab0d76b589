package screening

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

type perspectiveRequest struct {
	Comment             perspectiveComment  `json:"comment"`
	RequestedAttributes map[string]struct{} `json:"requestedAttributes"`
	Languages           []string            `json:"languages"`
}

type perspectiveComment struct {
	Text string `json:"text"`
}

type perspectiveResponse struct {
	AttributeScores map[string]struct {
		SummaryScore struct {
			Value float64 `json:"value"`
		} `json:"summaryScore"`
	} `json:"attributeScores"`
}

// PerspectiveScorer Google Perspective comment analyzer client
type PerspectiveScorer struct {
	client *resty.Client
	url    string
	apiKey string
}

// NewPerspectiveScorer one attempt per call, no retries
func NewPerspectiveScorer(url, apiKey string, timeout time.Duration) *PerspectiveScorer {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	return &PerspectiveScorer{client: client, url: url, apiKey: apiKey}
}

func (s *PerspectiveScorer) Enabled() bool { return s.apiKey != "" }

func (s *PerspectiveScorer) Score(ctx context.Context, text string) (float64, error) {
	var out perspectiveResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("key", s.apiKey).
		SetBody(perspectiveRequest{
			Comment:             perspectiveComment{Text: text},
			RequestedAttributes: map[string]struct{}{"TOXICITY": {}},
			Languages:           []string{"en"},
		}).
		SetResult(&out).
		Post(s.url)
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, fmt.Errorf("perspective status %d", resp.StatusCode())
	}
	tox, ok := out.AttributeScores["TOXICITY"]
	if !ok {
		return 0, errors.New("perspective response missing TOXICITY")
	}
	return tox.SummaryScore.Value, nil
}
