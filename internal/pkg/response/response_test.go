package response

import (
	"Bastion/internal/pkg/screening"
	"Bastion/internal/service"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{name: "mapped", err: service.ErrPostNotFound, wantCode: http.StatusNotFound, wantMsg: "Post not found"},
		{name: "forbidden", err: service.ErrPostDeleteForbidden, wantCode: http.StatusForbidden, wantMsg: "Unauthorized to delete this post"},
		{name: "violation", err: &screening.ViolationError{Reason: screening.ReasonHateSpeech}, wantCode: http.StatusBadRequest, wantMsg: "Content violates community guidelines (hate-speech)."},
		{name: "scorer down", err: fmt.Errorf("wrap: %w", screening.ErrUnavailable), wantCode: http.StatusInternalServerError, wantMsg: ScreeningUnavailableMessage},
		{name: "unknown", err: errors.New("connection reset"), wantCode: http.StatusInternalServerError, wantMsg: "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(c, tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var body struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}
