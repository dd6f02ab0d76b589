package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScore(t *testing.T) {
	tests := []struct {
		out     string
		want    float64
		wantErr bool
	}{
		{out: "0.12", want: 0.12},
		{out: "  0.9\n", want: 0.9},
		{out: "0.7 because of insults", want: 0.7},
		{out: "1", want: 1},
		{out: "high", wantErr: true},
		{out: "1.5", wantErr: true},
		{out: "-0.1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.out, func(t *testing.T) {
			got, err := parseScore(tt.out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
