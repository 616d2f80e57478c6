package backoff

import (
	"testing"
	"time"
)

func TestNext(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		retry int
		want  time.Duration
	}{
		{1, 30 * time.Second},
		{2, time.Minute},
		{3, 2 * time.Minute},
		{4, 4 * time.Minute},
	}
	for _, tt := range tests {
		if got := Next(now, tt.retry, 30*time.Second).Sub(now); got != tt.want {
			t.Errorf("Next(%d) = %v, want %v", tt.retry, got, tt.want)
		}
	}
}
