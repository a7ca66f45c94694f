package bridge

import (
	"errors"
	"testing"
)

func TestConnectOrKill(t *testing.T) {
	errRefused := errors.New("connection refused")

	tests := []struct {
		name       string
		connectErr error
		wantKilled bool
	}{
		{
			name:       "Connected browser keeps running",
			connectErr: nil,
			wantKilled: false,
		},
		{
			name:       "Failed connection kills the browser",
			connectErr: errRefused,
			wantKilled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			killed := false
			err := connectOrKill(
				func() error { return tt.connectErr },
				func() { killed = true },
			)

			if !errors.Is(err, tt.connectErr) {
				t.Errorf("connectOrKill() error = %v, want %v", err, tt.connectErr)
			}
			if killed != tt.wantKilled {
				t.Errorf("killed = %v, want %v", killed, tt.wantKilled)
			}
		})
	}
}
