package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name       string
		catalog    error
		carts      error
		wantStatus Status
	}{
		{"all healthy", nil, nil, Healthy},
		{"one failing", nil, boom, Degraded},
		{"all failing", boom, boom, Unhealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(map[string]Pinger{
				"catalog": &mockPinger{err: tt.catalog},
				"carts":   &mockPinger{err: tt.carts},
			})
			r := svc.Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("expected %q, got %q", tt.wantStatus, r.Status)
			}
			wantCatalog := CheckOK
			if tt.catalog != nil {
				wantCatalog = CheckError
			}
			if r.Checks["catalog"] != wantCatalog {
				t.Errorf("catalog = %q, want %q", r.Checks["catalog"], wantCatalog)
			}
		})
	}
}

func TestCheck_NoComponents(t *testing.T) {
	r := New(nil).Check(context.Background())
	if r.Status != Healthy || len(r.Checks) != 0 {
		t.Errorf("got %+v", r)
	}
}
