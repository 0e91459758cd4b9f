package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/farmapay/admin-api/internal/core/domain"
	"github.com/farmapay/admin-api/internal/core/ports"
)

type recordingProvisioner struct {
	mu   sync.Mutex
	seen []string
	done chan struct{}
}

func (p *recordingProvisioner) Provision(_ context.Context, input ports.ProvisionInput) (*domain.Profile, error) {
	p.mu.Lock()
	p.seen = append(p.seen, input.Email)
	p.mu.Unlock()
	p.done <- struct{}{}
	return &domain.Profile{ID: input.Email, Email: input.Email}, nil
}

func TestDispatcher_ProcessesBatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rec := &recordingProvisioner{done: make(chan struct{}, 8)}
	d := NewDispatcher(2, rec, zerolog.Nop())
	d.Start(ctx)

	d.EnqueueBatch([]ports.ProvisionInput{
		{Email: "a@farmapay.com", Secret: "Farma@2025!"},
		{Email: "b@farmapay.com", Secret: "Farma@2025!"},
		{Email: "c@farmapay.com", Secret: "Farma@2025!"},
	})

	for i := 0; i < 3; i++ {
		select {
		case <-rec.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for item %d", i)
		}
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.seen) != 3 {
		t.Fatalf("expected 3 processed items, got %d", len(rec.seen))
	}
}

func TestDispatcher_ShardIndexIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &recordingProvisioner{done: make(chan struct{}, 1)}, zerolog.Nop())

	for _, email := range []string{"a@farmapay.com", "atendente@farmapay.com", "x@y.z"} {
		first := d.shardIndex(email)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(email); got != first {
				t.Fatalf("shard index for %s not stable: %d vs %d", email, first, got)
			}
		}
	}
}
