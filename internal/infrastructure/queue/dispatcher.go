package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/farmapay/admin-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes bulk provisioning items to a fixed set of workers using
// consistent hashing on the email, so writes to the same email are serialized
// while distinct emails provision in parallel.
type Dispatcher struct {
	workers     []chan ports.ProvisionInput
	provisioner ports.Provisioner
	log         zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, provisioner ports.Provisioner, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:     make([]chan ports.ProvisionInput, numWorkers),
		provisioner: provisioner,
		log:         log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.ProvisionInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an item to the worker responsible for its email.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(input ports.ProvisionInput) {
	d.workers[d.shardIndex(input.Email)] <- input
}

// EnqueueBatch enqueues multiple items preserving per-email ordering.
func (d *Dispatcher) EnqueueBatch(inputs []ports.ProvisionInput) {
	for _, in := range inputs {
		d.Enqueue(in)
	}
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(email))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.ProvisionInput) {
	for {
		select {
		case <-ctx.Done():
			return
		case input, ok := <-ch:
			if !ok {
				return
			}
			if _, err := d.provisioner.Provision(ctx, input); err != nil {
				d.log.Error().Err(err).
					Str("email", input.Email).
					Int("worker_id", id).
					Msg("bulk provisioning item failed")
			}
		}
	}
}
