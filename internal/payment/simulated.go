package payment

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidAmount = errors.New("charge amount must be positive")

const simulatedLatency = 150 * time.Millisecond

// SimulatedGateway approves charges with a configurable probability after a
// small fixed latency. Not safe for production use, obviously.
type SimulatedGateway struct {
	successRate float64
	latency     time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedGateway(successRate float64) *SimulatedGateway {
	return &SimulatedGateway{
		successRate: successRate,
		latency:     simulatedLatency,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSimulatedGatewayWithSource pins the latency and random source, for tests.
func NewSimulatedGatewayWithSource(successRate float64, latency time.Duration, src rand.Source) *SimulatedGateway {
	return &SimulatedGateway{
		successRate: successRate,
		latency:     latency,
		rng:         rand.New(src),
	}
}

func (g *SimulatedGateway) Charge(ctx context.Context, amountCents int64, method string) (*Outcome, error) {
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	select {
	case <-time.After(g.latency):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	g.mu.Lock()
	roll := g.rng.Float64()
	g.mu.Unlock()

	if roll >= g.successRate {
		return &Outcome{Success: false}, nil
	}

	return &Outcome{
		Success:   true,
		Reference: "sim_" + uuid.NewString(),
	}, nil
}
