package forwarding

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

const trackingCodeAttempts = 10

// trackingCodeGenerator produces codes of the form FB-YYYYMMDD-NNNNN.
// The random suffix space is 90000 codes per day, so the generate-check
// sequence is serialized under one mutex: two concurrent creations must
// not both pass the uniqueness check for the same candidate. The unique
// index on tracking_code backs this up across processes.
type trackingCodeGenerator struct {
	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func newTrackingCodeGenerator() *trackingCodeGenerator {
	return &trackingCodeGenerator{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

type codeExistsFunc func(ctx context.Context, code string) (bool, error)

func (g *trackingCodeGenerator) generate(ctx context.Context, exists codeExistsFunc) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dateCode := g.now().UTC().Format("20060102")

	for attempt := 0; attempt < trackingCodeAttempts; attempt++ {
		candidate := fmt.Sprintf("FB-%s-%05d", dateCode, 10000+g.rnd.Intn(90000))

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check tracking code: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: tracking code space exhausted after %d attempts", ErrConflict, trackingCodeAttempts)
}
