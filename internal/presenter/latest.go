package presenter

import (
	"context"
	"sync"

	"github.com/TeknoZest/damenschstorefront/internal/models"
)

// Ticket identifies one dispatched fetch.
type Ticket struct {
	seq uint64
}

func (t Ticket) Seq() uint64 {
	return t.seq
}

// Latest keeps the result of the most recently dispatched fetch. Results
// arriving for an older fetch are dropped whole.
type Latest struct {
	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current models.ListingResult
}

// NewLatest creates a guard with no result applied yet.
func NewLatest() *Latest {
	return &Latest{current: Normalize(nil)}
}

// Begin registers a new fetch and cancels the context of the one in
// flight, if any. The returned context should be used for the fetch.
func (l *Latest) Begin(ctx context.Context) (context.Context, Ticket) {
	fetchCtx, cancel := context.WithCancel(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	l.cancel = cancel

	return fetchCtx, Ticket{seq: l.seq}
}

// Apply stores result if ticket is still the newest and reports whether
// it did.
func (l *Latest) Apply(ticket Ticket, result models.ListingResult) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ticket.seq != l.seq {
		return false
	}
	l.current = result
	return true
}

// IsLatest reports whether no fetch was dispatched after ticket.
func (l *Latest) IsLatest(ticket Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return ticket.seq == l.seq
}

// Current returns the last applied result, or the normalized empty page.
func (l *Latest) Current() models.ListingResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current
}

// Close cancels the fetch in flight.
func (l *Latest) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
