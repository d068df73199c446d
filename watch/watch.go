package watch

import (
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/parscan"
)

// Pipeline owns a scan state and broadcasts every emitted result to all
// subscribers. The core state machine stays a pure synchronous
// transition; Pipeline adds the ownership and fan-out that a driver
// process needs when several workers want to observe emissions.
//
// Applying rounds is serialized internally; reads return the current
// state value, which is safe to use concurrently as long as it is treated
// as immutable.
type Pipeline[A, D any] struct {
	mu    sync.Mutex
	state *parscan.State[A, D]
	cast  *caster.Caster // broadcaster for emitted results
}

// New wraps a scan state for round application with emission fan-out.
func New[A, D any](state *parscan.State[A, D]) (*Pipeline[A, D], error) {
	if state == nil {
		return nil, parscan.ErrIllegalArguments
	}
	return &Pipeline[A, D]{
		state: state,
		cast:  caster.New(nil), // we will broadcast a message per emitted result
	}, nil
}

// State returns the current state value.
func (p *Pipeline[A, D]) State() *parscan.State[A, D] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Update applies one round. On success the pipeline advances to the
// successor state and a non-nil emission is published to all subscribers.
// On error the pipeline keeps its pre-round state.
func (p *Pipeline[A, D]) Update(data []D, completedJobs []A) (*parscan.Emitted[A, D], error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	em, ns, err := p.state.Update(data, completedJobs)
	if err != nil {
		return nil, err
	}
	p.state = ns
	if em != nil {
		tracer().Debugf("scan pipeline: broadcasting emitted result of %d base items", len(em.Data))
		p.cast.Pub(em)
	}
	return em, nil
}

// Subscribe registers a listener for emitted results. Messages are
// *parscan.Emitted values. The returned cancel function unsubscribes and
// lets the broadcaster drop the channel.
func (p *Pipeline[A, D]) Subscribe(capacity uint) (<-chan interface{}, func()) {
	ch, _ := p.cast.Sub(nil, capacity)
	return ch, func() { p.cast.Unsub(ch) }
}

// Close shuts down the broadcaster; all subscriber channels are closed.
func (p *Pipeline[A, D]) Close() {
	p.cast.Close()
}
