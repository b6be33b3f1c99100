package shell

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/backend"
)

const sweepInterval = time.Minute

// ClientFactory builds the backend client for one visitor. Each visitor gets
// its own client so session cookies never leak between identities.
type ClientFactory func() *backend.Client

// Registry tracks live visitors by id. A visitor that has not been seen for
// the TTL is dropped, which is the process-side equivalent of the tab being
// closed: its cart and session simply cease to exist.
type Registry struct {
	newClient ClientFactory
	log       *slog.Logger
	autoLogin bool
	ttl       time.Duration

	mu       sync.RWMutex
	visitors map[string]*entry

	stopSweep chan struct{}
	wg        sync.WaitGroup
}

type entry struct {
	visitor  *Visitor
	lastSeen time.Time
}

func NewRegistry(newClient ClientFactory, log *slog.Logger, autoLoginOnRegister bool, ttl time.Duration) *Registry {
	r := &Registry{
		newClient: newClient,
		log:       log,
		autoLogin: autoLoginOnRegister,
		ttl:       ttl,
		visitors:  make(map[string]*entry),
		stopSweep: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.sweepLoop()

	return r
}

func (r *Registry) sweepLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.expireVisitors()
		case <-r.stopSweep:
			return
		}
	}
}

func (r *Registry) expireVisitors() {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, e := range r.visitors {
		if e.lastSeen.Before(cutoff) {
			delete(r.visitors, id)
			r.log.Debug("visitor expired", "visitor", id)
		}
	}
}

// Create registers a new visitor with a fresh id.
func (r *Registry) Create() *Visitor {
	id := uuid.New().String()
	v := NewVisitor(id, r.newClient(), r.log, r.autoLogin)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.visitors[id] = &entry{visitor: v, lastSeen: time.Now()}
	return v
}

// Get returns the visitor for id and refreshes its TTL.
func (r *Registry) Get(id string) (*Visitor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.visitors[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.visitor, true
}

// Len returns the number of live visitors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.visitors)
}

// Close stops the background sweeper and waits for it to finish.
func (r *Registry) Close() {
	close(r.stopSweep)
	r.wg.Wait()
}
