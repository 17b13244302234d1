package retailerview

import "sync"

// Registry hands out one live controller per retailer so the in-flight
// guard and load-cycle sequence hold across requests.
type Registry struct {
	fetch     Fetcher
	terminals TerminalMutator

	mu          sync.Mutex
	controllers map[uint]*Controller
}

func NewRegistry(fetch Fetcher, terminals TerminalMutator) *Registry {
	return &Registry{
		fetch:       fetch,
		terminals:   terminals,
		controllers: make(map[uint]*Controller),
	}
}

// Get returns the controller for a retailer, creating it on first use.
func (r *Registry) Get(retailerID uint) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ctrl, ok := r.controllers[retailerID]; ok {
		return ctrl
	}
	ctrl := NewController(retailerID, r.fetch, r.terminals)
	r.controllers[retailerID] = ctrl
	return ctrl
}
