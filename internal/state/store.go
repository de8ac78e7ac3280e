// internal/state/store.go
package state

import (
	"sort"
	"sync"

	"tripdesk-service/internal/domain/campaign"
	"tripdesk-service/internal/domain/client"
	"tripdesk-service/internal/domain/employee"
	"tripdesk-service/internal/domain/opportunity"
	"tripdesk-service/internal/domain/supplier"
)

// Store is the application-wide in-memory cache of every entity list. It is
// seeded from the repositories at startup and refreshed only through its
// mutation methods. Reads hand out deep copies. The mutex guards the maps
// because the alert scanner runs beside the HTTP request goroutines.
type Store struct {
	mu sync.RWMutex

	// per-opportunity mutation locks, see LockOpportunity
	muts sync.Map

	opportunities map[int64]*opportunity.Opportunity
	clients       []client.Client
	employees     []employee.Employee
	suppliers     []supplier.Supplier
	campaigns     []campaign.Campaign
}

func NewStore() *Store {
	return &Store{
		opportunities: make(map[int64]*opportunity.Opportunity),
	}
}

// ---- opportunities ----

// LockOpportunity serializes the read-modify-write cycle for one
// opportunity. Every writer (request handlers and the alert scanner) must
// hold this lock from its store read until the persisted aggregate is
// merged back, otherwise a concurrent writer's changes are overwritten by
// a stale clone. The returned func releases the lock.
func (s *Store) LockOpportunity(id int64) func() {
	v, _ := s.muts.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *Store) SetOpportunities(list []*opportunity.Opportunity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.opportunities = make(map[int64]*opportunity.Opportunity, len(list))
	for _, o := range list {
		s.opportunities[o.ID] = o.Clone()
	}
}

// Opportunity returns a deep copy of the cached aggregate.
func (s *Store) Opportunity(id int64) (*opportunity.Opportunity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.opportunities[id]
	if !ok {
		return nil, false
	}
	return o.Clone(), true
}

// Opportunities returns deep copies of every cached aggregate, ordered by ID.
func (s *Store) Opportunities() []*opportunity.Opportunity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]*opportunity.Opportunity, 0, len(s.opportunities))
	for _, o := range s.opportunities {
		list = append(list, o.Clone())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// PutOpportunity merges a persisted aggregate back into the cache.
func (s *Store) PutOpportunity(o *opportunity.Opportunity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.opportunities[o.ID] = o.Clone()
}

// ---- flat entity lists ----

func (s *Store) SetClients(list []client.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients = append([]client.Client(nil), list...)
}

func (s *Store) Clients() []client.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]client.Client(nil), s.clients...)
}

func (s *Store) PutClient(c client.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == c.ID {
			s.clients[i] = c
			return
		}
	}
	s.clients = append(s.clients, c)
}

func (s *Store) SetEmployees(list []employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append([]employee.Employee(nil), list...)
}

func (s *Store) Employees() []employee.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]employee.Employee(nil), s.employees...)
}

func (s *Store) PutEmployee(e employee.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.employees {
		if s.employees[i].ID == e.ID {
			s.employees[i] = e
			return
		}
	}
	s.employees = append(s.employees, e)
}

func (s *Store) SetSuppliers(list []supplier.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers = append([]supplier.Supplier(nil), list...)
}

func (s *Store) Suppliers() []supplier.Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]supplier.Supplier(nil), s.suppliers...)
}

func (s *Store) PutSupplier(sp supplier.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.suppliers {
		if s.suppliers[i].ID == sp.ID {
			s.suppliers[i] = sp
			return
		}
	}
	s.suppliers = append(s.suppliers, sp)
}

func (s *Store) SetCampaigns(list []campaign.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = append([]campaign.Campaign(nil), list...)
}

func (s *Store) Campaigns() []campaign.Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]campaign.Campaign(nil), s.campaigns...)
}

func (s *Store) PutCampaign(c campaign.Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.campaigns {
		if s.campaigns[i].ID == c.ID {
			s.campaigns[i] = c
			return
		}
	}
	s.campaigns = append(s.campaigns, c)
}
