package mem

import "sync"

// CustomerLocks serializes failover work per customer. Two failed-payment
// webhooks for mandates of the same customer must not race over the same
// backup account: selection and consumption happen under this lock.
type CustomerLocks interface {
	Lock(customerID string)
	Unlock(customerID string)
}

type customerLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewCustomerLocks() CustomerLocks {
	return &customerLocks{
		locks: make(map[string]*lockEntry),
	}
}

func (c *customerLocks) Lock(customerID string) {
	c.mu.Lock()
	e, ok := c.locks[customerID]
	if !ok {
		e = &lockEntry{}
		c.locks[customerID] = e
	}
	e.refs++
	c.mu.Unlock()

	e.mu.Lock()
}

func (c *customerLocks) Unlock(customerID string) {
	c.mu.Lock()
	e, ok := c.locks[customerID]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(c.locks, customerID)
		}
	}
	c.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
