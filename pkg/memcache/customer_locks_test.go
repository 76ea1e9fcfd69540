package mem

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomerLocksSerializeSameKey(t *testing.T) {
	locks := NewCustomerLocks()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.Lock("customer-1")
			defer locks.Unlock("customer-1")
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}

func TestCustomerLocksDifferentKeysDoNotBlock(t *testing.T) {
	locks := NewCustomerLocks()

	locks.Lock("customer-1")
	// Would deadlock if keys shared a mutex.
	locks.Lock("customer-2")
	locks.Unlock("customer-2")
	locks.Unlock("customer-1")
}

func TestCustomerLocksReleaseEntries(t *testing.T) {
	locks := NewCustomerLocks().(*customerLocks)

	locks.Lock("customer-1")
	locks.Unlock("customer-1")

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks)
}
