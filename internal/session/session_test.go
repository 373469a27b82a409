package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Lifecycle(t *testing.T) {
	tr := NewTracker()

	assert.False(t, tr.Active("55511"))
	assert.Equal(t, 0, tr.Count())

	tr.Start("55511")
	assert.True(t, tr.Active("55511"))
	assert.Equal(t, 1, tr.Count())

	// Re-starting is idempotent.
	tr.Start("55511")
	assert.Equal(t, 1, tr.Count())

	assert.True(t, tr.End("55511"))
	assert.False(t, tr.Active("55511"))
	assert.Equal(t, 0, tr.Count())
}

func TestTracker_EndWithoutSession(t *testing.T) {
	tr := NewTracker()
	assert.False(t, tr.End("nobody"))
}

func TestTracker_IndependentSenders(t *testing.T) {
	tr := NewTracker()
	tr.Start("a")
	tr.Start("b")

	tr.End("a")

	assert.False(t, tr.Active("a"))
	assert.True(t, tr.Active("b"))
	assert.Equal(t, 1, tr.Count())
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Start("x")
			tr.Active("x")
			tr.Count()
			tr.End("x")
		}()
	}
	wg.Wait()
}
