package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencer_New(t *testing.T) {
	s := NewSequencer()
	assert.Equal(t, int64(0), s.Current(), "new sequencer should start at 0")
}

func TestSequencer_NextIncrements(t *testing.T) {
	s := NewSequencer()

	assert.Equal(t, int64(1), s.Next())
	assert.Equal(t, int64(2), s.Next())
	assert.Equal(t, int64(3), s.Next())
	assert.Equal(t, int64(3), s.Current())
}

func TestSequencer_ThreadSafe(t *testing.T) {
	s := NewSequencer()
	const goroutines = 50
	const callsPerGoroutine = 100

	var wg sync.WaitGroup
	seqs := make(chan int64, goroutines*callsPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				seqs <- s.Next()
			}
		}()
	}

	wg.Wait()
	close(seqs)

	seen := make(map[int64]bool)
	for seq := range seqs {
		assert.False(t, seen[seq], "seq %d generated twice", seq)
		seen[seq] = true
	}
	assert.Len(t, seen, goroutines*callsPerGoroutine)
}

func TestSequentialGenerator(t *testing.T) {
	g := NewSequentialGenerator("")
	assert.Equal(t, "run-1", g.Generate())
	assert.Equal(t, "run-2", g.Generate())

	g = NewSequentialGenerator("session")
	assert.Equal(t, "session-1", g.Generate())
}

func TestUUIDv7Generator_Unique(t *testing.T) {
	g := UUIDv7Generator{}
	a, b := g.Generate(), g.Generate()

	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
	assert.Less(t, a, b, "UUIDv7 is time-sortable")
}
