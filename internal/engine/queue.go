package engine

import (
	"sync"

	"github.com/roach88/lapwatch/internal/stopwatch"
)

// command is one request for the Run loop.
type command struct {
	action Action
	reply  chan stopwatch.Snapshot // buffered, size 1
}

// commandQueue is a thread-safe FIFO queue feeding the Run loop.
//
// Producers are Do callers on any goroutine; the only consumer is Run.
// A buffered signal channel lets Run wait on the queue inside a select
// alongside the ticker and context.
type commandQueue struct {
	mu       sync.Mutex
	commands []command
	closed   bool
	signal   chan struct{} // buffered, size 1; closed by Close
}

func newCommandQueue() *commandQueue {
	return &commandQueue{
		commands: make([]command, 0, 8),
		signal:   make(chan struct{}, 1),
	}
}

// Enqueue appends a command. Returns false if the queue is closed.
func (q *commandQueue) Enqueue(c command) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}

	q.commands = append(q.commands, c)

	// Non-blocking: the buffer of one coalesces signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}

	return true
}

// TryDequeue removes the front command without blocking.
func (q *commandQueue) TryDequeue() (command, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.commands) == 0 {
		return command{}, false
	}

	c := q.commands[0]
	// Drop the reference so the reply channel can be collected.
	q.commands[0] = command{}

	if len(q.commands) == 1 {
		q.commands = q.commands[:0]
	} else {
		q.commands = q.commands[1:]
	}

	return c, true
}

// Wait returns a channel that fires when commands may be available, and is
// closed once the queue is closed.
func (q *commandQueue) Wait() <-chan struct{} {
	return q.signal
}

// Len returns the number of queued commands.
func (q *commandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}

// Drained reports whether the queue is closed and empty.
func (q *commandQueue) Drained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed && len(q.commands) == 0
}

// Close rejects further commands and wakes the waiter.
func (q *commandQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	close(q.signal)
}
