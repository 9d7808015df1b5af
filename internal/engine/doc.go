// Package engine drives the lapwatch stopwatch.
//
// ARCHITECTURE:
//
// Single-Writer Event Loop:
// Run owns the stopwatch and is the only goroutine that mutates it. User
// actions arrive through Do, which enqueues a command and waits for the
// resulting snapshot. Ticks arrive on the active ticker's channel.
//
// Processing Flow:
//  1. Commands are enqueued to a FIFO queue
//  2. Run drains queued commands before waiting
//  3. When the queue is empty, Run selects on the queue signal, the ticker
//     channel (nil while stopped) and context cancellation
//  4. Each processed action is stamped with the next logical sequence number
//     and appended to the journal
//
// TICKER LIFECYCLE:
//
// A ticker is created on the stopped-to-running transition and stopped on
// every path out of running: pause, reset and Run returning. Because the
// ticker is stopped inside the loop before the reply is sent, no tick is
// applied after a pause or reset has been acknowledged. Starting while
// running is a no-op and never creates a second ticker.
package engine
