//go:build parc_locked

package counter

// Default is the strategy used by zero-value counters and by runtimes
// that do not choose one.
var Default = Locked
