// Package counter provides atomic increment and decrement on 32- and 64-bit
// unsigned integers.
//
// Two strategies are available and behave identically to callers:
//
//	counter.LockFree  // one atomic add per operation
//	counter.Locked    // mutex around a plain read-modify-write
//
// Default is LockFree unless the module is built with the parc_locked tag.
//
// Every Increment and Decrement returns the value observed immediately before
// the operation. Reference counting relies on this: when N holders decrement
// concurrently, exactly one of them sees a prior value of 1.
//
// The Uint32 and Uint64 types treat a decrement of zero as a fatal contract
// violation and panic with an *errors.Error of kind underflow. The raw Strategy
// methods do not check; callers that need a custom reaction inspect the prior
// value themselves.
package counter
