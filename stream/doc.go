// Package stream implements polymorphic output streams.
//
// A Stream is an iface wrapper whose table is Operations. Backends differ
// only in their private instance and table:
//
//   - NewFile and NewFileDescriptor own an OS descriptor and close it on the
//     last release.
//   - NewWriter adapts any io.Writer the caller keeps ownership of.
//   - NewLinearMemory writes into a wazero guest memory.
//
// Writes go straight to the backend. Callers that share a stream acquire
// it; the backend is destroyed once, with the last reference.
package stream
