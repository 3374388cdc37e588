// Package parc provides reference-counted managed objects with polymorphic
// wrappers for streams and log reporters.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	parc/                Root package, documentation only
//	├── counter/         Atomic counters with lock-free and lock-based strategies
//	├── object/          Runtime, Object[T] handles, class descriptors and hooks
//	├── track/           Live-object table with lifecycle observers
//	├── iface/           Interface wrappers binding a private instance to a table
//	├── buffer/          Managed byte buffers
//	├── logentry/        Log records and formatters (text, syslog, JSON)
//	├── stream/          Polymorphic output streams (file, writer, wasm memory)
//	├── reporter/        Polymorphic log reporters (text stream, stdout, zap)
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Report a message to stdout:
//
//	rt, err := object.NewRuntime(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rep, err := reporter.NewTextStdout(rt)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer reporter.Release(&rep)
//
//	reporter.ReportString(rep, logentry.LevelInfo, "ready")
//
// # Ownership
//
// Every constructor returns a handle owning one reference. Acquire adds a
// reference, Release drops one and nils the caller's variable. A wrapper
// holds its own reference to its private instance, so creators release what
// they created once it has been wrapped:
//
//	s, _ := stream.NewWriter(rt, w)
//	rep, _ := reporter.NewTextStream(rt, s, nil)
//	stream.Release(&s) // rep keeps the stream alive
//
// # Counting Strategies
//
// Reference counts use counter.Default, which is lock-free. Build with the
// parc_locked tag to select the mutex-based strategy on platforms without
// native 64-bit atomics, or pass object.Config.Strategy per runtime.
//
// # Thread Safety
//
// Acquire and Release are safe from any goroutine; exactly one caller runs
// an object's destructor. Payload access is not synchronized by the runtime.
// Stream backends serialize their own writes.
//
// # Contract Violations
//
// Over-release, release of nil handles and use after destroy are always
// detected. The default handler logs through zap and panics; set
// object.Config.OnViolation to handle them differently.
package parc
