// Package track records live managed objects for leak reporting.
//
// A Table maps integer handles to tracked values:
//
//	table := track.NewTable()
//	h := table.Insert("buffer", obj)
//	...
//	table.Remove(h)
//
// Handle 0 is never issued. Handles of removed entries are reused.
//
// # Observers
//
// Observers receive EventCreated on Insert and EventDestroyed on Remove:
//
//	table.Subscribe(myObserver)
//
// The object runtime uses a Table when allocation tracking is enabled, so
// that outstanding objects can be listed by kind at shutdown or in tests.
package track
