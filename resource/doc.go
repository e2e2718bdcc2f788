// Package resource tracks live spell checker handles.
//
// A Table maps integer handles to open values. A client registers every
// checker it hands out so that leaked checkers can still be released when the
// client shuts down:
//
//	table := resource.NewTable()
//
//	// Register a value, get a handle
//	h := table.Insert(checker)
//
//	// The value removes itself once disposed
//	table.Remove(h)
//
//	// Close every value still registered
//	err := table.Close()
//
// # Handles
//
// Handle 0 is reserved and always invalid. Handles of removed values are
// reused by later inserts.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    switch e.Type {
//	    case resource.EventOpened:
//	        log.Printf("checker %d opened", e.Handle)
//	    case resource.EventClosed:
//	        log.Printf("checker %d closed", e.Handle)
//	    }
//	}))
//
// # Closing
//
// Close marks the table closed, then calls Close on every registered value
// that implements io.Closer, outside the table lock. Values may call Remove
// from their Close method. Errors are combined with multierr.
package resource
