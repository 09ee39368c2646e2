// Package shutdown interrupts long-running CLI work when the process
// receives SIGINT or SIGTERM.
//
// A Handler runs registered stop functions once, in reverse order of
// registration, when a termination signal arrives:
//
//	handler := shutdown.NewHandler()
//	handler.OnSignal(cancel)
//	go handler.Watch()
//	defer handler.Release()
//
// Stop functions are expected to be fast, typically a
// context.CancelFunc that lets the interrupted work drain and report
// what it finished.
package shutdown
