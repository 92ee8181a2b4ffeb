// Package surface provides global input surfaces that deliver key-down
// events to registered listeners.
//
// A Surface is the Go counterpart of a window's addEventListener and
// removeEventListener pair: listeners are added and removed by ID and
// receive every key-down in registration order.
//
// Dispatcher is the in-process surface. Terminal drives a Dispatcher
// from a tcell screen and runs a default action for events no listener
// prevented.
package surface
