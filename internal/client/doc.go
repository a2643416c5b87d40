// Package client implements the interactive client application runtime.
//
// It wires the terminal UI, the application services, the local credential
// cache, the directory gateway adapter, and the loopback admin surface into
// a single process lifecycle.
package client
