// Package services implements the driving port interfaces.
// Services contain the annotation workflow logic and orchestrate
// calls to driven ports (adapters).
//
// The Navigator and Pager types hold per-screen state. They never perform
// I/O while mutating that state: a Plan/Begin step reserves the request,
// a Fetch step runs it (safe to call off the UI loop), and an Apply step
// installs the result. This lets the TUI run requests as commands without
// locking.
package services
