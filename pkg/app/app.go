// Package app holds the contract cmd/ binaries use to start a component.
package app

// Runner blocks until the component stops, returning the reason.
type Runner interface {
	Run() error
}
