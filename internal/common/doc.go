// Package common provides shared interfaces used throughout countess-release.
//
// It holds the application-wide contracts that keep the other packages
// decoupled from each other, most notably the Logger interface that
// separates internal (file-only) logging from user-facing messages.
//
// The Logger interface is injected into components that need logging:
//
//	type MyComponent struct {
//	    logger common.Logger
//	}
//
//	func NewMyComponent(logger common.Logger) *MyComponent {
//	    return &MyComponent{logger: logger}
//	}
package common
