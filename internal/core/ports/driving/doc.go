// Package driving defines the interfaces external actors use to call
// INTO the core.
//
// These are the "driving" or "primary" ports in hexagonal architecture.
// Core services implement them; the CLI adapter consumes them.
package driving
