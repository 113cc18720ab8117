// Package services contains the core business logic implementations.
// Services depend only on the domain and on driven ports; all
// infrastructure is injected at construction time.
package services
