// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// Transactor runs a unit of work inside a single database transaction.
type Transactor interface {
	// WithinTransaction runs fn inside a database transaction. Repositories
	// called with the context passed to fn take part in that transaction.
	// If fn returns an error every write is rolled back. Nested calls join
	// the outer transaction.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}
