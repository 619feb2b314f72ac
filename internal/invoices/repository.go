package invoices

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no invoice exists for the requested id.
var ErrNotFound = errors.New("invoice not found")

// Repository provides read-only access to the external invoice database.
type Repository interface {
	// List returns the summary rows for the invoice tree view.
	List(ctx context.Context) ([]InvoiceSummary, error)

	// Get returns the full invoice detail: line items and, when the
	// invoice references an order, the order and its positions.
	Get(ctx context.Context, id int64) (*Invoice, error)
}
