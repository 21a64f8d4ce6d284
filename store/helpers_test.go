package store

import (
	"context"

	"github.com/pashagolub/pgxmock/v4"
)

// mockContext carries the mock as the context transaction so conn() routes
// queries to it.
func mockContext(mock pgxmock.PgxPoolIface) context.Context {
	return context.WithValue(context.Background(), txKey{}, mock)
}

func str(s string) *string { return &s }
