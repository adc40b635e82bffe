package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context carries the request context together with the gorm handle the
// current operation must run on. When Tx is a transaction, every repo call
// made with this Context joins that transaction; when Tx is nil the repo
// falls back to its own connection.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}

func New(ctx context.Context, tx *gorm.DB) Context {
	return Context{Ctx: ctx, Tx: tx}
}
