// Package pg bootstraps the PostgreSQL connection used by the mailer.
//
// Connect opens a pgx/v5 pool with bounded retries, Migrate applies the
// embedded goose migrations from internal/db/migrations, and Healthcheck
// adapts the pool to the readiness probe of pkg/httpserver. The error helpers
// classify pgx errors so repositories can map them to their own sentinels:
//
//	if pg.IsDuplicateKeyError(err) {
//		return dispatchlog.ErrAlreadyRecorded
//	}
package pg
