package services

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// Typed results of the four public operations. Nothing is swallowed: the
// services return these sentinels and the transport layer decides how to
// surface them.
var (
	ErrUnknownAffiliate    = errors.New("unknown affiliate")
	ErrUnknownWithdrawal   = errors.New("unknown withdrawal")
	ErrInvalidReferralCode = errors.New("invalid referral code")
	ErrAlreadyProcessed    = errors.New("already processed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrConcurrencyConflict = errors.New("concurrency conflict")
)

// MySQL server error numbers the engine reacts to.
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrDeadlock        = 1213
)

func isDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}

// isRetryable reports whether the store aborted the unit of work due to
// contention. Such aborts are retried a bounded number of times before being
// surfaced as ErrConcurrencyConflict.
func isRetryable(err error) bool {
	var mysqlErr *mysql.MySQLError
	if !errors.As(err, &mysqlErr) {
		return false
	}
	return mysqlErr.Number == mysqlErrDeadlock || mysqlErr.Number == mysqlErrLockWaitTimeout
}
