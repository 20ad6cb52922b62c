// Package ledger owns the account roster and every rule that reads or
// mutates it: authentication, balance and summary derivation, transfers,
// loan eligibility and posting, and account closure.
package ledger

import "errors"

// Domain errors. A declined operation returns one of these and guarantees
// that no account state was touched.
var (
	// ErrAccountNotFound means no account carries the given username.
	ErrAccountNotFound = errors.New("account not found")

	// ErrBadCredentials means the username/PIN pair does not match an account.
	ErrBadCredentials = errors.New("invalid credentials")

	// ErrBadAmount means the amount was zero or negative.
	ErrBadAmount = errors.New("amount must be positive")

	// ErrSameAccount means sender and recipient are the same account.
	ErrSameAccount = errors.New("cannot transfer to the same account")

	// ErrInsufficientFunds means the sender's balance does not cover the transfer.
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrLoanIneligible means no past movement covers 10% of the requested loan.
	ErrLoanIneligible = errors.New("no deposit covers 10% of the requested loan")

	// ErrUsernameTaken means registration would collide with an existing username.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrBadOwner means the owner name yields no username initials.
	ErrBadOwner = errors.New("owner name is required")
)
