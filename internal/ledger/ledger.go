package ledger

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/bankist/bankist-service/internal/models"
)

// interestThreshold drops per-deposit interest contributions at or below
// this value from the summary total.
const interestThreshold = 1.0

// loanEvidenceRatio is the share of a requested loan that at least one past
// movement must cover for the loan to be granted.
const loanEvidenceRatio = 0.1

// Ledger is the in-memory account roster. A single mutex serializes all
// operations, so each one runs to completion before the next begins and a
// transfer's two appends are visible together.
type Ledger struct {
	mu    sync.Mutex
	accts map[string]*models.Account
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{accts: make(map[string]*models.Account)}
}

// Register adds an account; the username is derived from the owner name once
// here and never recomputed. A username collision is a registration error.
func (l *Ledger) Register(owner string, pin int, interestRate float64, movements []float64) (*models.Account, error) {
	username := models.DeriveUsername(owner)
	if username == "" {
		return nil, ErrBadOwner
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.accts[username]; ok {
		return nil, ErrUsernameTaken
	}

	acc := &models.Account{
		ID:           uuid.New(),
		Owner:        owner,
		Username:     username,
		PIN:          pin,
		InterestRate: interestRate,
		Movements:    append([]float64(nil), movements...),
	}
	l.accts[username] = acc
	return snapshot(acc), nil
}

// Authenticate finds the account with the exact (case-sensitive) username and
// checks the PIN by numeric equality. Returns a snapshot of the account.
func (l *Ledger) Authenticate(username string, pin int) (*models.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accts[username]
	if !ok || acc.PIN != pin {
		return nil, ErrBadCredentials
	}
	return snapshot(acc), nil
}

// Balance recomputes the account balance as the sum of its movements.
// An empty history yields zero.
func (l *Ledger) Balance(username string) (float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accts[username]
	if !ok {
		return 0, ErrAccountNotFound
	}
	return balance(acc), nil
}

// Summarize derives income, expense and interest totals from the movement
// history. Interest counts each deposit's contribution only when it exceeds
// the threshold; with no qualifying deposits the total is zero.
func (l *Ledger) Summarize(username string) (models.Summary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accts[username]
	if !ok {
		return models.Summary{}, ErrAccountNotFound
	}

	var s models.Summary
	for _, mov := range acc.Movements {
		switch {
		case mov > 0:
			s.Income += mov
			if in := mov * acc.InterestRate / 100; in > interestThreshold {
				s.Interest += in
			}
		case mov < 0:
			s.Expenses += -mov
		}
	}
	return s, nil
}

// Transfer moves amount between two accounts. The withdrawal and the deposit
// are appended inside one critical section; any failed precondition leaves
// both accounts untouched.
func (l *Ledger) Transfer(from, to string, amount float64) error {
	if amount <= 0 {
		return ErrBadAmount
	}
	if from == to {
		return ErrSameAccount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	src, ok := l.accts[from]
	if !ok {
		return ErrAccountNotFound
	}
	dst, ok := l.accts[to]
	if !ok {
		return ErrAccountNotFound
	}
	if balance(src) < amount {
		return ErrInsufficientFunds
	}

	src.Movements = append(src.Movements, -amount)
	dst.Movements = append(dst.Movements, amount)
	return nil
}

// RequestLoan checks loan eligibility: the amount must be positive and at
// least one existing movement must cover 10% of it. Nothing is appended here;
// the caller schedules PostLoan to run after the posting delay.
func (l *Ledger) RequestLoan(username string, amount float64) error {
	if amount <= 0 {
		return ErrBadAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accts[username]
	if !ok {
		return ErrAccountNotFound
	}
	for _, mov := range acc.Movements {
		if mov >= loanEvidenceRatio*amount {
			return nil
		}
	}
	return ErrLoanIneligible
}

// PostLoan appends an approved loan amount as a deposit.
func (l *Ledger) PostLoan(username string, amount float64) error {
	if amount <= 0 {
		return ErrBadAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accts[username]
	if !ok {
		return ErrAccountNotFound
	}
	acc.Movements = append(acc.Movements, amount)
	return nil
}

// Close removes the account permanently. Both username and PIN must match;
// on any mismatch the roster is untouched.
func (l *Ledger) Close(username string, pin int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accts[username]
	if !ok || acc.PIN != pin {
		return ErrBadCredentials
	}
	delete(l.accts, username)
	return nil
}

// Movements returns a copy of the account's movement history, in insertion
// order or sorted ascending. The stored sequence is never mutated.
func (l *Ledger) Movements(username string, sorted bool) ([]float64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	acc, ok := l.accts[username]
	if !ok {
		return nil, ErrAccountNotFound
	}
	out := append([]float64(nil), acc.Movements...)
	if sorted {
		sort.Float64s(out)
	}
	return out, nil
}

// Count reports how many accounts are registered.
func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.accts)
}

func balance(acc *models.Account) float64 {
	var sum float64
	for _, mov := range acc.Movements {
		sum += mov
	}
	return sum
}

// snapshot copies an account so callers cannot reach internal state.
func snapshot(acc *models.Account) *models.Account {
	cp := *acc
	cp.Movements = append([]float64(nil), acc.Movements...)
	return &cp
}
