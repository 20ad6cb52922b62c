package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(t *testing.T) *Ledger {
	t.Helper()
	l := New()
	require.NoError(t, Seed(l))
	return l
}

func TestRegister(t *testing.T) {
	assert := assert.New(t)

	l := New()
	acc, err := l.Register("Jonas Schmedtmann", 1111, 1.2, []float64{200, -50})
	assert.NoError(err, "Registration should not return an error")
	assert.Equal("js", acc.Username, "Username should be the lowercase initials of the owner")
	assert.NotEqual("", acc.ID.String(), "Account ID should be assigned")
	assert.Equal([]float64{200, -50}, acc.Movements, "Initial movements should be kept")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	assert := assert.New(t)

	l := New()
	_, err := l.Register("Jonas Schmedtmann", 1111, 1.2, nil)
	assert.NoError(err, "First registration should succeed")
	_, err = l.Register("Jessica Schmedtmann", 2222, 1.5, nil)
	assert.ErrorIs(err, ErrUsernameTaken, "Colliding initials should be a registration error")
	assert.Equal(1, l.Count(), "Roster should still hold one account")
}

func TestRegisterEmptyOwner(t *testing.T) {
	l := New()
	_, err := l.Register("   ", 1111, 1.2, nil)
	assert.ErrorIs(t, err, ErrBadOwner, "Blank owner should be rejected")
}

func TestRegisterCopiesMovements(t *testing.T) {
	l := New()
	seed := []float64{100, 200}
	_, err := l.Register("Jonas Schmedtmann", 1111, 1.2, seed)
	require.NoError(t, err)

	seed[0] = -999
	movs, err := l.Movements("js", false)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200}, movs, "Ledger state should be isolated from the caller's slice")
}

func TestAuthenticate(t *testing.T) {
	assert := assert.New(t)

	l := seeded(t)
	acc, err := l.Authenticate("js", 1111)
	assert.NoError(err, "Matching username and PIN should authenticate")
	assert.Equal("Jonas Schmedtmann", acc.Owner)

	_, err = l.Authenticate("js", 1112)
	assert.ErrorIs(err, ErrBadCredentials, "Wrong PIN should be rejected")

	_, err = l.Authenticate("JS", 1111)
	assert.ErrorIs(err, ErrBadCredentials, "Username match is case-sensitive")

	_, err = l.Authenticate("nobody", 1111)
	assert.ErrorIs(err, ErrBadCredentials, "Unknown username should be rejected")
}

func TestBalance(t *testing.T) {
	assert := assert.New(t)

	l := seeded(t)
	balance, err := l.Balance("js")
	assert.NoError(err)
	assert.InDelta(3840, balance, 1e-9, "Balance should equal the sum of the movements")

	_, err = l.Balance("nobody")
	assert.ErrorIs(err, ErrAccountNotFound)
}

func TestBalanceEmptyHistory(t *testing.T) {
	l := New()
	_, err := l.Register("Empty Account", 9999, 1.0, nil)
	require.NoError(t, err)

	balance, err := l.Balance("ea")
	assert.NoError(t, err)
	assert.Zero(t, balance, "Empty history should yield a zero balance")
}

func TestSummarize(t *testing.T) {
	assert := assert.New(t)

	// movements [200 450 -400 3000 -650 -130 70 1300] at 1.2%:
	// deposits 200+450+3000+70+1300, withdrawals 400+650+130,
	// interest terms 2.4+5.4+36+15.6 with the 0.84 term dropped.
	l := seeded(t)
	s, err := l.Summarize("js")
	assert.NoError(err)
	assert.InDelta(5020, s.Income, 1e-9, "Income should be the sum of deposits")
	assert.InDelta(1180, s.Expenses, 1e-9, "Expenses should be the absolute sum of withdrawals")
	assert.InDelta(59.4, s.Interest, 1e-9, "Interest terms at or below 1 should be excluded")
}

func TestSummarizeNoQualifyingInterest(t *testing.T) {
	l := New()
	_, err := l.Register("Tiny Saver", 1234, 1.0, []float64{10, 20, -5})
	require.NoError(t, err)

	s, err := l.Summarize("ts")
	assert.NoError(t, err)
	assert.Zero(t, s.Interest, "No qualifying deposit should yield zero interest, not an error")
	assert.InDelta(t, 30, s.Income, 1e-9)
	assert.InDelta(t, 5, s.Expenses, 1e-9)
}

func TestTransfer(t *testing.T) {
	assert := assert.New(t)

	l := New()
	_, err := l.Register("Alice Archer", 1111, 1.0, []float64{1000})
	require.NoError(t, err)
	_, err = l.Register("Bob Brown", 2222, 1.0, []float64{500})
	require.NoError(t, err)

	err = l.Transfer("aa", "bb", 300)
	assert.NoError(err, "Covered transfer should succeed")

	fromBalance, _ := l.Balance("aa")
	toBalance, _ := l.Balance("bb")
	assert.InDelta(700, fromBalance, 1e-9, "Sender balance should drop by the amount")
	assert.InDelta(800, toBalance, 1e-9, "Recipient balance should rise by the amount")

	fromMovs, _ := l.Movements("aa", false)
	toMovs, _ := l.Movements("bb", false)
	assert.Equal([]float64{1000, -300}, fromMovs, "Sender gains a negative movement")
	assert.Equal([]float64{500, 300}, toMovs, "Recipient gains a positive movement")
}

func TestTransferDeclines(t *testing.T) {
	tests := []struct {
		name   string
		from   string
		to     string
		amount float64
		want   error
	}{
		{"zero amount", "js", "jd", 0, ErrBadAmount},
		{"negative amount", "js", "jd", -10, ErrBadAmount},
		{"self transfer", "js", "js", 100, ErrSameAccount},
		{"unknown recipient", "js", "zz", 100, ErrAccountNotFound},
		{"unknown sender", "zz", "js", 100, ErrAccountNotFound},
		{"insufficient balance", "js", "jd", 1e9, ErrInsufficientFunds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := seeded(t)
			jsBefore, _ := l.Movements("js", false)
			jdBefore, _ := l.Movements("jd", false)

			err := l.Transfer(tt.from, tt.to, tt.amount)
			assert.ErrorIs(t, err, tt.want)

			jsAfter, _ := l.Movements("js", false)
			jdAfter, _ := l.Movements("jd", false)
			assert.Equal(t, jsBefore, jsAfter, "Declined transfer must not mutate the sender")
			assert.Equal(t, jdBefore, jdAfter, "Declined transfer must not mutate the recipient")
		})
	}
}

func TestRequestLoan(t *testing.T) {
	assert := assert.New(t)

	// Sarah Smith: movements [430 1000 700 50 90].
	l := seeded(t)

	assert.NoError(l.RequestLoan("ss", 100), "1000 covers 10% of 100")
	assert.NoError(l.RequestLoan("ss", 10000), "1000 covers exactly 10% of 10000")
	assert.ErrorIs(l.RequestLoan("ss", 10001), ErrLoanIneligible, "No movement covers 10% of 10001")
	assert.ErrorIs(l.RequestLoan("ss", 0), ErrBadAmount)
	assert.ErrorIs(l.RequestLoan("ss", -500), ErrBadAmount)
	assert.ErrorIs(l.RequestLoan("nobody", 100), ErrAccountNotFound)

	movs, _ := l.Movements("ss", false)
	assert.Len(movs, 5, "Eligibility checks must not append anything")
}

func TestPostLoan(t *testing.T) {
	assert := assert.New(t)

	l := seeded(t)
	before, _ := l.Balance("ss")

	assert.NoError(l.PostLoan("ss", 100))
	movs, _ := l.Movements("ss", false)
	assert.Equal(100.0, movs[len(movs)-1], "Posted loan is appended as a deposit")

	after, _ := l.Balance("ss")
	assert.InDelta(before+100, after, 1e-9)

	assert.ErrorIs(l.PostLoan("nobody", 100), ErrAccountNotFound)
}

func TestClose(t *testing.T) {
	assert := assert.New(t)

	l := seeded(t)
	assert.ErrorIs(l.Close("js", 9999), ErrBadCredentials, "Wrong PIN must not close the account")
	assert.Equal(4, l.Count())

	assert.NoError(l.Close("js", 1111))
	assert.Equal(3, l.Count(), "Exactly one account is removed")

	_, err := l.Authenticate("js", 1111)
	assert.ErrorIs(err, ErrBadCredentials, "Closed account can no longer authenticate")

	_, err = l.Balance("jd")
	assert.NoError(err, "Other accounts are untouched")
}

func TestMovementsSorted(t *testing.T) {
	assert := assert.New(t)

	l := seeded(t)
	sorted, err := l.Movements("js", true)
	assert.NoError(err)
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(sorted[i-1], sorted[i], "Sorted output should be non-decreasing")
	}

	original, err := l.Movements("js", false)
	assert.NoError(err)
	assert.Equal([]float64{200, 450, -400, 3000, -650, -130, 70, 1300}, original,
		"Stored order must survive a sorted read")
}

func TestMovementsReturnsCopy(t *testing.T) {
	l := seeded(t)
	movs, err := l.Movements("js", false)
	require.NoError(t, err)

	movs[0] = -12345
	again, err := l.Movements("js", false)
	require.NoError(t, err)
	assert.Equal(t, 200.0, again[0], "Callers must not be able to mutate stored movements")
}

func TestSeed(t *testing.T) {
	assert := assert.New(t)

	l := seeded(t)
	assert.Equal(4, l.Count(), "Demo roster holds four accounts")

	for _, cred := range []struct {
		username string
		pin      int
	}{
		{"js", 1111}, {"jd", 2222}, {"stw", 3333}, {"ss", 4444},
	} {
		_, err := l.Authenticate(cred.username, cred.pin)
		assert.NoError(err, "Seeded account %s should authenticate", cred.username)
	}
}
