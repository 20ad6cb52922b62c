package ledger

import "fmt"

// Seed registers the fixed demo roster the application starts with.
func Seed(l *Ledger) error {
	demo := []struct {
		owner        string
		movements    []float64
		interestRate float64
		pin          int
	}{
		{"Jonas Schmedtmann", []float64{200, 450, -400, 3000, -650, -130, 70, 1300}, 1.2, 1111},
		{"Jessica Davis", []float64{5000, 3400, -150, -790, -3210, -1000, 8500, -30}, 1.5, 2222},
		{"Steven Thomas Williams", []float64{200, -200, 340, -300, -20, 50, 400, -460}, 0.7, 3333},
		{"Sarah Smith", []float64{430, 1000, 700, 50, 90}, 1, 4444},
	}

	for _, d := range demo {
		if _, err := l.Register(d.owner, d.pin, d.interestRate, d.movements); err != nil {
			return fmt.Errorf("failed to seed account %q: %w", d.owner, err)
		}
	}
	return nil
}
