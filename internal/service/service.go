package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/bankist/bankist-service/internal/config"
	"github.com/bankist/bankist-service/internal/ledger"
	"github.com/bankist/bankist-service/internal/models"
	"github.com/bankist/bankist-service/internal/scheduler"
	"github.com/bankist/bankist-service/internal/session"
)

// ErrNoSession means the operation requires an active login session.
var ErrNoSession = errors.New("no active session")

// Service handles business logic
type Service struct {
	ledger   *ledger.Ledger
	sessions *session.Manager
	loans    *scheduler.Scheduler
	log      *logrus.Logger
	config   *config.Config
}

// NewService initializes a new service
func NewService(l *ledger.Ledger, sessions *session.Manager, loans *scheduler.Scheduler, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{ledger: l, sessions: sessions, loans: loans, log: log, config: cfg}
}

// Login authenticates an account, opens its session and returns a JWT token
func (s *Service) Login(username string, pin int) (string, *models.Account, error) {
	acc, err := s.ledger.Authenticate(username, pin)
	if err != nil {
		s.log.Warnf("Failed login for %s", username)
		return "", nil, err
	}

	s.sessions.Start(acc.Username)

	// Generate JWT
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   acc.Username,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.TokenTTL)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", acc.Username)
	return tokenString, acc, nil
}

// Logout ends the active session. A loan already approved keeps its posting
// schedule; only closing the account cancels it.
func (s *Service) Logout(username string) {
	s.sessions.End()
	s.log.Infof("User logged out: %s", username)
}

// Transfer moves amount from the session account to the recipient.
func (s *Service) Transfer(username, to string, amount float64) error {
	if err := s.requireSession(username); err != nil {
		return err
	}
	if err := s.ledger.Transfer(username, to, amount); err != nil {
		s.log.Warnf("Transfer declined for %s: %v", username, err)
		return err
	}
	s.log.Infof("Transferred %.2f from %s to %s", amount, username, to)
	return nil
}

// RequestLoan checks eligibility and schedules the approved amount to post
// after the configured delay; the new movement is visible only once the
// deferred task fires.
func (s *Service) RequestLoan(username string, amount float64) error {
	if err := s.requireSession(username); err != nil {
		return err
	}
	if err := s.ledger.RequestLoan(username, amount); err != nil {
		s.log.Warnf("Loan declined for %s: %v", username, err)
		return err
	}

	s.loans.Schedule(username, func() {
		if err := s.ledger.PostLoan(username, amount); err != nil {
			s.log.Errorf("Failed to post loan for %s: %v", username, err)
			return
		}
		s.log.Infof("Loan of %.2f posted to %s", amount, username)
	})

	s.log.Infof("Loan of %.2f approved for %s", amount, username)
	return nil
}

// CloseAccount removes the session account from the roster. The supplied
// credentials must name the account that is currently logged in; closure
// cancels any loan still waiting to post and ends the session.
func (s *Service) CloseAccount(sessionUser, username string, pin int) error {
	if err := s.requireSession(sessionUser); err != nil {
		return err
	}
	if username != sessionUser {
		s.log.Warnf("Account closure declined for %s: credentials do not match session", sessionUser)
		return ledger.ErrBadCredentials
	}
	if err := s.ledger.Close(username, pin); err != nil {
		s.log.Warnf("Account closure declined for %s: %v", username, err)
		return err
	}

	s.loans.Cancel(username)
	s.sessions.End()
	s.log.Infof("Account closed: %s", username)
	return nil
}

// Statement returns the session account's movements, optionally sorted ascending.
func (s *Service) Statement(username string, sorted bool) ([]float64, error) {
	if err := s.requireSession(username); err != nil {
		return nil, err
	}
	return s.ledger.Movements(username, sorted)
}

// Balance returns the session account's current balance.
func (s *Service) Balance(username string) (float64, error) {
	if err := s.requireSession(username); err != nil {
		return 0, err
	}
	return s.ledger.Balance(username)
}

// Summary returns the session account's income, expense and interest totals.
func (s *Service) Summary(username string) (models.Summary, error) {
	if err := s.requireSession(username); err != nil {
		return models.Summary{}, err
	}
	return s.ledger.Summarize(username)
}

// ExpireSessions drops the active session once it has been idle past the TTL.
// Runs on a fixed schedule from main.
func (s *Service) ExpireSessions() {
	if s.sessions.Sweep() {
		s.log.Info("Idle session expired")
	}
}

func (s *Service) requireSession(username string) error {
	if _, ok := s.sessions.Current(username); !ok {
		return ErrNoSession
	}
	return nil
}
