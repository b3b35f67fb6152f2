// Package auth persists users to a key-value store and tracks which user is
// logged in.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cleared-dev/demobank/internal/bank"
	"github.com/cleared-dev/demobank/internal/model"
	"github.com/cleared-dev/demobank/internal/storage"
)

const (
	DefaultUsersKey   = "demo_bank_users"
	DefaultSessionKey = "demo_bank_session"
)

var (
	// ErrUserExists means a user with the requested name is already persisted.
	ErrUserExists = errors.New("user already exists")

	// ErrNoSession means nobody is logged in.
	ErrNoSession = errors.New("not logged in")
)

// Store loads and saves the persisted user set and the session identity.
//
// Every call reads the store afresh; users returned by one call are
// independent of users returned by the next. Nothing guards the
// read-modify-write in SaveUser against other writers.
type Store struct {
	kv         storage.KV
	numbers    *bank.Registry
	usersKey   string
	sessionKey string
	now        func() time.Time
	log        zerolog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithKeys overrides the storage keys for the user set and the session.
func WithKeys(usersKey, sessionKey string) Option {
	return func(s *Store) {
		s.usersKey = usersKey
		s.sessionKey = sessionKey
	}
}

// WithClock sets the clock used for the missing account number fallback.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a Store. Reconstructed account numbers are registered
// with reg so later generation avoids them.
func NewStore(kv storage.KV, reg *bank.Registry, baseLogger *zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		kv:         kv,
		numbers:    reg,
		usersKey:   DefaultUsersKey,
		sessionKey: DefaultSessionKey,
		now:        time.Now,
		log:        baseLogger.With().Str("component", "auth_store").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListUsers reconstructs every persisted user with its accounts, in stored
// order. An empty store yields no users.
func (s *Store) ListUsers(ctx context.Context) ([]*bank.User, error) {
	records, err := s.loadRecords(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]*bank.User, 0, len(records))
	for _, rec := range records {
		users = append(users, s.restore(rec))
	}
	return users, nil
}

func (s *Store) loadRecords(ctx context.Context) ([]model.UserRecord, error) {
	data, err := s.kv.Get(ctx, s.usersKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	var records []model.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Error().Err(err).Str("key", s.usersKey).Msg("Stored users are not valid JSON")
		return nil, fmt.Errorf("decoding users: %w", err)
	}
	return records, nil
}

func (s *Store) restore(rec model.UserRecord) *bank.User {
	u := bank.RestoreUser(s.numbers, rec.Name, rec.EncryptedPIN)
	for _, acc := range rec.Accounts {
		if acc.AccountNumber == nil {
			// Same-millisecond reloads can produce colliding numbers.
			n := s.now().UnixMilli()
			acc.AccountNumber = &n
			s.log.Warn().Str("user", rec.Name).Int64("account_number", n).Msg("Stored account has no number, using timestamp")
		}
		for _, tx := range acc.Transactions {
			if tx.DateText != "" {
				s.log.Warn().Str("user", rec.Name).Int64("account_number", *acc.AccountNumber).Str("date", tx.DateText).Msg("Stored transaction has an unrecognized date, keeping it as text")
			}
		}
		u.AddExistingAccount(acc)
	}
	return u
}

// SaveAll overwrites the persisted user set. Receipts are not persisted.
func (s *Store) SaveAll(ctx context.Context, users []*bank.User) error {
	records := make([]model.UserRecord, 0, len(users))
	for _, u := range users {
		records = append(records, u.Record())
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding users: %w", err)
	}
	if err := s.kv.Set(ctx, s.usersKey, data); err != nil {
		return fmt.Errorf("saving users: %w", err)
	}
	return nil
}

// SaveUser replaces the persisted user with the same name, or appends u if
// there is none.
func (s *Store) SaveUser(ctx context.Context, u *bank.User) error {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return err
	}
	replaced := false
	for i, existing := range users {
		if existing.Name() == u.Name() {
			users[i] = u
			replaced = true
			break
		}
	}
	if !replaced {
		users = append(users, u)
	}
	return s.SaveAll(ctx, users)
}

// FindUser returns the persisted user with exactly this name, or nil, nil.
func (s *Store) FindUser(ctx context.Context, name string) (*bank.User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Name() == name {
			return u, nil
		}
	}
	return nil, nil
}

// CreateUser persists a new user and logs it in. It fails with
// ErrUserExists if the name is taken.
func (s *Store) CreateUser(ctx context.Context, name, pin string) (*bank.User, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Name() == name {
			s.log.Warn().Str("user", name).Msg("Registration rejected, name taken")
			return nil, fmt.Errorf("%w: %s", ErrUserExists, name)
		}
	}

	u := bank.NewUser(s.numbers, name, pin)
	if err := s.SaveAll(ctx, append(users, u)); err != nil {
		return nil, err
	}
	if err := s.setSession(ctx, name); err != nil {
		return nil, err
	}
	s.log.Info().Str("user", name).Msg("User created")
	return u, nil
}

// Login records name as the session identity if the PIN matches. A
// missing user or wrong PIN returns false with a nil error; the error is
// reserved for storage failures.
func (s *Store) Login(ctx context.Context, name, pin string) (bool, error) {
	u, err := s.FindUser(ctx, name)
	if err != nil {
		return false, err
	}
	if u == nil || !u.VerifyPIN(pin) {
		s.log.Warn().Str("user", name).Msg("Login rejected")
		return false, nil
	}
	if err := s.setSession(ctx, name); err != nil {
		return false, err
	}
	s.log.Info().Str("user", name).Msg("Logged in")
	return true, nil
}

// Logout clears the session identity.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.sessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// SessionName returns the logged-in user name, or "" when logged out.
func (s *Store) SessionName(ctx context.Context) (string, error) {
	data, err := s.kv.Get(ctx, s.sessionKey)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	return string(data), nil
}

// SessionUser reloads the logged-in user from storage. It returns nil, nil
// when nobody is logged in or the named user no longer exists.
func (s *Store) SessionUser(ctx context.Context) (*bank.User, error) {
	name, err := s.SessionName(ctx)
	if err != nil || name == "" {
		return nil, err
	}
	return s.FindUser(ctx, name)
}

// RequireSessionUser is SessionUser with ErrNoSession instead of nil.
func (s *Store) RequireSessionUser(ctx context.Context) (*bank.User, error) {
	u, err := s.SessionUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNoSession
	}
	return u, nil
}

func (s *Store) setSession(ctx context.Context, name string) error {
	if err := s.kv.Set(ctx, s.sessionKey, []byte(name)); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}
