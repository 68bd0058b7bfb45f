// Package services contains application services for the LuxeStay client.
// This file defines the identity store: account registration, login with an
// optional role constraint, and the single current session kept in the
// local key-value store.
package services

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/luxestay/internal/client/auth"
	"github.com/dmitrijs2005/luxestay/internal/client/models"
	"github.com/dmitrijs2005/luxestay/internal/client/repositories/kv"
	"github.com/dmitrijs2005/luxestay/internal/cryptox"
	"github.com/dmitrijs2005/luxestay/internal/ids"
	"github.com/dmitrijs2005/luxestay/internal/logging"
)

// Keys of the two persisted entries.
const (
	UsersKey   = "luxestay_users"
	SessionKey = "luxestay_auth"
)

// AuthService defines identity operations used by forms and route guards.
//
// Contract:
//   - Initialize: seed the demo staff accounts if no account list exists yet.
//   - Signup: register a guest account; never logs the user in.
//   - Login: check credentials (and role, when requiredRole is not empty)
//     and replace the current session.
//   - CurrentUser: the logged-in identity, or nil. A corrupt session entry
//     reads as nil; only storage failures are errors.
//   - CurrentSession: same as CurrentUser, with the session token.
//   - Logout: drop the current session; idempotent.
type AuthService interface {
	Initialize(ctx context.Context) error
	Signup(ctx context.Context, name, email string, password []byte) (*models.Account, error)
	Login(ctx context.Context, email string, password []byte, requiredRole models.Role) (*models.Session, error)
	CurrentUser(ctx context.Context) (*models.Account, error)
	CurrentSession(ctx context.Context) (*models.Session, error)
	IsAuthenticated(ctx context.Context) (bool, error)
	Logout(ctx context.Context) error
	AuthState(ctx context.Context) (models.AuthState, error)
}

// DefaultAccount is a demo account seeded on first initialization.
type DefaultAccount struct {
	models.Account
	Password string
}

// DefaultAccounts are the fixed demo credentials of the back-office.
var DefaultAccounts = []DefaultAccount{
	{Account: models.Account{ID: "admin-1", Name: "Admin User", Email: "admin@luxestay.com", Role: models.RoleAdmin}, Password: "admin123"},
	{Account: models.Account{ID: "manager-1", Name: "Manager User", Email: "manager@luxestay.com", Role: models.RoleManager}, Password: "manager123"},
	{Account: models.Account{ID: "staff-1", Name: "Staff User", Email: "staff@luxestay.com", Role: models.RoleStaff}, Password: "staff123"},
}

// storedAccount is the persisted account record. Password holds an argon2id
// hash; records written by older clients may still carry plaintext.
type storedAccount struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

func (a storedAccount) public() models.Account {
	return models.Account{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role}
}

// storedSession keeps User as a pointer so a missing user reads as no session.
type storedSession struct {
	User  *models.Account `json:"user"`
	Token string          `json:"token"`
}

// accountBook is the ordered account list with an email index.
// The index keeps the first occurrence of an email.
type accountBook struct {
	accounts []storedAccount
	byEmail  map[string]int
}

func newAccountBook(accounts []storedAccount) *accountBook {
	b := &accountBook{accounts: accounts, byEmail: make(map[string]int, len(accounts))}
	for i, a := range accounts {
		if _, seen := b.byEmail[a.Email]; !seen {
			b.byEmail[a.Email] = i
		}
	}
	return b
}

func (b *accountBook) lookup(email string) (storedAccount, bool) {
	i, ok := b.byEmail[email]
	if !ok {
		return storedAccount{}, false
	}
	return b.accounts[i], true
}

func (b *accountBook) add(a storedAccount) {
	if _, seen := b.byEmail[a.Email]; !seen {
		b.byEmail[a.Email] = len(b.accounts)
	}
	b.accounts = append(b.accounts, a)
}

// authService is the AuthService backed by a kv.Store.
type authService struct {
	store  kv.Store
	hasher *cryptox.PasswordHasher
	tokens *auth.TokenIssuer
	logger logging.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService. Call Initialize before use.
func NewAuthService(store kv.Store, hasher *cryptox.PasswordHasher, tokens *auth.TokenIssuer, logger logging.Logger) AuthService {
	return &authService{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("component", "auth"),
		now:    time.Now,
	}
}

// Initialize writes DefaultAccounts when the account entry is absent.
// An existing entry, even an empty or unreadable one, is left alone.
func (s *authService) Initialize(ctx context.Context) error {
	return s.store.WithTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		raw, err := repo.Get(ctx, UsersKey)
		if err != nil {
			return err
		}
		if raw != nil {
			return nil
		}

		seeded := make([]storedAccount, 0, len(DefaultAccounts))
		for _, d := range DefaultAccounts {
			hash, err := s.hasher.Hash([]byte(d.Password))
			if err != nil {
				return fmt.Errorf("hash default password: %w", err)
			}
			seeded = append(seeded, storedAccount{
				ID:       d.ID,
				Name:     d.Name,
				Email:    d.Email,
				Password: hash,
				Role:     d.Role,
			})
		}
		if err := s.saveAccounts(ctx, repo, seeded); err != nil {
			return err
		}
		s.logger.Info(ctx, "seeded default accounts", "count", len(seeded))
		return nil
	})
}

// Signup appends a guest account. The email must not be registered yet.
func (s *authService) Signup(ctx context.Context, name, email string, password []byte) (*models.Account, error) {
	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}

	var created storedAccount
	err := s.store.WithTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		book, err := s.loadAccounts(ctx, repo)
		if err != nil {
			return err
		}
		if _, exists := book.lookup(email); exists {
			return ErrDuplicateEmail
		}

		now := s.now()
		id, err := ids.NewULID(now)
		if err != nil {
			return fmt.Errorf("generate account id: %w", err)
		}
		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		created = storedAccount{
			ID:       "guest-" + id,
			Name:     name,
			Email:    email,
			Password: hash,
			Role:     models.RoleGuest,
		}
		book.add(created)
		return s.saveAccounts(ctx, repo, book.accounts)
	})
	if err != nil {
		s.logger.Warn(ctx, "signup failed", "email", email, "error", err)
		return nil, err
	}

	s.logger.Info(ctx, "account created", "email", email, "id", created.ID)
	account := created.public()
	return &account, nil
}

// Login authenticates email/password and stores a new current session,
// replacing any previous one. requiredRole == "" means any role.
func (s *authService) Login(ctx context.Context, email string, password []byte, requiredRole models.Role) (*models.Session, error) {
	book, err := s.loadAccounts(ctx, s.store)
	if err != nil {
		return nil, err
	}

	account, ok := book.lookup(email)
	if !ok {
		s.logger.Info(ctx, "login rejected", "email", email, "reason", "unknown email")
		return nil, ErrInvalidCredentials
	}

	match, err := s.checkPassword(account.Password, password)
	if err != nil {
		s.logger.Warn(ctx, "stored password hash is unusable", "email", email, "error", err)
	}
	if !match {
		s.logger.Info(ctx, "login rejected", "email", email, "reason", "password mismatch")
		return nil, ErrInvalidCredentials
	}

	if requiredRole != "" && account.Role != requiredRole {
		s.logger.Info(ctx, "login rejected", "email", email, "reason", "role mismatch", "role", account.Role, "required", requiredRole)
		return nil, &RoleMismatchError{Required: requiredRole, Actual: account.Role}
	}

	s.upgradeHash(ctx, account, password)

	user := account.public()
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(storedSession{User: &user, Token: token})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.store.Set(ctx, SessionKey, data); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "logged in", "email", email, "role", user.Role)
	return &models.Session{User: user, Token: token}, nil
}

func (s *authService) CurrentUser(ctx context.Context) (*models.Account, error) {
	session, err := s.CurrentSession(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	return &session.User, nil
}

func (s *authService) CurrentSession(ctx context.Context) (*models.Session, error) {
	raw, err := s.store.Get(ctx, SessionKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var session storedSession
	if err := json.Unmarshal(raw, &session); err != nil {
		s.logger.Debug(ctx, "ignoring unreadable session entry", "error", err)
		return nil, nil
	}
	if session.User == nil {
		return nil, nil
	}
	return &models.Session{User: *session.User, Token: session.Token}, nil
}

func (s *authService) IsAuthenticated(ctx context.Context) (bool, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, SessionKey); err != nil {
		return err
	}
	s.logger.Info(ctx, "logged out")
	return nil
}

func (s *authService) AuthState(ctx context.Context) (models.AuthState, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return models.AuthState{}, err
	}
	return models.AuthState{User: user, IsAuthenticated: user != nil}, nil
}

// loadAccounts reads the account list. A missing or unreadable entry reads
// as an empty list.
func (s *authService) loadAccounts(ctx context.Context, repo kv.Repository) (*accountBook, error) {
	raw, err := repo.Get(ctx, UsersKey)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return newAccountBook(nil), nil
	}

	var accounts []storedAccount
	if err := json.Unmarshal(raw, &accounts); err != nil {
		s.logger.Warn(ctx, "account list is unreadable, treating as empty", "error", err)
		return newAccountBook(nil), nil
	}
	return newAccountBook(accounts), nil
}

func (s *authService) saveAccounts(ctx context.Context, repo kv.Repository, accounts []storedAccount) error {
	if accounts == nil {
		accounts = []storedAccount{}
	}
	data, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encode accounts: %w", err)
	}
	return repo.Set(ctx, UsersKey, data)
}

// upgradeHash rewrites the stored password of an account that just proved
// its password, when the record is plaintext or was hashed with other
// params. Failures are logged and do not affect the login.
func (s *authService) upgradeHash(ctx context.Context, account storedAccount, password []byte) {
	if !s.hasher.NeedsRehash(account.Password) {
		return
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, repo kv.Repository) error {
		book, err := s.loadAccounts(ctx, repo)
		if err != nil {
			return err
		}
		i, ok := book.byEmail[account.Email]
		if !ok || book.accounts[i].Password != account.Password {
			return nil
		}

		hash, err := s.hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		book.accounts[i].Password = hash
		return s.saveAccounts(ctx, repo, book.accounts)
	})
	if err != nil {
		s.logger.Warn(ctx, "password hash upgrade failed", "email", account.Email, "error", err)
		return
	}
	s.logger.Debug(ctx, "password hash upgraded", "email", account.Email)
}

func (s *authService) checkPassword(stored string, candidate []byte) (bool, error) {
	if !cryptox.IsHash(stored) {
		return subtle.ConstantTimeCompare([]byte(stored), candidate) == 1, nil
	}
	match, err := s.hasher.Verify(stored, candidate)
	if err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}
	return match, nil
}
