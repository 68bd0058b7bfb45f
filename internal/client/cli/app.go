package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/luxestay/internal/client/auth"
	"github.com/dmitrijs2005/luxestay/internal/client/config"
	"github.com/dmitrijs2005/luxestay/internal/client/guard"
	"github.com/dmitrijs2005/luxestay/internal/client/localdb"
	"github.com/dmitrijs2005/luxestay/internal/client/repositories/kv"
	"github.com/dmitrijs2005/luxestay/internal/client/services"
	"github.com/dmitrijs2005/luxestay/internal/common"
	"github.com/dmitrijs2005/luxestay/internal/cryptox"
	"github.com/dmitrijs2005/luxestay/internal/filex"
	"github.com/dmitrijs2005/luxestay/internal/logging"
)

// InMemoryDatabase selects a throwaway store that is lost on exit.
const InMemoryDatabase = ":memory:"

type App struct {
	config      *config.Config
	authService services.AuthService
	guard       *guard.Guard
	tokens      *auth.TokenIssuer
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	closeFn     func() error

	// signupEmail prefills the next guest login after a signup.
	signupEmail string
}

// NewApp opens the local store, seeds the default accounts and returns a
// ready App. The caller owns the App and must call Run (or Close).
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewTextLogger(os.Stderr, c.LogLevel)

	store, closeFn, err := openStore(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	secret := []byte(c.SecretKey)
	if len(secret) == 0 {
		logger.Warn(ctx, "no secret key configured, tokens from earlier runs will not verify")
		secret = common.GenerateRandByteArray(32)
	}
	tokens := auth.NewTokenIssuer(secret)

	as := services.NewAuthService(store, cryptox.NewPasswordHasher(c.PasswordHash), tokens, logger)
	if err := as.Initialize(ctx); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("initialize identity store: %w", err)
	}

	return &App{
		config:      c,
		authService: as,
		guard:       guard.NewGuard(as),
		tokens:      tokens,
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		closeFn:     closeFn,
	}, nil
}

func openStore(ctx context.Context, path string) (kv.Store, func() error, error) {
	if path == InMemoryDatabase {
		return kv.NewMemoryStore(), func() error { return nil }, nil
	}
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, nil, err
	}
	db, err := localdb.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	return kv.NewSQLiteStore(db), db.Close, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

// Close releases the local database.
func (a *App) Close(ctx context.Context) {
	if err := a.closeFn(); err != nil {
		a.logger.Error(ctx, "error closing database", "error", err)
	}
}

// withTimeout bounds a single store operation. Prompts are not covered,
// the user may take as long as they like to type.
func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config == nil || a.config.CommandTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, a.config.CommandTimeout)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	opCtx, cancel := a.withTimeout(ctx)
	defer cancel()

	ok, err := a.authService.IsAuthenticated(opCtx)
	if err != nil {
		a.logger.Error(ctx, "error reading session", "error", err)
		return false
	}
	return ok
}
