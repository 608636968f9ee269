package postgres

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"github.com/vfg2006/subscription-insights-api/internal/config"
)

// ErrMissingConnectionString indica que SQL_CONNECTION_STRING não foi configurada
var ErrMissingConnectionString = errors.New("SQL_CONNECTION_STRING environment variable not set")

type Conn interface {
	Close() error
	Ping(context.Context) error
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	RunInTransaction(context.Context, func(*sql.Tx) error) error
}

// Connector abre uma conexão por invocação; nada é mantido entre requisições
type Connector interface {
	Open(ctx context.Context) (Conn, error)
}

type Connection struct {
	*sql.DB
}

type connector struct {
	cfg config.Database
}

func NewConnector(cfg config.Database) Connector {
	return &connector{cfg: cfg}
}

func (c *connector) Open(ctx context.Context) (Conn, error) {
	conn, err := NewConnection(ctx, c.cfg)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	if cfg.ConnectionString == "" {
		return nil, ErrMissingConnectionString
	}

	db, err := sql.Open("postgres", cfg.ConnectionString)
	if err != nil {
		return nil, err
	}

	// Conexão de escopo único: sem pool entre invocações
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// RunInTransaction run a query in the transaction
func (c *Connection) RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}

	return tx.Commit()
}
