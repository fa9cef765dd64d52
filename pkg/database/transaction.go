package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bookmanager/pkg/logger"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner starts a transaction.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// DB is what repositories hold: a pool (or a pgxmock pool in tests).
type DB interface {
	Querier
	TxBeginner
}

// TxFunc is executed inside a transaction.
type TxFunc func(pgx.Tx) error

// WithTransaction runs fn inside a transaction begun on db.
// Rollback on error or panic, commit otherwise. fn's error is returned as is.
func WithTransaction(ctx context.Context, db TxBeginner, fn TxFunc) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			rollback(ctx, tx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		rollback(ctx, tx)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.Error("[DATABASE] rollback failed", err)
	}
}

// ========================================
// CONTEXT-CARRIED TRANSACTIONS
// ========================================

type txKey struct{}

// txState is what the context carries while a Transactor transaction is open.
type txState struct {
	tx          pgx.Tx
	afterCommit []func(ctx context.Context)
}

// ContextWithTx returns a copy of ctx carrying tx.
// AfterCommit hooks registered on it are only run when the Transactor owns tx.
func ContextWithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, &txState{tx: tx})
}

// TxFromContext returns the transaction stored by ContextWithTx, if any.
func TxFromContext(ctx context.Context) (pgx.Tx, bool) {
	st, ok := ctx.Value(txKey{}).(*txState)
	if !ok {
		return nil, false
	}
	return st.tx, true
}

// Conn returns the ambient transaction when ctx carries one, fallback otherwise.
func Conn(ctx context.Context, fallback Querier) Querier {
	if tx, ok := TxFromContext(ctx); ok {
		return tx
	}
	return fallback
}

// AfterCommit defers fn until the transaction in ctx commits; it is dropped on rollback.
// Without a transaction fn runs immediately.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if st, ok := ctx.Value(txKey{}).(*txState); ok {
		st.afterCommit = append(st.afterCommit, fn)
		return
	}
	fn(ctx)
}

// Transactor lets services group several repository calls into one transaction
// without knowing about pgx. Repositories pick the transaction up through Conn.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type transactor struct {
	db TxBeginner
}

func NewTransactor(db TxBeginner) Transactor {
	return &transactor{db: db}
}

// WithTx joins the transaction already in ctx; otherwise it starts a new one
// and runs the AfterCommit hooks once it has committed.
func (t *transactor) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFromContext(ctx); ok {
		return fn(ctx)
	}

	var st *txState
	err := WithTransaction(ctx, t.db, func(tx pgx.Tx) error {
		st = &txState{tx: tx}
		return fn(context.WithValue(ctx, txKey{}, st))
	})
	if err != nil {
		return err
	}

	for _, hook := range st.afterCommit {
		hook(ctx)
	}
	return nil
}
