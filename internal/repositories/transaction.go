package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TxManagerInterface interface {
	RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// txBeginner - то, что умеет открыть транзакцию (*pgxpool.Pool).
type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type TxManager struct {
	db     txBeginner
	logger *zap.Logger
}

func NewTxManager(pool *pgxpool.Pool, logger *zap.Logger) TxManagerInterface {
	return &TxManager{db: pool, logger: logger}
}

// RunInTransaction коммитит транзакцию, если fn вернула nil.
// Ошибка или паника в fn откатывают все изменения; паника пробрасывается дальше.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			m.rollback(ctx, tx, fmt.Errorf("panic: %v", p))
			panic(p)
		}
		if err != nil {
			m.rollback(ctx, tx, err)
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			err = fmt.Errorf("ошибка при коммите транзакции: %w", commitErr)
		}
	}()

	return fn(tx)
}

// rollback откатывает транзакцию. Причина отката остается основной ошибкой,
// сбой самого отката только логируется.
func (m *TxManager) rollback(ctx context.Context, tx pgx.Tx, cause error) {
	if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
		m.logger.Error("Не удалось откатить транзакцию",
			zap.NamedError("cause", cause),
			zap.Error(rbErr),
		)
		return
	}
	m.logger.Debug("Транзакция откачена", zap.NamedError("cause", cause))
}
