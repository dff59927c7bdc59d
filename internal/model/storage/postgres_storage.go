package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jinzhu/now"
	// postgres driver
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finances-ai/internal/entity/transaction"
	"max.ks1230/finances-ai/internal/entity/user"
	"max.ks1230/finances-ai/internal/logger"
	"max.ks1230/finances-ai/internal/model/customerr"
)

const dsnTemplate = "user=%s password=%s host=%s dbname=%s sslmode=%s"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var transactionColumns = []string{
	"id", "user_id", "name", "type", "category", "payment_method", "amount", "date", "created_at",
}

type config interface {
	Host() string
	Username() string
	Password() string
	Database() string
	SSLMode() string
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config config) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", fmt.Sprintf(dsnTemplate,
		config.Username(),
		config.Password(),
		config.Host(),
		config.Database(),
		config.SSLMode()))
	if err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = db.Ping(); err != nil {
		return nil, errors.Wrap(err, "cannot connect to database")
	}
	if err = runMigrations(db); err != nil {
		return nil, err
	}
	return &PostgresStorage{db}, nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) GetUserByID(ctx context.Context, id string) (user.Profile, error) {
	query := psql.Select("id", "email", "subscription_plan", "telegram_id").
		From("users").
		Where(sq.Eq{"id": id})

	var (
		res        user.Profile
		plan       string
		telegramID sql.NullInt64
	)
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&res.ID, &res.Email, &plan, &telegramID)
	if errors.Is(err, sql.ErrNoRows) {
		return user.Profile{}, errors.Wrap(customerr.ErrNotFound, "get user")
	}
	if err != nil {
		return user.Profile{}, errors.Wrap(err, "get user")
	}
	res.Plan = user.ParsePlan(plan)
	res.TelegramID = telegramID.Int64
	return res, nil
}

func (s *PostgresStorage) UserIDBySession(ctx context.Context, token string) (string, error) {
	query := psql.Select("user_id").
		From("sessions").
		Where(sq.Eq{"token": token}).
		Where(sq.Gt{"expires_at": time.Now()})

	var id string
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.Wrap(customerr.ErrNotFound, "get session")
	}
	return id, errors.Wrap(err, "get session")
}

func (s *PostgresStorage) UserIDByTelegramID(ctx context.Context, telegramID int64) (string, error) {
	query := psql.Select("id").
		From("users").
		Where(sq.Eq{"telegram_id": telegramID})

	var id string
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", errors.Wrap(customerr.ErrNotFound, "get telegram user")
	}
	return id, errors.Wrap(err, "get telegram user")
}

// LinkTelegram moves telegramID to userID, unlinking whichever user held it.
func (s *PostgresStorage) LinkTelegram(ctx context.Context, userID string, telegramID int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "link telegram")
	}
	defer rollback(tx)

	if _, err = unlinkTelegramQuery(userID, telegramID).RunWith(tx).ExecContext(ctx); err != nil {
		return errors.Wrap(err, "unlink telegram")
	}

	res, err := linkTelegramQuery(userID, telegramID).RunWith(tx).ExecContext(ctx)
	if err != nil {
		return errors.Wrap(err, "link telegram")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errors.Wrap(customerr.ErrNotFound, "link telegram")
	}
	return errors.Wrap(tx.Commit(), "link telegram")
}

func unlinkTelegramQuery(userID string, telegramID int64) sq.UpdateBuilder {
	return psql.Update("users").
		Set("telegram_id", nil).
		Where(sq.Eq{"telegram_id": telegramID}).
		Where(sq.NotEq{"id": userID})
}

func linkTelegramQuery(userID string, telegramID int64) sq.UpdateBuilder {
	return psql.Update("users").
		Set("telegram_id", telegramID).
		Where(sq.Eq{"id": userID})
}

// FindTransactions returns userID's transactions dated in [from, to).
func (s *PostgresStorage) FindTransactions(ctx context.Context, userID string, from, to time.Time) ([]transaction.Transaction, error) {
	query := psql.Select(transactionColumns...).
		From("transactions").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"date": from}).
		Where(sq.Lt{"date": to}).
		OrderBy("date")

	return s.queryTransactions(ctx, query, "find transactions")
}

// ListTransactions returns userID's transactions, newest first. limit <= 0 means all.
func (s *PostgresStorage) ListTransactions(ctx context.Context, userID string, limit int) ([]transaction.Transaction, error) {
	query := psql.Select(transactionColumns...).
		From("transactions").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	return s.queryTransactions(ctx, query, "list transactions")
}

func (s *PostgresStorage) CountCreatedTransactions(ctx context.Context, userID string, from, to time.Time) (int, error) {
	query := psql.Select("count(*)").
		From("transactions").
		Where(sq.Eq{"user_id": userID}).
		Where(sq.GtOrEq{"created_at": from}).
		Where(sq.Lt{"created_at": to})

	var count int
	err := query.RunWith(s.db).QueryRowContext(ctx).Scan(&count)
	return count, errors.Wrap(err, "count transactions")
}

// SaveTransaction inserts rec. With monthLimit > 0 the insert is rolled back
// once the user created more than monthLimit transactions this month.
func (s *PostgresStorage) SaveTransaction(ctx context.Context, rec transaction.Transaction, monthLimit int) error {
	query := psql.Insert("transactions").
		Columns(transactionColumns...).
		Values(rec.ID, rec.UserID, rec.Name, rec.Type, rec.Category, rec.PaymentMethod, rec.Amount, rec.Date, rec.CreatedAt)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "save transaction")
	}
	defer rollback(tx)

	if monthLimit > 0 {
		// serializes concurrent adds of one user until commit
		if _, err = lockUserQuery(rec.UserID).RunWith(tx).ExecContext(ctx); err != nil {
			return errors.Wrap(err, "lock user")
		}
	}

	_, err = query.RunWith(tx).ExecContext(ctx)
	if err != nil {
		return errors.Wrap(err, "save transaction")
	}
	if monthLimit > 0 {
		limMet, err := s.isLimitMet(ctx, tx, rec.UserID, monthLimit)
		if err != nil {
			return errors.Wrap(err, "save transaction")
		}
		if !limMet {
			return &customerr.LimitError{Err: "user limit exceeded"}
		}
	}
	return errors.Wrap(tx.Commit(), "save transaction")
}

func lockUserQuery(userID string) sq.SelectBuilder {
	return psql.Select("id").
		From("users").
		Where(sq.Eq{"id": userID}).
		Suffix("FOR UPDATE")
}

func rollback(tx *sql.Tx) {
	txErr := tx.Rollback()
	if txErr != nil && !errors.Is(txErr, sql.ErrTxDone) {
		logger.Error("error when transaction rollback", zap.Error(txErr))
	}
}

func (s *PostgresStorage) isLimitMet(ctx context.Context, tx *sql.Tx, userID string, monthLimit int) (bool, error) {
	query := `
	SELECT count(*) <= $4 AS test FROM transactions
	WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
`
	from := now.BeginningOfMonth()
	var test bool
	err := tx.QueryRowContext(ctx, query,
		userID, from, from.AddDate(0, 1, 0), monthLimit).
		Scan(&test)
	if err != nil {
		return false, errors.Wrap(err, "ensure limit")
	}
	return test, nil
}

func (s *PostgresStorage) queryTransactions(ctx context.Context, query sq.SelectBuilder, op string) ([]transaction.Transaction, error) {
	rows, err := query.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(err, op)
	}
	defer func() {
		rowErr := rows.Close()
		if rowErr != nil {
			logger.Error("error closing rows", zap.Error(rowErr))
		}
	}()

	txs := make([]transaction.Transaction, 0)
	for rows.Next() {
		var t transaction.Transaction
		err = rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Type, &t.Category, &t.PaymentMethod, &t.Amount, &t.Date, &t.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(err, op)
		}
		txs = append(txs, t)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, op)
	}

	return txs, nil
}
