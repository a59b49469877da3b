package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/MrKriegler/insurance-premium/internal/core"
)

const pgUniqueViolation = "23505"

type ApplicationRepo struct {
	db        *sql.DB
	opTimeout time.Duration

	insertSQL string
	getSQL    string
	countSQL  string
}

func NewApplicationRepo(db *sql.DB, d Dialect, opTimeout time.Duration) *ApplicationRepo {
	p := d.placeholder
	return &ApplicationRepo{
		db:        db,
		opTimeout: opTimeout,
		insertSQL: fmt.Sprintf(`INSERT INTO insurance_applications
			(id, customer_name, customer_address, insurance_type, calculated_premium, created_at)
			VALUES (%s, %s, %s, %s, %s, %s)`, p(1), p(2), p(3), p(4), p(5), p(6)),
		getSQL: fmt.Sprintf(`SELECT id, customer_name, customer_address, insurance_type, calculated_premium, created_at
			FROM insurance_applications WHERE id = %s`, p(1)),
		countSQL: `SELECT insurance_type, COUNT(*) FROM insurance_applications GROUP BY insurance_type`,
	}
}

func (r *ApplicationRepo) Create(ctx context.Context, app core.Application) error {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, r.insertSQL,
		app.ID,
		app.CustomerName,
		app.CustomerAddress,
		string(app.InsuranceType),
		app.CalculatedPremium,
		app.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return core.ErrApplicationExists
		}
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepo) Get(ctx context.Context, id string) (core.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var (
		app       core.Application
		it        string
		createdAt string
	)
	err := r.db.QueryRowContext(ctx, r.getSQL, id).Scan(
		&app.ID,
		&app.CustomerName,
		&app.CustomerAddress,
		&it,
		&app.CalculatedPremium,
		&createdAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Application{}, core.ErrApplicationNotFound
	}
	if err != nil {
		return core.Application{}, fmt.Errorf("select application: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return core.Application{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	app.InsuranceType = core.InsuranceType(it)
	app.CreatedAt = ts.UTC()
	return app, nil
}

func (r *ApplicationRepo) CountByType(ctx context.Context) (map[core.InsuranceType]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, r.countSQL)
	if err != nil {
		return nil, fmt.Errorf("count applications: %w", err)
	}
	defer rows.Close()

	counts := make(map[core.InsuranceType]int64, len(core.InsuranceTypes))
	for _, it := range core.InsuranceTypes {
		counts[it] = 0
	}
	for rows.Next() {
		var (
			it string
			n  int64
		)
		if err := rows.Scan(&it, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[core.InsuranceType(it)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate counts: %w", err)
	}
	return counts, nil
}

func (r *ApplicationRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return false
}
