package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"herdboard/internal/core/apperror"
	"herdboard/internal/core/id"
	"herdboard/internal/domain/ledger"
)

var saleColumns = []string{
	"id", "entry_date", "amount", "animal_id", "buyer", "created_at",
}

// SaleRepo implements ledger.SaleRepository on PostgreSQL.
type SaleRepo struct {
	pool    *Pool
	builder squirrel.StatementBuilderType
}

// NewSaleRepo creates the sale ledger repository.
func NewSaleRepo(pool *Pool) *SaleRepo {
	return &SaleRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *SaleRepo) Create(ctx context.Context, e *ledger.SaleEntry) error {
	query, args, err := r.builder.
		Insert("sale_entries").
		Columns(saleColumns...).
		Values(e.ID, e.Date, e.Amount, e.AnimalID, e.Buyer, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert sale entry: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewValidation("sale entry references an unknown animal").
				WithDetail("animalId", e.AnimalID)
		}
		return fmt.Errorf("insert sale entry: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, entryID id.ID) (*ledger.SaleEntry, error) {
	query, args, err := r.builder.
		Select(saleColumns...).
		From("sale_entries").
		Where(squirrel.Eq{"id": entryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select sale entry: %w", err)
	}

	var e ledger.SaleEntry
	if err := pgxscan.Get(ctx, r.pool, &e, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("sale entry", entryID)
		}
		return nil, fmt.Errorf("select sale entry: %w", err)
	}
	return &e, nil
}

func (r *SaleRepo) List(ctx context.Context, filter ledger.RangeFilter) ([]ledger.SaleEntry, error) {
	q := r.builder.
		Select(saleColumns...).
		From("sale_entries").
		OrderBy("entry_date DESC", "created_at DESC")
	q = applyRangeFilter(q, "entry_date", filter)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sale entries: %w", err)
	}

	var entries []ledger.SaleEntry
	if err := pgxscan.Select(ctx, r.pool, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list sale entries: %w", err)
	}
	return entries, nil
}

func (r *SaleRepo) Delete(ctx context.Context, entryID id.ID) error {
	query, args, err := r.builder.
		Delete("sale_entries").
		Where(squirrel.Eq{"id": entryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete sale entry: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete sale entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sale entry", entryID)
	}
	return nil
}
