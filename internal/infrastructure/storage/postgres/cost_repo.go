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

var costColumns = []string{
	"id", "entry_date", "amount", "category", "animal_id", "description", "created_at",
}

// CostRepo implements ledger.CostRepository on PostgreSQL.
type CostRepo struct {
	pool    *Pool
	builder squirrel.StatementBuilderType
}

// NewCostRepo creates the cost ledger repository.
func NewCostRepo(pool *Pool) *CostRepo {
	return &CostRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *CostRepo) Create(ctx context.Context, e *ledger.CostEntry) error {
	query, args, err := r.builder.
		Insert("cost_entries").
		Columns(costColumns...).
		Values(e.ID, e.Date, e.Amount, e.Category, e.AnimalID, e.Description, e.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert cost entry: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewValidation("cost entry references an unknown animal").
				WithDetail("animalId", e.AnimalID)
		}
		return fmt.Errorf("insert cost entry: %w", err)
	}
	return nil
}

func (r *CostRepo) GetByID(ctx context.Context, entryID id.ID) (*ledger.CostEntry, error) {
	query, args, err := r.builder.
		Select(costColumns...).
		From("cost_entries").
		Where(squirrel.Eq{"id": entryID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select cost entry: %w", err)
	}

	var e ledger.CostEntry
	if err := pgxscan.Get(ctx, r.pool, &e, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("cost entry", entryID)
		}
		return nil, fmt.Errorf("select cost entry: %w", err)
	}
	return &e, nil
}

func (r *CostRepo) List(ctx context.Context, filter ledger.RangeFilter) ([]ledger.CostEntry, error) {
	q := r.builder.
		Select(costColumns...).
		From("cost_entries").
		OrderBy("entry_date DESC", "created_at DESC")
	q = applyRangeFilter(q, "entry_date", filter)

	if filter.Category != "" {
		q = q.Where(squirrel.Eq{"category": filter.Category})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list cost entries: %w", err)
	}

	var entries []ledger.CostEntry
	if err := pgxscan.Select(ctx, r.pool, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list cost entries: %w", err)
	}
	return entries, nil
}

func (r *CostRepo) Delete(ctx context.Context, entryID id.ID) error {
	query, args, err := r.builder.
		Delete("cost_entries").
		Where(squirrel.Eq{"id": entryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete cost entry: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete cost entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("cost entry", entryID)
	}
	return nil
}

// applyRangeFilter adds the shared half-open date window and animal
// predicates of ledger listings.
func applyRangeFilter(q squirrel.SelectBuilder, dateColumn string, filter ledger.RangeFilter) squirrel.SelectBuilder {
	if !filter.From.IsZero() {
		q = q.Where(squirrel.GtOrEq{dateColumn: filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(squirrel.Lt{dateColumn: filter.To})
	}
	if filter.AnimalID != nil {
		q = q.Where(squirrel.Eq{"animal_id": *filter.AnimalID})
	}
	return q
}
