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

var birthColumns = []string{
	"id", "event_date", "mother_animal_id", "calf_animal_id", "created_at",
}

// BirthRepo implements ledger.BirthRepository on PostgreSQL.
type BirthRepo struct {
	pool    *Pool
	builder squirrel.StatementBuilderType
}

// NewBirthRepo creates the birth record repository.
func NewBirthRepo(pool *Pool) *BirthRepo {
	return &BirthRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *BirthRepo) Create(ctx context.Context, b *ledger.BirthRecord) error {
	query, args, err := r.builder.
		Insert("birth_records").
		Columns(birthColumns...).
		Values(b.ID, b.Date, b.MotherAnimalID, b.CalfAnimalID, b.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert birth record: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NewValidation("birth record references an unknown animal").
				WithDetail("motherAnimalId", b.MotherAnimalID)
		}
		return fmt.Errorf("insert birth record: %w", err)
	}
	return nil
}

func (r *BirthRepo) GetByID(ctx context.Context, recordID id.ID) (*ledger.BirthRecord, error) {
	query, args, err := r.builder.
		Select(birthColumns...).
		From("birth_records").
		Where(squirrel.Eq{"id": recordID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select birth record: %w", err)
	}

	var b ledger.BirthRecord
	if err := pgxscan.Get(ctx, r.pool, &b, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("birth record", recordID)
		}
		return nil, fmt.Errorf("select birth record: %w", err)
	}
	return &b, nil
}

func (r *BirthRepo) List(ctx context.Context, filter ledger.RangeFilter) ([]ledger.BirthRecord, error) {
	q := r.builder.
		Select(birthColumns...).
		From("birth_records").
		OrderBy("event_date DESC", "created_at DESC")

	if !filter.From.IsZero() {
		q = q.Where(squirrel.GtOrEq{"event_date": filter.From})
	}
	if !filter.To.IsZero() {
		q = q.Where(squirrel.Lt{"event_date": filter.To})
	}
	if filter.AnimalID != nil {
		q = q.Where(squirrel.Eq{"mother_animal_id": *filter.AnimalID})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list birth records: %w", err)
	}

	var records []ledger.BirthRecord
	if err := pgxscan.Select(ctx, r.pool, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list birth records: %w", err)
	}
	return records, nil
}

func (r *BirthRepo) Delete(ctx context.Context, recordID id.ID) error {
	query, args, err := r.builder.
		Delete("birth_records").
		Where(squirrel.Eq{"id": recordID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete birth record: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete birth record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("birth record", recordID)
	}
	return nil
}
