package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"herdboard/internal/core/apperror"
	"herdboard/internal/core/id"
	"herdboard/internal/domain/herd"
)

var animalColumns = []string{
	"id", "tag_number", "name", "breed", "sex",
	"birth_date", "location_id", "status", "created_at", "updated_at",
}

// AnimalRepo implements herd.Repository on PostgreSQL.
type AnimalRepo struct {
	pool    *Pool
	builder squirrel.StatementBuilderType
}

// NewAnimalRepo creates the animal registry repository.
func NewAnimalRepo(pool *Pool) *AnimalRepo {
	return &AnimalRepo{
		pool:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *AnimalRepo) Create(ctx context.Context, a *herd.Animal) error {
	query, args, err := r.builder.
		Insert("animals").
		Columns(animalColumns...).
		Values(a.ID, a.TagNumber, a.Name, a.Breed, a.Sex,
			a.BirthDate, a.LocationID, a.Status, a.CreatedAt, a.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert animal: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("animal", "tag_number", a.TagNumber)
		}
		return fmt.Errorf("insert animal: %w", err)
	}
	return nil
}

func (r *AnimalRepo) GetByID(ctx context.Context, animalID id.ID) (*herd.Animal, error) {
	query, args, err := r.builder.
		Select(animalColumns...).
		From("animals").
		Where(squirrel.Eq{"id": animalID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select animal: %w", err)
	}

	var a herd.Animal
	if err := pgxscan.Get(ctx, r.pool, &a, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("animal", animalID)
		}
		return nil, fmt.Errorf("select animal: %w", err)
	}
	return &a, nil
}

func (r *AnimalRepo) List(ctx context.Context, filter herd.ListFilter) ([]herd.Animal, error) {
	q := r.builder.
		Select(animalColumns...).
		From("animals").
		OrderBy("tag_number ASC")
	q = applyAnimalFilter(q, filter)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list animals: %w", err)
	}

	var animals []herd.Animal
	if err := pgxscan.Select(ctx, r.pool, &animals, query, args...); err != nil {
		return nil, fmt.Errorf("list animals: %w", err)
	}
	return animals, nil
}

func (r *AnimalRepo) Count(ctx context.Context, filter herd.ListFilter) (int64, error) {
	q := r.builder.Select("COUNT(*)").From("animals")
	q = applyAnimalFilter(q, filter)

	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count animals: %w", err)
	}

	var count int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count animals: %w", err)
	}
	return count, nil
}

func (r *AnimalRepo) Update(ctx context.Context, a *herd.Animal) error {
	query, args, err := r.builder.
		Update("animals").
		Set("tag_number", a.TagNumber).
		Set("name", a.Name).
		Set("breed", a.Breed).
		Set("sex", a.Sex).
		Set("birth_date", a.BirthDate).
		Set("location_id", a.LocationID).
		Set("status", a.Status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update animal: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.NewDuplicate("animal", "tag_number", a.TagNumber)
		}
		return fmt.Errorf("update animal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("animal", a.ID)
	}
	return nil
}

func (r *AnimalRepo) UpdateStatus(ctx context.Context, animalID id.ID, status herd.Status) error {
	query, args, err := r.builder.
		Update("animals").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": animalID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update animal status: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update animal status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("animal", animalID)
	}
	return nil
}

func applyAnimalFilter(q squirrel.SelectBuilder, filter herd.ListFilter) squirrel.SelectBuilder {
	if filter.BreedContains != "" {
		q = q.Where(squirrel.ILike{"breed": "%" + filter.BreedContains + "%"})
	}
	if len(filter.LocationIDs) > 0 {
		q = q.Where(squirrel.Eq{"location_id": filter.LocationIDs})
	}
	if len(filter.Statuses) > 0 {
		q = q.Where(squirrel.Eq{"status": filter.Statuses})
	}
	if filter.Sex != nil {
		q = q.Where(squirrel.Eq{"sex": *filter.Sex})
	}
	return q
}
