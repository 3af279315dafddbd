package postgres

import (
	"context"
	"fmt"
)

// schema is the full database schema. The seed command applies it; the
// statements are idempotent so re-running is safe.
const schema = `
CREATE TABLE IF NOT EXISTS animals (
	id          UUID PRIMARY KEY,
	tag_number  TEXT NOT NULL,
	name        TEXT NOT NULL DEFAULT '',
	breed       TEXT NOT NULL DEFAULT '',
	sex         TEXT NOT NULL,
	birth_date  DATE,
	location_id UUID,
	status      TEXT NOT NULL DEFAULT 'active',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (tag_number)
);

CREATE INDEX IF NOT EXISTS idx_animals_status   ON animals (status);
CREATE INDEX IF NOT EXISTS idx_animals_location ON animals (location_id);

CREATE TABLE IF NOT EXISTS cost_entries (
	id          UUID PRIMARY KEY,
	entry_date  DATE,
	amount      NUMERIC(14,2) NOT NULL,
	category    TEXT NOT NULL,
	animal_id   UUID REFERENCES animals (id),
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_cost_entries_date   ON cost_entries (entry_date);
CREATE INDEX IF NOT EXISTS idx_cost_entries_animal ON cost_entries (animal_id);

CREATE TABLE IF NOT EXISTS sale_entries (
	id          UUID PRIMARY KEY,
	entry_date  DATE,
	amount      NUMERIC(14,2) NOT NULL,
	animal_id   UUID NOT NULL REFERENCES animals (id),
	buyer       TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_sale_entries_date ON sale_entries (entry_date);

CREATE TABLE IF NOT EXISTS birth_records (
	id               UUID PRIMARY KEY,
	event_date       DATE,
	mother_animal_id UUID NOT NULL REFERENCES animals (id),
	calf_animal_id   UUID REFERENCES animals (id),
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_birth_records_date   ON birth_records (event_date);
CREATE INDEX IF NOT EXISTS idx_birth_records_mother ON birth_records (mother_animal_id);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, pool *Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
