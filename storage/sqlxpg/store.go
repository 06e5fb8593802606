package sqlxpg

import (
	"context"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/openschool/backend/core"
)

var _ core.Store = (*Store)(nil)

// Store keeps one jsonb document per record, keyed by entity and ordered by
// position so reads return records in the same order they were written.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Load(ctx context.Context, entity string, dst interface{}) error {
	if !core.ValidEntity(entity) {
		return &core.UnknownEntityError{Name: entity}
	}

	var docs []string
	err := s.db.SelectContext(ctx, &docs,
		"SELECT doc FROM records WHERE entity = $1 ORDER BY position", entity)
	if err != nil {
		return errors.Wrapf(err, "loading %s", entity)
	}

	raw := make([]json.RawMessage, len(docs))
	for i, doc := range docs {
		raw[i] = json.RawMessage(doc)
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return errors.Wrapf(err, "assembling %s", entity)
	}
	return errors.Wrapf(json.Unmarshal(data, dst), "decoding %s", entity)
}

func (s *Store) Save(ctx context.Context, entity string, records interface{}) error {
	if !core.ValidEntity(entity) {
		return &core.UnknownEntityError{Name: entity}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return errors.Wrapf(err, "encoding %s", entity)
	}
	var docs []json.RawMessage
	if err = json.Unmarshal(data, &docs); err != nil {
		return errors.Wrapf(err, "encoding %s", entity)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "saving %s", entity)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, "DELETE FROM records WHERE entity = $1", entity); err != nil {
		return errors.Wrapf(err, "saving %s", entity)
	}
	for i, doc := range docs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO records (entity, position, doc) VALUES ($1, $2, $3)",
			entity, i, string(doc))
		if err != nil {
			return errors.Wrapf(err, "saving %s", entity)
		}
	}
	return errors.Wrapf(tx.Commit(), "saving %s", entity)
}
