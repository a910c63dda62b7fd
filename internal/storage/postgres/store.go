package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"poolTags/internal/model"
	"poolTags/internal/storage"
)

// Store provides Postgres persistence for contract tags.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the tables used by the store.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS contract_tags (
			contract_address TEXT PRIMARY KEY,
			chain_id         BIGINT NOT NULL,
			checksum_address TEXT NOT NULL,
			public_name_tag  TEXT NOT NULL,
			project_name     TEXT NOT NULL,
			ui_website_link  TEXT NOT NULL,
			public_note      TEXT NOT NULL,
			created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS tagger_state (
			name        TEXT PRIMARY KEY,
			last_cursor BIGINT NOT NULL,
			updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

// PutTags inserts or updates contract tags.
func (s *Store) PutTags(ctx context.Context, chainID string, tags []model.ContractTag) error {
	if len(tags) == 0 {
		return nil
	}
	chain, err := strconv.ParseInt(chainID, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid chain id %q: %w", chainID, err)
	}
	batch := &pgx.Batch{}
	for _, tag := range tags {
		batch.Queue(`
			INSERT INTO contract_tags (
				contract_address, chain_id, checksum_address, public_name_tag, project_name, ui_website_link, public_note, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
			ON CONFLICT (contract_address)
			DO UPDATE SET
				checksum_address = EXCLUDED.checksum_address,
				public_name_tag = EXCLUDED.public_name_tag,
				project_name = EXCLUDED.project_name,
				ui_website_link = EXCLUDED.ui_website_link,
				public_note = EXCLUDED.public_note,
				updated_at = now()
		`,
			tag.ContractAddress,
			chain,
			storage.ChecksumAddress(tag.ContractAddress),
			tag.PublicNameTag,
			tag.ProjectName,
			tag.UIWebsiteLink,
			tag.PublicNote,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range tags {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns last_cursor for a name.
func (s *Store) LoadState(ctx context.Context, name string) (int64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("state name required")
	}
	var cursor int64
	row := s.pool.QueryRow(ctx, `SELECT last_cursor FROM tagger_state WHERE name=$1`, name)
	if err := row.Scan(&cursor); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return cursor, true, nil
}

// SaveState upserts last_cursor for a name.
func (s *Store) SaveState(ctx context.Context, name string, cursor int64) error {
	if name == "" {
		return fmt.Errorf("state name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tagger_state (name, last_cursor, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET last_cursor = EXCLUDED.last_cursor, updated_at = now()
	`, name, cursor)
	return err
}
