package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"poolTags/internal/model"
	"poolTags/internal/storage"
)

// Store keeps contract tags in a local SQLite database.
type Store struct {
	db *sql.DB
}

// Open initializes a SQLite database and applies the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := configure(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func configure(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("set pragma %q: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	schema := `
CREATE TABLE IF NOT EXISTS contract_tags (
  contract_address  TEXT PRIMARY KEY,
  chain_id          TEXT NOT NULL,
  checksum_address  TEXT NOT NULL,
  public_name_tag   TEXT NOT NULL,
  project_name      TEXT NOT NULL,
  ui_website_link   TEXT NOT NULL,
  public_note       TEXT NOT NULL,
  position          INTEGER NOT NULL,
  updated_at        TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS contract_tags_chain ON contract_tags (chain_id, position);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// PutTags upserts tags in a single transaction.
func (s *Store) PutTags(ctx context.Context, chainID string, tags []model.ContractTag) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO contract_tags (
  contract_address, chain_id, checksum_address, public_name_tag, project_name, ui_website_link, public_note, position, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(contract_address) DO UPDATE SET
  checksum_address = excluded.checksum_address,
  public_name_tag = excluded.public_name_tag,
  project_name = excluded.project_name,
  ui_website_link = excluded.ui_website_link,
  public_note = excluded.public_note,
  position = excluded.position,
  updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for i, tag := range tags {
		if _, err := stmt.ExecContext(ctx,
			tag.ContractAddress,
			chainID,
			storage.ChecksumAddress(tag.ContractAddress),
			tag.PublicNameTag,
			tag.ProjectName,
			tag.UIWebsiteLink,
			tag.PublicNote,
			i,
			now,
		); err != nil {
			return fmt.Errorf("upsert tag %s: %w", tag.ContractAddress, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListTags returns the stored tags for a chain in export order.
func (s *Store) ListTags(ctx context.Context, chainID string) ([]model.ContractTag, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT contract_address, public_name_tag, project_name, ui_website_link, public_note
FROM contract_tags WHERE chain_id = ? ORDER BY position`, chainID)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	var out []model.ContractTag
	for rows.Next() {
		var tag model.ContractTag
		if err := rows.Scan(&tag.ContractAddress, &tag.PublicNameTag, &tag.ProjectName, &tag.UIWebsiteLink, &tag.PublicNote); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

// ChecksumFor returns the stored EIP-55 address for a contract tag.
func (s *Store) ChecksumFor(ctx context.Context, contractAddress string) (string, bool, error) {
	var checksum string
	err := s.db.QueryRowContext(ctx, `SELECT checksum_address FROM contract_tags WHERE contract_address = ?`, contractAddress).Scan(&checksum)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return checksum, true, nil
}
