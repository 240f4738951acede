package sqlite

import (
	"context"
	"database/sql"

	"fonoteca/internal/domain"
)

// assetTx groups asset writes into one transaction
type assetTx struct {
	tx  *sql.Tx
	ctx context.Context
}

// InsertAsset stores a new asset and returns its assigned id
func (t *assetTx) InsertAsset(a domain.Asset) (int64, error) {
	tags, err := encodeTags(a.Tags)
	if err != nil {
		return 0, err
	}
	res, err := t.tx.ExecContext(t.ctx, `
		INSERT INTO assets (path, description, type, tags, duration, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?)
	`, a.Path, a.Description, string(a.Type), tags, a.Duration, int64(Fingerprint(a)))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpsertAsset inserts or replaces an asset keeping its id
func (t *assetTx) UpsertAsset(a domain.Asset) error {
	tags, err := encodeTags(a.Tags)
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(t.ctx, `
		INSERT OR REPLACE INTO assets (id, path, description, type, tags, duration, fingerprint)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Path, a.Description, string(a.Type), tags, a.Duration, int64(Fingerprint(a)))
	return err
}

// DeleteAsset removes an asset by id
func (t *assetTx) DeleteAsset(id int64) error {
	_, err := t.tx.ExecContext(t.ctx, `DELETE FROM assets WHERE id = ?`, id)
	return err
}

// Fingerprints returns the stored content fingerprint of every asset
func (t *assetTx) Fingerprints() (map[int64]uint64, error) {
	rows, err := t.tx.QueryContext(t.ctx, `SELECT id, fingerprint FROM assets`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64]uint64)
	for rows.Next() {
		var (
			id int64
			fp int64
		)
		if err := rows.Scan(&id, &fp); err != nil {
			return nil, err
		}
		out[id] = uint64(fp)
	}
	return out, rows.Err()
}

// SetMeta records a metadata value
func (t *assetTx) SetMeta(key, value string) error {
	_, err := t.tx.ExecContext(t.ctx, `INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// Commit commits the transaction
func (t *assetTx) Commit() error {
	return t.tx.Commit()
}

// Rollback aborts the transaction
func (t *assetTx) Rollback() error {
	return t.tx.Rollback()
}
