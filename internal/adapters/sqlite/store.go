package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"fonoteca/internal/application"
	"fonoteca/internal/domain"
	"fonoteca/internal/ports"

	_ "modernc.org/sqlite"
)

const schemaVersion = "1"

// Store implements ports.CatalogAPI on a local SQLite database. It serves
// as an offline backend and as a mirror of a remote catalog.
type Store struct {
	db     *sql.DB
	dbPath string
	media  ports.MediaStore
	log    zerolog.Logger
}

// Ensure Store implements CatalogAPI
var _ ports.CatalogAPI = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithMediaStore makes Create copy the source file into media and Delete
// remove it again
func WithMediaStore(media ports.MediaStore) Option {
	return func(s *Store) { s.media = media }
}

// WithLogger sets the store logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l.With().Str("component", "sqlite").Logger() }
}

// Open opens (and if needed creates) the database at dbPath
func Open(dbPath string, opts ...Option) (*Store, error) {
	s := &Store{dbPath: dbPath, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Performance pragmas + schema in single batch
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA temp_store = MEMORY;

		CREATE TABLE IF NOT EXISTS assets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL,
			description TEXT NOT NULL,
			type TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			duration INTEGER NOT NULL,
			fingerprint INTEGER NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_assets_type ON assets(type);
		CREATE INDEX IF NOT EXISTS idx_assets_duration ON assets(duration);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

const assetColumns = `id, path, description, type, tags, duration`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (domain.Asset, error) {
	var (
		a         domain.Asset
		assetType string
		tags      string
	)
	if err := row.Scan(&a.ID, &a.Path, &a.Description, &assetType, &tags, &a.Duration); err != nil {
		return domain.Asset{}, err
	}
	a.Type = domain.AssetType(assetType)
	if err := json.Unmarshal([]byte(tags), &a.Tags); err != nil {
		return domain.Asset{}, fmt.Errorf("asset %d: bad tags column: %w", a.ID, err)
	}
	return a, nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// List returns every asset ordered by id
func (s *Store) List(ctx context.Context) ([]domain.Asset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list assets: %w", err)
	}
	defer rows.Close()

	assets := []domain.Asset{}
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Get returns a single asset
func (s *Store) Get(ctx context.Context, id int64) (domain.Asset, error) {
	a, err := scanAsset(s.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Asset{}, &application.NotFoundError{ID: id}
	}
	if err != nil {
		return domain.Asset{}, fmt.Errorf("get asset %d: %w", id, err)
	}
	return a, nil
}

// Create validates and stores a new asset. The local backend cannot probe
// audio files, so a duration is required.
func (s *Store) Create(ctx context.Context, asset domain.NewAsset) (domain.Asset, error) {
	asset, err := asset.Prepare()
	if err != nil {
		return domain.Asset{}, err
	}
	if asset.Duration == 0 {
		return domain.Asset{}, &domain.ValidationError{Field: "duration", Message: "duration is required for the local catalog"}
	}

	path := asset.Path
	if s.media != nil {
		if path, err = s.media.Import(asset.Path); err != nil {
			return domain.Asset{}, fmt.Errorf("import %s: %w", asset.Path, err)
		}
	}

	a := domain.Asset{
		Type:        asset.Type,
		Description: asset.Description,
		Tags:        asset.Tags,
		Duration:    asset.Duration,
		Path:        path,
	}

	tx, err := s.beginTx(ctx)
	if err != nil {
		return domain.Asset{}, err
	}
	defer tx.Rollback()

	if a.ID, err = tx.InsertAsset(a); err != nil {
		if s.media != nil {
			_ = s.media.Remove(path)
		}
		return domain.Asset{}, fmt.Errorf("create asset: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Asset{}, fmt.Errorf("create asset: %w", err)
	}

	s.log.Info().Int64("id", a.ID).Str("path", a.Path).Msg("asset created")
	return a, nil
}

// Update replaces type, description and tags of an asset
func (s *Store) Update(ctx context.Context, id int64, update domain.AssetUpdate) (domain.Asset, error) {
	update, err := update.Prepare()
	if err != nil {
		return domain.Asset{}, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return domain.Asset{}, err
	}
	if err := domain.ValidateDuration(update.Type, existing.Duration); err != nil {
		return domain.Asset{}, err
	}

	existing.Type = update.Type
	existing.Description = update.Description
	existing.Tags = update.Tags

	tx, err := s.beginTx(ctx)
	if err != nil {
		return domain.Asset{}, err
	}
	defer tx.Rollback()

	if err := tx.UpsertAsset(existing); err != nil {
		return domain.Asset{}, fmt.Errorf("update asset %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Asset{}, fmt.Errorf("update asset %d: %w", id, err)
	}

	s.log.Info().Int64("id", id).Msg("asset updated")
	return existing, nil
}

// Delete removes an asset and, with a media store, its file
func (s *Store) Delete(ctx context.Context, id int64) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM assets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete asset %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &application.NotFoundError{ID: id}
	}

	if s.media != nil {
		if err := s.media.Remove(existing.Path); err != nil {
			s.log.Warn().Err(err).Str("path", existing.Path).Msg("failed to remove media file")
		}
	}
	s.log.Info().Int64("id", id).Msg("asset deleted")
	return nil
}

// Search ranks assets matching the structural filters by how well their
// description, tags and file name match the query
func (s *Store) Search(ctx context.Context, params domain.SearchParams) ([]domain.Asset, error) {
	var (
		where []string
		args  []any
	)
	if params.Type != "" {
		where = append(where, "type = ?")
		args = append(args, string(params.Type))
	}
	if params.MinDuration != nil {
		where = append(where, "duration >= ?")
		args = append(args, *params.MinDuration)
	}
	if params.MaxDuration != nil {
		where = append(where, "duration <= ?")
		args = append(args, *params.MaxDuration)
	}

	query := `SELECT ` + assetColumns + ` FROM assets`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search assets: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		if params.Tag != "" && !a.HasTagContaining(params.Tag) {
			continue
		}
		candidates = append(candidates, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = domain.DefaultSearchLimit
	}
	return Rank(candidates, params.Query, limit), nil
}

// Stats counts assets per type
func (s *Store) Stats(ctx context.Context) (domain.Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT type, COUNT(*) FROM assets GROUP BY type`)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w", err)
	}
	defer rows.Close()

	stats := domain.Stats{
		CollectionName: strings.TrimSuffix(filepath.Base(s.dbPath), filepath.Ext(s.dbPath)),
		TypeCounts:     map[string]int{},
	}
	for rows.Next() {
		var (
			t string
			n int
		)
		if err := rows.Scan(&t, &n); err != nil {
			return domain.Stats{}, err
		}
		stats.TypeCounts[t] = n
		stats.TotalCount += n
	}
	return stats, rows.Err()
}

// Types lists the asset types the local catalog accepts
func (s *Store) Types(ctx context.Context) ([]string, error) {
	types := make([]string, len(domain.AssetTypes))
	for i, t := range domain.AssetTypes {
		types[i] = string(t)
	}
	return types, nil
}

// Health checks the database connection
func (s *Store) Health(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	return nil
}

func (s *Store) beginTx(ctx context.Context) (*assetTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &assetTx{tx: tx, ctx: ctx}, nil
}
