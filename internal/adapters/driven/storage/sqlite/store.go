package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/grantcraft-cli/internal/adapters/driven/storage/vectormath"
	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// the vector, voice and draft stores through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.grantcraft/data/grantcraft.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".grantcraft", "data", "grantcraft.db"), nil
}

// NewStore opens (creating if needed) the SQLite database at dbPath.
// If dbPath is empty, DefaultPath is used.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		dbPath = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows one writer; a single connection keeps transactions from deadlocking.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// VectorStore returns a VectorStore for the named collection backed by this store.
// Closing the returned store does not close the database.
func (s *Store) VectorStore(collection string) driven.VectorStore {
	if collection == "" {
		collection = domain.DefaultCollection
	}
	return &vectorStore{store: s, collection: collection}
}

// VoiceStore returns a VoiceStore interface backed by this store.
func (s *Store) VoiceStore() driven.VoiceStore {
	return &voiceStore{store: s}
}

// DraftStore returns a DraftStore interface backed by this store.
func (s *Store) DraftStore() driven.DraftStore {
	return &draftStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Vector Store ====================

// vectorStore implements driven.VectorStore for one collection.
type vectorStore struct {
	store      *Store
	collection string
}

var _ driven.VectorStore = (*vectorStore)(nil)

// Upsert inserts or replaces records keyed by chunk ID.
// The first stored record fixes the collection's dimension until Reset.
func (s *vectorStore) Upsert(ctx context.Context, records []driven.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	dims, err := collectionDimensions(ctx, tx, s.collection)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if dims == 0 {
			dims = len(rec.Embedding)
		}
		if err := vectormath.CheckDimensions(dims, len(rec.Embedding)); err != nil {
			return err
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vectors (collection, chunk_id, source, format, section, content, dimensions, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(collection, chunk_id) DO UPDATE SET
			source = excluded.source,
			format = excluded.format,
			section = excluded.section,
			content = excluded.content,
			dimensions = excluded.dimensions,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		meta := rec.Chunk.Metadata
		if _, err := stmt.ExecContext(ctx, s.collection, meta.ChunkID, meta.Source, string(meta.Format),
			meta.Section, rec.Chunk.Text, len(rec.Embedding), float32SliceToBytes(rec.Embedding)); err != nil {
			return fmt.Errorf("saving vector: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Search returns up to k records ordered by descending cosine similarity.
func (s *vectorStore) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT chunk_id, source, format, section, content, embedding
		FROM vectors WHERE collection = ?
	`, s.collection)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	var records []driven.VectorRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			rec    driven.VectorRecord
			format string
			blob   []byte
		)
		meta := &rec.Chunk.Metadata
		if err := rows.Scan(&meta.ChunkID, &meta.Source, &format, &meta.Section, &rec.Chunk.Text, &blob); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}
		meta.Format = domain.FormatTag(format)
		rec.Embedding = bytesToFloat32Slice(blob)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vectors: %w", err)
	}

	if len(records) == 0 {
		return []driven.VectorHit{}, nil
	}
	if err := vectormath.CheckDimensions(len(records[0].Embedding), len(query)); err != nil {
		return nil, err
	}
	return vectormath.Rank(records, query, k), nil
}

// Reset drops all records in the collection.
func (s *vectorStore) Reset(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM vectors WHERE collection = ?", s.collection); err != nil {
		return fmt.Errorf("resetting collection: %w", err)
	}
	return nil
}

// Count returns the number of records in the collection.
func (s *vectorStore) Count(ctx context.Context) (int, error) {
	var count int
	row := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vectors WHERE collection = ?", s.collection)
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("counting vectors: %w", err)
	}
	return count, nil
}

// Collection returns the store's identity.
func (s *vectorStore) Collection() string {
	return s.collection
}

// Close is a no-op; the owning Store closes the database.
func (s *vectorStore) Close() error {
	return nil
}

// collectionDimensions returns the dimension of stored vectors, or 0 when the collection is empty.
func collectionDimensions(ctx context.Context, tx *sql.Tx, collection string) (int, error) {
	var dims int
	err := tx.QueryRowContext(ctx, "SELECT dimensions FROM vectors WHERE collection = ? LIMIT 1", collection).Scan(&dims)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading collection dimensions: %w", err)
	}
	return dims, nil
}

// ==================== Voice Store ====================

// voiceStore implements driven.VoiceStore.
type voiceStore struct {
	store *Store
}

var _ driven.VoiceStore = (*voiceStore)(nil)

// SaveVoice replaces the stored phrases for a document.
func (s *voiceStore) SaveVoice(ctx context.Context, docID string, sig domain.VoiceSignature) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM voice_phrases WHERE document_id = ?", docID); err != nil {
		return fmt.Errorf("clearing voice phrases: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO voice_phrases (document_id, category, position, phrase)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, category := range domain.AllVoiceCategories() {
		for i, phrase := range sig.Get(category) {
			if _, err := stmt.ExecContext(ctx, docID, string(category), i, phrase); err != nil {
				return fmt.Errorf("saving voice phrase: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Voice returns the merged signature across all documents, in document ID order.
func (s *voiceStore) Voice(ctx context.Context) (domain.VoiceSignature, error) {
	merged := domain.VoiceSignature{}.Merge(domain.VoiceSignature{})

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT category, phrase FROM voice_phrases
		ORDER BY document_id, position
	`)
	if err != nil {
		return merged, fmt.Errorf("querying voice phrases: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, phrase string
		if err := rows.Scan(&category, &phrase); err != nil {
			return merged, fmt.Errorf("scanning voice phrase: %w", err)
		}
		appendPhrase(&merged, domain.VoiceCategory(category), phrase)
	}
	if err := rows.Err(); err != nil {
		return merged, fmt.Errorf("iterating voice phrases: %w", err)
	}
	return merged, nil
}

// ClearVoice removes all stored phrases.
func (s *voiceStore) ClearVoice(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM voice_phrases"); err != nil {
		return fmt.Errorf("clearing voice phrases: %w", err)
	}
	return nil
}

func appendPhrase(sig *domain.VoiceSignature, category domain.VoiceCategory, phrase string) {
	switch category {
	case domain.VoiceMission:
		sig.MissionPhrases = append(sig.MissionPhrases, phrase)
	case domain.VoicePopulation:
		sig.PopulationFocus = append(sig.PopulationFocus, phrase)
	case domain.VoiceProgram:
		sig.ProgramNames = append(sig.ProgramNames, phrase)
	case domain.VoiceImpact:
		sig.ImpactMetrics = append(sig.ImpactMetrics, phrase)
	case domain.VoiceValues:
		sig.ValuesLanguage = append(sig.ValuesLanguage, phrase)
	}
}

// ==================== Draft Store ====================

// draftStore implements driven.DraftStore.
type draftStore struct {
	store *Store
}

var _ driven.DraftStore = (*draftStore)(nil)

// SaveDraft inserts or replaces a draft.
func (s *draftStore) SaveDraft(ctx context.Context, draft *domain.Draft) error {
	if draft == nil || draft.ID == "" {
		return domain.ErrInvalidInput
	}

	opportunityJSON, err := json.Marshal(draft.Opportunity)
	if err != nil {
		return fmt.Errorf("marshalling opportunity: %w", err)
	}
	sections := draft.Sections
	if sections == nil {
		sections = []domain.GeneratedSection{}
	}
	sectionsJSON, err := json.Marshal(sections)
	if err != nil {
		return fmt.Errorf("marshalling sections: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO drafts (id, opportunity, sections, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			opportunity = excluded.opportunity,
			sections = excluded.sections,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`, draft.ID, string(opportunityJSON), string(sectionsJSON),
		draft.CreatedAt.UnixMicro(), draft.UpdatedAt.UnixMicro())
	if err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}
	return nil
}

// GetDraft returns a draft by ID.
func (s *draftStore) GetDraft(ctx context.Context, id string) (*domain.Draft, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, opportunity, sections, created_at, updated_at
		FROM drafts WHERE id = ?
	`, id)

	draft, err := scanDraft(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return draft, nil
}

// ListDrafts returns all drafts, newest first.
func (s *draftStore) ListDrafts(ctx context.Context) ([]domain.Draft, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, opportunity, sections, created_at, updated_at
		FROM drafts ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying drafts: %w", err)
	}
	defer rows.Close()

	drafts := []domain.Draft{}
	for rows.Next() {
		draft, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, *draft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating drafts: %w", err)
	}
	return drafts, nil
}

// DeleteDraft removes a draft.
func (s *draftStore) DeleteDraft(ctx context.Context, id string) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id); err != nil {
		return fmt.Errorf("deleting draft: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanDraft scans a single draft row.
func scanDraft(row rowScanner) (*domain.Draft, error) {
	var (
		draft                         domain.Draft
		opportunityJSON, sectionsJSON string
		createdAt, updatedAt          int64
	)
	if err := row.Scan(&draft.ID, &opportunityJSON, &sectionsJSON, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning draft: %w", err)
	}

	if err := json.Unmarshal([]byte(opportunityJSON), &draft.Opportunity); err != nil {
		return nil, fmt.Errorf("unmarshalling opportunity: %w", err)
	}
	if err := json.Unmarshal([]byte(sectionsJSON), &draft.Sections); err != nil {
		return nil, fmt.Errorf("unmarshalling sections: %w", err)
	}
	draft.CreatedAt = time.UnixMicro(createdAt).UTC()
	draft.UpdatedAt = time.UnixMicro(updatedAt).UTC()
	return &draft, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return []byte{}
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
