package sqlitevec

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"hrassistant/internal/domain"
)

func init() {
	sqlite_vec.Auto()
}

// Storage is a persistent vector store backed by SQLite + sqlite-vec.
// The vec0 virtual table uses cosine distance; scores are reported as
// 1 - distance so they match the in-memory store's similarity scale.
type Storage struct {
	db        *sql.DB
	dimension int
}

// Open creates or opens the database at the given path.
func Open(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return &Storage{db: db}, nil
}

// Init (re)creates the schema for the given vector dimension. Any
// previously indexed corpus is dropped; ingestion repopulates it.
func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	ddl := fmt.Sprintf(`
DROP TABLE IF EXISTS vec_chunks;
DROP TABLE IF EXISTS chunks;

CREATE TABLE chunks (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    document_id TEXT NOT NULL,
    chunk_id    TEXT NOT NULL,
    source      TEXT NOT NULL DEFAULT '',
    idx         INTEGER NOT NULL,
    text        TEXT NOT NULL
);

CREATE VIRTUAL TABLE vec_chunks USING vec0(
    chunk_id INTEGER PRIMARY KEY,
    embedding float[%d] distance_metric=cosine
);
`, dimension)
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (s *Storage) Upsert(chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insChunk, err := tx.Prepare("INSERT INTO chunks (document_id, chunk_id, source, idx, text) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer insChunk.Close()
	insVec, err := tx.Prepare("INSERT INTO vec_chunks (chunk_id, embedding) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer insVec.Close()

	for i, ch := range chunks {
		if len(vectors[i]) != s.dimension {
			return errors.New("vector dimension mismatch")
		}
		res, err := insChunk.Exec(ch.DocumentID, ch.ChunkID, ch.Source, ch.Index, ch.Text)
		if err != nil {
			return fmt.Errorf("insert chunk %s: %w", ch.ChunkID, err)
		}
		rowID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		blob, err := sqlite_vec.SerializeFloat32(toFloat32(vectors[i]))
		if err != nil {
			return fmt.Errorf("serialize embedding for chunk %s: %w", ch.ChunkID, err)
		}
		if _, err := insVec.Exec(rowID, blob); err != nil {
			return fmt.Errorf("insert embedding for chunk %s: %w", ch.ChunkID, err)
		}
	}
	return tx.Commit()
}

func (s *Storage) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 5
	}
	blob, err := sqlite_vec.SerializeFloat32(toFloat32(vector))
	if err != nil {
		return nil, fmt.Errorf("serialize query embedding: %w", err)
	}
	rows, err := s.db.Query(`
		SELECT v.distance, c.document_id, c.chunk_id, c.source, c.idx, c.text
		FROM vec_chunks v
		JOIN chunks c ON c.id = v.chunk_id
		WHERE v.embedding MATCH ?
		ORDER BY v.distance
		LIMIT ?
	`, blob, topK)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.SearchResult
	for rows.Next() {
		var r domain.SearchResult
		var distance float64
		if err := rows.Scan(&distance, &r.Chunk.DocumentID, &r.Chunk.ChunkID, &r.Chunk.Source, &r.Chunk.Index, &r.Chunk.Text); err != nil {
			return nil, err
		}
		r.Score = 1 - distance
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *Storage) Clear() error {
	if _, err := s.db.Exec("DELETE FROM vec_chunks"); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM chunks")
	return err
}

// Close closes the underlying database.
func (s *Storage) Close() error { return s.db.Close() }

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
