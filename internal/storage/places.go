package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// ErrUnavailable wraps every failure to read a places database. Callers
// treat it as "this source has no bookmarks" rather than a fatal error.
var ErrUnavailable = errors.New("places database unavailable")

const placesQuery = `
	SELECT b.title, h.url
	FROM moz_places h
	JOIN moz_bookmarks b ON h.id = b.fk
	ORDER BY b.id
`

// PlacesReader reads bookmarks from a Firefox places database. The live
// file may be locked by a running browser, so it is copied into a private
// scratch directory and the copy is queried instead.
type PlacesReader struct {
	// ScratchDir is where per-read scratch directories are created.
	// Empty means os.TempDir().
	ScratchDir string

	// query runs against the opened copy; replaced in tests.
	query func(ctx context.Context, db *sql.DB) ([]Bookmark, error)
}

// NewPlacesReader creates a PlacesReader that uses scratchDir for copies.
func NewPlacesReader(scratchDir string) *PlacesReader {
	return &PlacesReader{ScratchDir: scratchDir, query: queryBookmarks}
}

// Read copies the database at path, queries the copy and removes it again.
// Any failure is returned wrapped around ErrUnavailable. The scratch copy
// is removed on every return path, including panics.
func (r *PlacesReader) Read(ctx context.Context, path string) ([]Bookmark, error) {
	scratch, err := r.makeScratchDir()
	if err != nil {
		return nil, unavailable("create scratch dir", err)
	}
	defer os.RemoveAll(scratch)

	copyPath := filepath.Join(scratch, filepath.Base(path))
	if err := copyFile(path, copyPath); err != nil {
		return nil, unavailable("copy database", err)
	}
	// Uncheckpointed writes live in the WAL; copy it alongside when present.
	if isRegularFile(path + "-wal") {
		if err := copyFile(path+"-wal", copyPath+"-wal"); err != nil {
			return nil, unavailable("copy database WAL", err)
		}
	}

	db, err := sql.Open("sqlite3", "file:"+copyPath+"?mode=ro")
	if err != nil {
		return nil, unavailable("open database", err)
	}
	defer db.Close()

	if err := verifyPlacesSchema(ctx, db); err != nil {
		return nil, unavailable("verify schema", err)
	}

	query := r.query
	if query == nil {
		query = queryBookmarks
	}
	bookmarks, err := query(ctx, db)
	if err != nil {
		return nil, unavailable("query bookmarks", err)
	}

	return bookmarks, nil
}

func (r *PlacesReader) makeScratchDir() (string, error) {
	base := r.ScratchDir
	if base == "" {
		base = os.TempDir()
	}
	if err := os.MkdirAll(base, 0755); err != nil {
		return "", err
	}

	dir := filepath.Join(base, "bookmarks-"+uuid.NewString())
	if err := os.Mkdir(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

// queryBookmarks joins bookmarks to their places rows.
func queryBookmarks(ctx context.Context, db *sql.DB) ([]Bookmark, error) {
	rows, err := db.QueryContext(ctx, placesQuery)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []Bookmark{}
	for rows.Next() {
		var title, url sql.NullString
		if err := rows.Scan(&title, &url); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, Bookmark{
			Title:        title.String,
			URL:          url.String,
			TitleMissing: !title.Valid,
			URLMissing:   !url.Valid,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bookmarks, nil
}

// copyFile copies src to dst byte for byte. src is opened with a plain
// read-only open, which does not take a lock the browser could contend on.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func unavailable(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, step, err)
}
