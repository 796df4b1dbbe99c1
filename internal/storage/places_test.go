package storage

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errQueryFailed = errors.New("injected query failure")

type placesRow struct {
	id  int
	url string
}

type bookmarkRow struct {
	fk    sql.NullInt64
	title sql.NullString
}

// writePlacesDB builds a minimal places.sqlite fixture at path.
func writePlacesDB(t *testing.T, path string, places []placesRow, bookmarks []bookmarkRow) {
	t.Helper()
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE moz_places (
		id    INTEGER PRIMARY KEY,
		url   LONGVARCHAR,
		title LONGVARCHAR
	)`)
	require.NoError(t, err)

	_, err = db.Exec(`CREATE TABLE moz_bookmarks (
		id     INTEGER PRIMARY KEY,
		type   INTEGER,
		fk     INTEGER DEFAULT NULL,
		parent INTEGER,
		title  LONGVARCHAR
	)`)
	require.NoError(t, err)

	for _, p := range places {
		_, err := db.Exec("INSERT INTO moz_places (id, url) VALUES (?, ?)", p.id, p.url)
		require.NoError(t, err)
	}
	for _, b := range bookmarks {
		_, err := db.Exec("INSERT INTO moz_bookmarks (type, fk, parent, title) VALUES (1, ?, 0, ?)", b.fk, b.title)
		require.NoError(t, err)
	}
}

func fk(id int64) sql.NullInt64      { return sql.NullInt64{Int64: id, Valid: true} }
func title(s string) sql.NullString { return sql.NullString{String: s, Valid: true} }

// assertScratchEmpty checks that no scratch directory survived a read.
func assertScratchEmpty(t *testing.T, scratch string) {
	t.Helper()
	entries, err := os.ReadDir(scratch)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch dir should be empty after read")
}

func TestPlacesReader_ReadsJoinedBookmarks(t *testing.T) {
	dir := t.TempDir()
	scratch := t.TempDir()
	dbPath := filepath.Join(dir, "places.sqlite")

	writePlacesDB(t, dbPath,
		[]placesRow{{1, "https://golang.org"}, {2, "https://example.com"}, {3, "https://unbookmarked.test"}},
		[]bookmarkRow{
			{fk(2), title("Example")},
			{fk(1), title("Go")},
			{sql.NullInt64{}, title("Toolbar folder")},
			{fk(1), sql.NullString{}},
		},
	)

	reader := NewPlacesReader(scratch)
	got, err := reader.Read(context.Background(), dbPath)
	require.NoError(t, err)

	assert.Equal(t, []Bookmark{
		{Title: "Example", URL: "https://example.com"},
		{Title: "Go", URL: "https://golang.org"},
		{URL: "https://golang.org", TitleMissing: true},
	}, got)
	assertScratchEmpty(t, scratch)
}

func TestPlacesReader_KeepsDuplicates(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "places.sqlite")
	writePlacesDB(t, dbPath,
		[]placesRow{{1, "https://a.test"}},
		[]bookmarkRow{{fk(1), title("A")}, {fk(1), title("A")}},
	)

	got, err := NewPlacesReader(t.TempDir()).Read(context.Background(), dbPath)
	require.NoError(t, err)
	assert.Len(t, got, 2, "deduplication happens later in the pipeline")
}

func TestPlacesReader_EmptyDatabaseReturnsEmptySlice(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "places.sqlite")
	writePlacesDB(t, dbPath, nil, nil)

	got, err := NewPlacesReader(t.TempDir()).Read(context.Background(), dbPath)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPlacesReader_SourceUnchanged(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "places.sqlite")
	writePlacesDB(t, dbPath, []placesRow{{1, "https://a.test"}}, []bookmarkRow{{fk(1), title("A")}})

	before, err := os.ReadFile(dbPath)
	require.NoError(t, err)

	_, err = NewPlacesReader(t.TempDir()).Read(context.Background(), dbPath)
	require.NoError(t, err)

	after, err := os.ReadFile(dbPath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestPlacesReader_CorruptFileIsUnavailable(t *testing.T) {
	dir := t.TempDir()
	scratch := t.TempDir()
	dbPath := filepath.Join(dir, "places.sqlite")
	require.NoError(t, os.WriteFile(dbPath, []byte("this is not a sqlite database, not even close"), 0644))

	got, err := NewPlacesReader(scratch).Read(context.Background(), dbPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.Nil(t, got)
	assertScratchEmpty(t, scratch)
}

func TestPlacesReader_MissingTablesIsUnavailable(t *testing.T) {
	dir := t.TempDir()
	scratch := t.TempDir()
	dbPath := filepath.Join(dir, "places.sqlite")

	db, err := sql.Open("sqlite3", dbPath)
	require.NoError(t, err)
	_, err = db.Exec("CREATE TABLE moz_places (id INTEGER PRIMARY KEY, url TEXT)")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = NewPlacesReader(scratch).Read(context.Background(), dbPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "moz_bookmarks")
	assertScratchEmpty(t, scratch)
}

func TestPlacesReader_MissingSourceIsUnavailable(t *testing.T) {
	scratch := t.TempDir()

	_, err := NewPlacesReader(scratch).Read(context.Background(), filepath.Join(t.TempDir(), "gone.sqlite"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	var pathErr *fs.PathError
	assert.ErrorAs(t, err, &pathErr)
	assertScratchEmpty(t, scratch)
}

func TestPlacesReader_QueryFailureCleansScratch(t *testing.T) {
	dir := t.TempDir()
	scratch := t.TempDir()
	dbPath := filepath.Join(dir, "places.sqlite")
	writePlacesDB(t, dbPath, []placesRow{{1, "https://a.test"}}, []bookmarkRow{{fk(1), title("A")}})

	var sawCopy bool
	reader := NewPlacesReader(scratch)
	reader.query = func(ctx context.Context, db *sql.DB) ([]Bookmark, error) {
		entries, err := os.ReadDir(scratch)
		require.NoError(t, err)
		sawCopy = len(entries) == 1
		return nil, errQueryFailed
	}

	got, err := reader.Read(context.Background(), dbPath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, err, errQueryFailed)
	assert.Contains(t, err.Error(), "injected query failure")
	assert.Nil(t, got)
	assert.True(t, sawCopy, "scratch copy should exist while querying")
	assertScratchEmpty(t, scratch)
}

func TestPlacesReader_PanicCleansScratch(t *testing.T) {
	dir := t.TempDir()
	scratch := t.TempDir()
	dbPath := filepath.Join(dir, "places.sqlite")
	writePlacesDB(t, dbPath, []placesRow{{1, "https://a.test"}}, []bookmarkRow{{fk(1), title("A")}})

	reader := NewPlacesReader(scratch)
	reader.query = func(ctx context.Context, db *sql.DB) ([]Bookmark, error) {
		panic("injected fault")
	}

	assert.Panics(t, func() {
		_, _ = reader.Read(context.Background(), dbPath)
	})
	assertScratchEmpty(t, scratch)
}

func TestPlacesReader_UniqueScratchPerRead(t *testing.T) {
	dir := t.TempDir()
	scratch := t.TempDir()
	dbPath := filepath.Join(dir, "places.sqlite")
	writePlacesDB(t, dbPath, []placesRow{{1, "https://a.test"}}, []bookmarkRow{{fk(1), title("A")}})

	var seen []string
	reader := NewPlacesReader(scratch)
	reader.query = func(ctx context.Context, db *sql.DB) ([]Bookmark, error) {
		entries, err := os.ReadDir(scratch)
		require.NoError(t, err)
		for _, e := range entries {
			seen = append(seen, e.Name())
		}
		return queryBookmarks(ctx, db)
	}

	for i := 0; i < 2; i++ {
		_, err := reader.Read(context.Background(), dbPath)
		require.NoError(t, err)
	}

	require.Len(t, seen, 2)
	assert.NotEqual(t, seen[0], seen[1])
	assertScratchEmpty(t, scratch)
}

func TestPlacesReader_DefaultScratchDir(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "places.sqlite")
	writePlacesDB(t, dbPath, []placesRow{{1, "https://a.test"}}, []bookmarkRow{{fk(1), title("A")}})

	reader := &PlacesReader{}
	got, err := reader.Read(context.Background(), dbPath)
	require.NoError(t, err)
	assert.Equal(t, []Bookmark{{Title: "A", URL: "https://a.test"}}, got)
}
