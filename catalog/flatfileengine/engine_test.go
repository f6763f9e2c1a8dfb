package flatfileengine_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/catalog/flatfileengine"
	"github.com/AntonStoeckl/smart-library-go/testutil"
)

func Test_NewEngine_RejectsInvalidConfiguration(t *testing.T) {
	_, err := flatfileengine.NewEngine("")
	assert.ErrorIs(t, err, flatfileengine.ErrEmptyDirectory)

	_, err = flatfileengine.NewEngine(t.TempDir(), flatfileengine.WithBooksFileName(""))
	assert.ErrorIs(t, err, flatfileengine.ErrEmptyFileName)

	_, err = flatfileengine.NewEngine(t.TempDir(), flatfileengine.WithUsersFileName(""))
	assert.ErrorIs(t, err, flatfileengine.ErrEmptyFileName)
}

func Test_Load_WithMissingFiles_ReturnsEmptySnapshot(t *testing.T) {
	// arrange
	engine, err := flatfileengine.NewEngine(t.TempDir())
	require.NoError(t, err)

	// act
	snapshot, err := engine.Load(context.Background())

	// assert
	require.NoError(t, err)
	assert.Empty(t, snapshot.Books)
	assert.Empty(t, snapshot.Users)
}

func Test_Save_ThenLoad_RoundTrips(t *testing.T) {
	// arrange
	engine, err := flatfileengine.NewEngine(t.TempDir())
	require.NoError(t, err)

	borrowed := catalog.BuildBook("111", "Go", "A", "Tech")
	borrowed.Available = false
	borrowed.BorrowCount = 2

	snapshot := catalog.Snapshot{
		Books: []catalog.Book{borrowed, catalog.BuildBook("222", "Rust", "B", "Tech")},
		Users: []catalog.User{
			{ID: 1002, Name: "Bob"},
			{ID: 1001, Name: "Alice", Borrowed: []string{"111"}},
		},
	}

	// act
	require.NoError(t, engine.Save(context.Background(), snapshot))
	loaded, err := engine.Load(context.Background())

	// assert
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func Test_Save_WritesTheDocumentedLineFormat(t *testing.T) {
	// arrange
	dir := t.TempDir()
	engine, err := flatfileengine.NewEngine(dir)
	require.NoError(t, err)

	snapshot := catalog.Snapshot{
		Books: []catalog.Book{catalog.BuildBook("111", "Go", "A", "Tech")},
		Users: []catalog.User{{ID: 1001, Name: "Alice", Borrowed: []string{"111", "222"}}},
	}

	// act
	require.NoError(t, engine.Save(context.Background(), snapshot))

	// assert
	books, err := os.ReadFile(filepath.Join(dir, "books.dat"))
	require.NoError(t, err)
	assert.Equal(t, "111|Go|A|Tech|1|0\n", string(books))

	users, err := os.ReadFile(filepath.Join(dir, "users.dat"))
	require.NoError(t, err)
	assert.Equal(t, "1001|Alice|2|111|222\n", string(users))
}

func Test_Save_OverwritesPreviousContent(t *testing.T) {
	// arrange
	engine, err := flatfileengine.NewEngine(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, engine.Save(ctx, catalog.Snapshot{
		Books: []catalog.Book{catalog.BuildBook("111", "Go", "A", "Tech"), catalog.BuildBook("222", "Rust", "B", "Tech")},
	}))

	// act
	require.NoError(t, engine.Save(ctx, catalog.Snapshot{
		Books: []catalog.Book{catalog.BuildBook("333", "Zig", "C", "Tech")},
	}))
	loaded, err := engine.Load(ctx)

	// assert
	require.NoError(t, err)
	require.Len(t, loaded.Books, 1)
	assert.Equal(t, "333", loaded.Books[0].ISBN)
	assert.Empty(t, loaded.Users)
}

func Test_Load_SkipsMalformedLines_AndLogsThem(t *testing.T) {
	// arrange
	dir := t.TempDir()
	logger, logHandler := testutil.NewLogger()
	engine, err := flatfileengine.NewEngine(
		dir,
		flatfileengine.WithBooksFileName("catalog.txt"),
		flatfileengine.WithLogger(logger),
	)
	require.NoError(t, err)

	givenFile(t, engine.BooksPath(), "111|Go|A|Tech|1|0\n111|A|Title|With|Pipe|1|0\n222|Rust|B|Tech|2|0\n")
	givenFile(t, engine.UsersPath(), "1001|Alice|0\n1002|Bob|3|111\n")

	// act
	snapshot, err := engine.Load(context.Background())

	// assert
	require.NoError(t, err)
	require.Len(t, snapshot.Books, 1)
	assert.Equal(t, "111", snapshot.Books[0].ISBN)
	require.Len(t, snapshot.Users, 1)
	assert.Equal(t, 1001, snapshot.Users[0].ID)

	warnings := logHandler.RecordsAtLevel(slog.LevelWarn)
	assert.Len(t, warnings, 3)

	for _, record := range warnings {
		errText, found := testutil.AttrValue(record, "error")
		require.True(t, found)
		assert.Contains(t, errText, catalog.ErrMalformedRecord.Error())
	}
}

func Test_Load_WithCanceledContext_Fails(t *testing.T) {
	// arrange
	engine, err := flatfileengine.NewEngine(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// act
	_, err = engine.Load(ctx)

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Save_IntoMissingDirectory_Fails(t *testing.T) {
	// arrange
	engine, err := flatfileengine.NewEngine(filepath.Join(t.TempDir(), "does", "not", "exist"))
	require.NoError(t, err)

	// act
	err = engine.Save(context.Background(), catalog.Snapshot{})

	// assert
	assert.Error(t, err)
}

func givenFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
