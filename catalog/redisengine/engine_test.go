package redisengine_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/catalog/redisengine"
	"github.com/AntonStoeckl/smart-library-go/testutil"
)

func Test_NewEngine_RejectsInvalidConfiguration(t *testing.T) {
	_, err := redisengine.NewEngine(nil)
	assert.ErrorIs(t, err, redisengine.ErrNilClient)

	_, client := givenRedis(t)
	_, err = redisengine.NewEngine(client, redisengine.WithKeyPrefix(""))
	assert.ErrorIs(t, err, redisengine.ErrEmptyKeyPrefix)
}

func Test_Load_WithMissingKeys_ReturnsEmptySnapshot(t *testing.T) {
	// arrange
	_, client := givenRedis(t)
	engine, err := redisengine.NewEngine(client)
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
	server, client := givenRedis(t)
	engine, err := redisengine.NewEngine(client, redisengine.WithKeyPrefix("test"))
	require.NoError(t, err)

	borrowed := catalog.BuildBook("111", "Go", "A", "Tech")
	borrowed.Available = false
	borrowed.BorrowCount = 1

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

	stored, err := server.List("test:users")
	require.NoError(t, err)
	assert.Equal(t, []string{"1002|Bob|0", "1001|Alice|1|111"}, stored)
}

func Test_Save_ReplacesPreviousContent(t *testing.T) {
	// arrange
	server, client := givenRedis(t)
	engine, err := redisengine.NewEngine(client)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, engine.Save(ctx, catalog.Snapshot{
		Books: []catalog.Book{catalog.BuildBook("111", "Go", "A", "Tech")},
		Users: []catalog.User{{ID: 1001, Name: "Alice"}},
	}))

	// act
	require.NoError(t, engine.Save(ctx, catalog.Snapshot{
		Books: []catalog.Book{catalog.BuildBook("333", "Zig", "C", "Tech")},
	}))

	// assert
	books, err := server.List(engine.BooksKey())
	require.NoError(t, err)
	assert.Equal(t, []string{"333|Zig|C|Tech|1|0"}, books)
	assert.False(t, server.Exists(engine.UsersKey()))
}

func Test_Load_SkipsMalformedRecords_AndLogsThem(t *testing.T) {
	// arrange
	server, client := givenRedis(t)
	logger, logHandler := testutil.NewLogger()
	engine, err := redisengine.NewEngine(client, redisengine.WithLogger(logger))
	require.NoError(t, err)

	_, err = server.RPush(engine.BooksKey(), "111|Go|A|Tech|1|0", "garbage")
	require.NoError(t, err)
	_, err = server.RPush(engine.UsersKey(), "not-a-number|Alice|0")
	require.NoError(t, err)

	// act
	snapshot, err := engine.Load(context.Background())

	// assert
	require.NoError(t, err)
	assert.Len(t, snapshot.Books, 1)
	assert.Empty(t, snapshot.Users)
	assert.Len(t, logHandler.RecordsAtLevel(slog.LevelWarn), 2)
}

func Test_Load_WhenRedisIsDown_Fails(t *testing.T) {
	// arrange
	server, client := givenRedis(t)
	engine, err := redisengine.NewEngine(client)
	require.NoError(t, err)
	server.Close()

	// act
	_, err = engine.Load(context.Background())

	// assert
	assert.Error(t, err)
}

func givenRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return server, client
}
