package redisengine

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/catalog/linecodec"
)

const defaultKeyPrefix = "library"

const (
	logMsgSkippedRecord = "skipped malformed record"
	logMsgLoaded        = "loaded catalog from redis"
	logMsgSaved         = "saved catalog to redis"
	logAttrKey          = "key"
	logAttrIndex        = "index"
	logAttrError        = "error"
	logAttrBookCount    = "book_count"
	logAttrUserCount    = "user_count"
)

// Engine persists a catalog.Snapshot in Redis.
type Engine struct {
	client    redis.UniversalClient
	keyPrefix string
	logger    Logger
}

var _ catalog.Persister = (*Engine)(nil)

// NewEngine creates an Engine on top of an existing client. The Engine never closes the client.
func NewEngine(client redis.UniversalClient, options ...Option) (*Engine, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	e := &Engine{
		client:    client,
		keyPrefix: defaultKeyPrefix,
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// BooksKey returns the key of the books list.
func (e *Engine) BooksKey() string {
	return e.keyPrefix + ":books"
}

// UsersKey returns the key of the users list.
func (e *Engine) UsersKey() string {
	return e.keyPrefix + ":users"
}

// Load reads both lists in one round trip.
func (e *Engine) Load(ctx context.Context) (catalog.Snapshot, error) {
	var booksCmd, usersCmd *redis.StringSliceCmd

	_, err := e.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		booksCmd = pipe.LRange(ctx, e.BooksKey(), 0, -1)
		usersCmd = pipe.LRange(ctx, e.UsersKey(), 0, -1)

		return nil
	})
	if err != nil {
		return catalog.Snapshot{}, fmt.Errorf("loading catalog from redis: %w", err)
	}

	snapshot := catalog.Snapshot{
		Books: decodeList(e, e.BooksKey(), booksCmd.Val(), linecodec.UnmarshalBook),
		Users: decodeList(e, e.UsersKey(), usersCmd.Val(), linecodec.UnmarshalUser),
	}

	if e.logger != nil {
		e.logger.Debug(logMsgLoaded, logAttrBookCount, len(snapshot.Books), logAttrUserCount, len(snapshot.Users))
	}

	return snapshot, nil
}

// Save replaces both lists atomically.
func (e *Engine) Save(ctx context.Context, snapshot catalog.Snapshot) error {
	bookLines := make([]any, 0, len(snapshot.Books))
	for _, book := range snapshot.Books {
		bookLines = append(bookLines, linecodec.MarshalBook(book))
	}

	userLines := make([]any, 0, len(snapshot.Users))
	for _, user := range snapshot.Users {
		userLines = append(userLines, linecodec.MarshalUser(user))
	}

	_, err := e.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, e.BooksKey(), e.UsersKey())

		if len(bookLines) > 0 {
			pipe.RPush(ctx, e.BooksKey(), bookLines...)
		}

		if len(userLines) > 0 {
			pipe.RPush(ctx, e.UsersKey(), userLines...)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("saving catalog to redis: %w", err)
	}

	if e.logger != nil {
		e.logger.Debug(logMsgSaved, logAttrBookCount, len(bookLines), logAttrUserCount, len(userLines))
	}

	return nil
}

func decodeList[T any](e *Engine, key string, lines []string, unmarshal func(string) (T, error)) []T {
	records := make([]T, 0, len(lines))

	for i, line := range lines {
		record, err := unmarshal(line)
		if err != nil {
			if e.logger != nil {
				e.logger.Warn(logMsgSkippedRecord, logAttrKey, key, logAttrIndex, i, logAttrError, err.Error())
			}

			continue
		}

		records = append(records, record)
	}

	return records
}
