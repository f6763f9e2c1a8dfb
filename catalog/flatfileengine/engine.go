package flatfileengine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/AntonStoeckl/smart-library-go/catalog"
	"github.com/AntonStoeckl/smart-library-go/catalog/linecodec"
)

const (
	defaultBooksFileName = "books.dat"
	defaultUsersFileName = "users.dat"
)

// Engine persists a catalog.Snapshot in two flat files below one directory.
type Engine struct {
	dir           string
	booksFileName string
	usersFileName string
	logger        Logger
}

var _ catalog.Persister = (*Engine)(nil)

// NewEngine creates an Engine for the given directory. The directory is not created or checked here.
func NewEngine(dir string, options ...Option) (*Engine, error) {
	if dir == "" {
		return nil, ErrEmptyDirectory
	}

	e := &Engine{
		dir:           dir,
		booksFileName: defaultBooksFileName,
		usersFileName: defaultUsersFileName,
	}

	for _, option := range options {
		if err := option(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// BooksPath returns the full path of the books file.
func (e *Engine) BooksPath() string {
	return filepath.Join(e.dir, e.booksFileName)
}

// UsersPath returns the full path of the users file.
func (e *Engine) UsersPath() string {
	return filepath.Join(e.dir, e.usersFileName)
}

// Load reads both files. A missing file yields no records of that kind.
func (e *Engine) Load(ctx context.Context) (catalog.Snapshot, error) {
	var snapshot catalog.Snapshot

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		books, err := loadFile(groupCtx, e, e.BooksPath(), linecodec.DecodeBooks)
		snapshot.Books = books

		return err
	})

	group.Go(func() error {
		users, err := loadFile(groupCtx, e, e.UsersPath(), linecodec.DecodeUsers)
		snapshot.Users = users

		return err
	})

	if err := group.Wait(); err != nil {
		return catalog.Snapshot{}, err
	}

	return snapshot, nil
}

// Save truncates and rewrites both files.
func (e *Engine) Save(ctx context.Context, snapshot catalog.Snapshot) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return saveFile(groupCtx, e, e.BooksPath(), snapshot.Books, linecodec.EncodeBooks)
	})

	group.Go(func() error {
		return saveFile(groupCtx, e, e.UsersPath(), snapshot.Users, linecodec.EncodeUsers)
	})

	return group.Wait()
}

func loadFile[T any](
	ctx context.Context,
	e *Engine,
	path string,
	decode func(io.Reader) ([]T, []linecodec.LineError, error),
) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		e.logDebug(logMsgLoaded, logAttrFile, path, logAttrRecords, 0)
		return make([]T, 0), nil
	}

	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	records, skipped, err := decode(file)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	e.logSkipped(path, skipped)
	e.logDebug(logMsgLoaded, logAttrFile, path, logAttrRecords, len(records))

	return records, nil
}

func saveFile[T any](
	ctx context.Context,
	e *Engine,
	path string,
	records []T,
	encode func(io.Writer, []T) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	if err = encode(file, records); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	e.logDebug(logMsgSaved, logAttrFile, path, logAttrRecords, len(records))

	return nil
}
