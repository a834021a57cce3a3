package vault

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"vaultindex/internal/logging"
)

// ErrInvalidEncoding reports a document that is not valid UTF-8.
var ErrInvalidEncoding = errors.New("document is not valid UTF-8")

// Document is one file read from the vault. Err is set when the file
// matched but could not be read; Text is empty in that case.
type Document struct {
	Path string
	Text string
	Err  error
}

// Loader walks a vault root and yields matching documents.
type Loader struct {
	root       string
	extension  string
	skipHidden bool
	logger     *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithExtension sets the file suffix a document must carry.
func WithExtension(ext string) Option {
	return func(l *Loader) {
		if ext != "" {
			l.extension = ext
		}
	}
}

// WithSkipHidden controls whether directories starting with a dot are walked.
func WithSkipHidden(skip bool) Option {
	return func(l *Loader) {
		l.skipHidden = skip
	}
}

// WithLogger attaches a logger for walk diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader constructs a loader for the vault at root.
func NewLoader(root string, opts ...Option) *Loader {
	l := &Loader{
		root:       root,
		extension:  ".md",
		skipHidden: true,
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = logging.NewComponentLogger(l.logger, "vault")
	return l
}

// Documents lazily yields every matching document in lexical order. A root
// that cannot be walked is yielded once as a Document carrying the error.
func (l *Loader) Documents() iter.Seq[Document] {
	return func(yield func(Document) bool) {
		_ = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == l.root {
					yield(Document{Path: path, Err: fmt.Errorf("walk vault: %w", err)})
					return fs.SkipAll
				}
				logging.WarnWithContext(l.logger, "vault path unreadable", "vault_walk_failed",
					logging.String("path", path),
					logging.Error(err),
					logging.String(logging.FieldErrorHint, "check directory permissions"),
					logging.String(logging.FieldImpact, "documents below this path are not indexed"),
				)
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}

			if d.IsDir() {
				if path != l.root && l.skipHidden && strings.HasPrefix(d.Name(), ".") {
					l.logger.Debug("skipping hidden directory", logging.String("path", path))
					return fs.SkipDir
				}
				return nil
			}

			if !strings.HasSuffix(d.Name(), l.extension) || !isRegular(path, d) {
				return nil
			}

			if !yield(l.read(path)) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

func (l *Loader) read(path string) Document {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{Path: path, Err: fmt.Errorf("read document: %w", err)}
	}
	if !utf8.Valid(data) {
		return Document{Path: path, Err: ErrInvalidEncoding}
	}
	return Document{Path: path, Text: string(data)}
}

func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
