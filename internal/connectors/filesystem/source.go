package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/text/encoding/charmap"

	"github.com/custodia-labs/grantcraft-cli/internal/core/domain"
	"github.com/custodia-labs/grantcraft-cli/internal/core/ports/driven"
	"github.com/custodia-labs/grantcraft-cli/internal/logger"
)

// DefaultDebounce is how long Watch waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

const documentExt = ".txt"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Ensure Source implements the interfaces.
var (
	_ driven.DocumentSource  = (*Source)(nil)
	_ driven.DocumentWatcher = (*Source)(nil)
)

// Source lists and loads grant documents from one directory.
type Source struct {
	root     string
	prefixes []string
	debounce time.Duration
}

// Option configures a Source.
type Option func(*Source)

// WithDebounce sets the Watch settle interval.
func WithDebounce(d time.Duration) Option {
	return func(s *Source) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// New creates a source over root. An empty prefix list accepts every .txt file.
func New(root string, prefixes []string, opts ...Option) *Source {
	s := &Source{
		root:     root,
		prefixes: append([]string(nil), prefixes...),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the watched directory.
func (s *Source) Root() string {
	return s.root
}

// List returns the whitelisted documents in name order.
func (s *Source) List(ctx context.Context) ([]driven.DocumentRef, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", domain.ErrSourceUnavailable, s.root, err)
	}

	refs := []driven.DocumentRef{}
	for _, entry := range entries {
		if entry.IsDir() || !s.Accepts(entry.Name()) {
			continue
		}
		refs = append(refs, s.ref(filepath.Join(s.root, entry.Name())))
	}
	return refs, nil
}

// Load reads and decodes one document.
func (s *Source) Load(ctx context.Context, ref driven.DocumentRef) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref.Path, err)
	}

	text, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref.Path, err)
	}

	return &domain.RawDocument{
		ID:   ref.ID,
		Path: ref.Path,
		Text: text,
	}, nil
}

// Accepts reports whether a file name is a whitelisted document.
func (s *Source) Accepts(name string) bool {
	if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), documentExt) {
		return false
	}
	if len(s.prefixes) == 0 {
		return true
	}
	for _, prefix := range s.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Decode converts document bytes to text. Valid UTF-8 (with or without a BOM)
// is used as is; anything else is read as Windows-1252.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrDecodeFailed, err)
	}
	return string(decoded), nil
}

// Watch blocks until ctx is cancelled, calling onChange with the documents
// created, written or renamed in each burst of events.
func (s *Source) Watch(ctx context.Context, onChange func([]driven.DocumentRef)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(s.root); err != nil {
		return fmt.Errorf("%w: watching %s: %w", domain.ErrSourceUnavailable, s.root, err)
	}

	var (
		pending = make(map[string]driven.DocumentRef)
		timer   *time.Timer
		fire    <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			ref, ok := s.handleFsEvent(event)
			if !ok {
				continue
			}
			logger.Debug("watch: %s %s", event.Op, event.Name)
			pending[ref.Path] = ref
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch %s: %v", s.root, err)

		case <-fire:
			fire = nil
			refs := make([]driven.DocumentRef, 0, len(pending))
			for _, ref := range pending {
				refs = append(refs, ref)
			}
			sort.Slice(refs, func(i, j int) bool { return refs[i].Path < refs[j].Path })
			pending = make(map[string]driven.DocumentRef)
			onChange(refs)
		}
	}
}

// handleFsEvent converts an fsnotify event into a document ref.
// Events on directories, hidden files and non-whitelisted names are ignored.
func (s *Source) handleFsEvent(event fsnotify.Event) (driven.DocumentRef, bool) {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Rename) {
		return driven.DocumentRef{}, false
	}
	if !s.Accepts(filepath.Base(event.Name)) {
		return driven.DocumentRef{}, false
	}
	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		return driven.DocumentRef{}, false
	}
	return s.ref(event.Name), true
}

func (s *Source) ref(path string) driven.DocumentRef {
	name := filepath.Base(path)
	return driven.DocumentRef{
		ID:   strings.TrimSuffix(name, filepath.Ext(name)),
		Path: path,
	}
}
