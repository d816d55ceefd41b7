package infrastructure

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/felixgeelhaar/taskflow/internal/settings/domain"
)

// ErrUnknownKeys is returned when the settings file has keys that do not
// map to any setting.
var ErrUnknownKeys = errors.New("unknown keys in settings file")

// FileRepository implements domain.Repository on a TOML file.
type FileRepository struct {
	filePath string
	mu       sync.RWMutex
}

// NewFileRepository creates a new TOML settings repository.
func NewFileRepository(filePath string) *FileRepository {
	return &FileRepository{filePath: filePath}
}

// Load reads the settings file. Keys missing from the file keep their
// default value. Returns nil, nil if no file exists (first run).
func (r *FileRepository) Load(ctx context.Context) (*domain.Settings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	settings := domain.Defaults()
	meta, err := toml.DecodeFile(r.filePath, &settings)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding %s: %w", r.filePath, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w %s: %s", ErrUnknownKeys, r.filePath, strings.Join(keys, ", "))
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", r.filePath, err)
	}
	return &settings, nil
}

// Save writes the settings file, creating its directory if needed.
func (r *FileRepository) Save(ctx context.Context, s *domain.Settings) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.filePath), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return os.WriteFile(r.filePath, buf.Bytes(), 0600)
}

// FilePath returns the path to the settings file.
func (r *FileRepository) FilePath() string {
	return r.filePath
}

// MemoryRepository keeps settings in memory for runs without a settings file.
type MemoryRepository struct {
	mu       sync.RWMutex
	settings *domain.Settings
}

// NewMemoryRepository creates an empty in-memory settings repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load(ctx context.Context) (*domain.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return nil, nil
	}
	s := *r.settings
	return &s, nil
}

func (r *MemoryRepository) Save(ctx context.Context, s *domain.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.settings = &copied
	return nil
}
