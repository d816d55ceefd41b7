package dataset

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/taskflow/internal/tracking/domain/task"
)

//go:embed seed.json
var seedJSON []byte

// SeedData returns the embedded mock dataset.
func SeedData() []byte {
	out := make([]byte, len(seedJSON))
	copy(out, seedJSON)
	return out
}

// Load reads the dataset at path, or the embedded seed when path is empty.
// Files ending in .yaml or .yml are read as YAML.
func Load(ctx context.Context, path string, opts Options) ([]*task.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := seedJSON
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read dataset: %w", err)
		}
	}
	decode := Decode
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decode = DecodeYAML
	}
	tasks, err := decode(data, opts)
	if err != nil && path != "" {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tasks, err
}

// Seed saves tasks into repo in order.
func Seed(ctx context.Context, repo task.Repository, tasks []*task.Task) error {
	for _, t := range tasks {
		if err := repo.Save(ctx, t); err != nil {
			return fmt.Errorf("seed task %s: %w", t.ID(), err)
		}
	}
	return nil
}
