// Package taskset reads and writes TOML taskset files.
package taskset

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/spaghetus/tasktree-go/internal/tree"
)

// Options controls loading behavior.
type Options struct {
	// Strict validates the raw document against the taskset schema before
	// decoding it into the typed tree.
	Strict bool
}

// Path returns the file path of the named taskset inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+".toml")
}

// Load reads one taskset file and returns its populated tree.
func Load(path string, opts Options) (*tree.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taskset: %w", err)
	}
	t, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes taskset TOML and populates the derived graph.
func Parse(data []byte, opts Options) (*tree.Tree, error) {
	if opts.Strict {
		if err := validateSchema(data); err != nil {
			return nil, err
		}
	}
	t := tree.New()
	if err := toml.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse taskset: %w", err)
	}
	if t.Tasks == nil {
		t.Tasks = make(map[string]*tree.Task)
	}
	t.Populate()
	return t, nil
}

// LoadAll loads the named tasksets from dir in order and merges them
// left-to-right, so a later set wins on name collisions. A set that cannot
// be read or parsed is skipped with a warning rather than aborting the run;
// the remaining sets still load.
func LoadAll(dir string, names []string, opts Options) *tree.Tree {
	merged := tree.New()
	for _, name := range names {
		set, err := Load(Path(dir, name), opts)
		if err != nil {
			log.Warn("skipping taskset", "taskset", name, "err", err)
			continue
		}
		merged.Merge(set)
	}
	// Merge populates after each set, but make sure an empty result still
	// carries a graph.
	if merged.Graph == nil {
		merged.Populate()
	}
	return merged
}

// Save re-populates the tree and writes it to path atomically, via a
// temporary file in the same directory renamed over the target. On-disk
// state is never written with a stale derived state.
func Save(path string, t *tree.Tree) error {
	t.Populate()

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(t); err != nil {
		return fmt.Errorf("encode taskset: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".taskset-*.toml")
	if err != nil {
		return fmt.Errorf("create temp taskset: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write taskset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write taskset: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write taskset: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace taskset: %w", err)
	}
	return nil
}

// LoadOrEmpty loads the taskset at path, or returns an empty tree when the
// file does not exist yet. Any other failure is returned as-is so an
// invalid taskset is never silently overwritten by an edit.
func LoadOrEmpty(path string, opts Options) (*tree.Tree, error) {
	t, err := Load(path, opts)
	if errors.Is(err, fs.ErrNotExist) {
		empty := tree.New()
		empty.Populate()
		return empty, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}
