package vault

import (
	"fmt"
	"io/fs"
	"math/rand"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sahilm/fuzzy"
)

// Note is a markdown file in the vault. Read-only to resurface.
type Note struct {
	Path    string // vault-relative, slash-separated
	Name    string // basename without the .md extension
	Content string
}

// Store abstracts vault file access so the generation workflow can run
// against a fake in tests.
type Store interface {
	List() ([]string, error)
	Read(path string) (string, error)
	Write(path string, content string) error
	Exists(path string) bool
}

// DirStore is a Store over a directory tree on disk.
type DirStore struct {
	root   string
	ignore []string
}

func NewDirStore(root string, ignore []string) *DirStore {
	return &DirStore{root: root, ignore: ignore}
}

// List returns every markdown file under the root as a vault-relative
// slash path. Directories starting with "." are vault metadata and skipped.
func (d *DirStore) List() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(d.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if p != d.root && strings.HasPrefix(entry.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(entry.Name(), ".md") {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.ignored(rel) {
			return nil
		}
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing vault %s: %w", d.root, err)
	}
	return paths, nil
}

func (d *DirStore) ignored(rel string) bool {
	for _, pat := range d.ignore {
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
	}
	return false
}

func (d *DirStore) Read(p string) (string, error) {
	data, err := os.ReadFile(d.abs(p))
	if err != nil {
		return "", fmt.Errorf("reading note %s: %w", p, err)
	}
	return string(data), nil
}

func (d *DirStore) Write(p string, content string) error {
	target := d.abs(p)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating dir for %s: %w", p, err)
	}
	if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", p, err)
	}
	return nil
}

func (d *DirStore) Exists(p string) bool {
	_, err := os.Stat(d.abs(p))
	return err == nil
}

func (d *DirStore) abs(p string) string {
	return filepath.Join(d.root, filepath.FromSlash(p))
}

// Matching filters paths to those starting with the folder prefix.
// Plain string comparison: "Notes" also matches "NotesArchive/x.md".
func Matching(paths []string, prefix string) []string {
	var out []string
	for _, p := range paths {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// Pick selects one path uniformly at random. paths must be non-empty.
func Pick(paths []string, rng *rand.Rand) string {
	return paths[rng.Intn(len(paths))]
}

// DisplayName is the note's basename without the .md extension, the form
// used for headings and [[backlinks]].
func DisplayName(p string) string {
	return strings.TrimSuffix(path.Base(p), ".md")
}

// ReadNote loads a note's content through the store.
func ReadNote(s Store, p string) (Note, error) {
	content, err := s.Read(p)
	if err != nil {
		return Note{}, err
	}
	return Note{Path: p, Name: DisplayName(p), Content: content}, nil
}

// Find ranks paths by fuzzy relevance of their display names against query.
// An empty query returns paths unchanged.
func Find(paths []string, query string) []string {
	if query == "" {
		return paths
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = DisplayName(p)
	}
	matches := fuzzy.Find(query, names)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = paths[m.Index]
	}
	return out
}
