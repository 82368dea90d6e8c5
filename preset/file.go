package preset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lixenwraith/lightning/lightning"
	"github.com/lixenwraith/lightning/toml"
)

// Entry is one [[preset]] table of a preset file
type Entry struct {
	Name           string  `toml:"name"`
	Description    string  `toml:"description,omitempty"`
	Seed           uint64  `toml:"seed"`
	Alpha          float64 `toml:"alpha"`
	Beta           float64 `toml:"beta"`
	Gamma          float64 `toml:"gamma"`
	MaxDepth       int     `toml:"max_depth"`
	MaxBranchDepth int     `toml:"max_branch_depth"`
}

type file struct {
	Presets []Entry `toml:"preset"`
}

func EntryFromConfig(name, description string, cfg lightning.Config) Entry {
	return Entry{
		Name:           name,
		Description:    description,
		Seed:           cfg.Seed,
		Alpha:          cfg.Alpha,
		Beta:           cfg.Beta,
		Gamma:          cfg.Gamma,
		MaxDepth:       cfg.MaxDepth,
		MaxBranchDepth: cfg.MaxBranchDepth,
	}
}

// Config returns the entry's generation parameters
func (e Entry) Config() lightning.Config {
	return lightning.Config{
		Seed:           e.Seed,
		Alpha:          e.Alpha,
		Beta:           e.Beta,
		Gamma:          e.Gamma,
		MaxDepth:       e.MaxDepth,
		MaxBranchDepth: e.MaxBranchDepth,
	}
}

// Builtins returns the six built-in presets as entries with seed 0
func Builtins() []Entry {
	out := make([]Entry, 0, count)
	for _, n := range All() {
		out = append(out, n.Entry(0))
	}
	return out
}

// Find returns the entry named name, compared case-insensitively
func Find(entries []Entry, name string) (Entry, error) {
	for _, e := range entries {
		if strings.EqualFold(e.Name, name) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("preset %q: %w", name, ErrUnknownPreset)
}

// Index resolves a 1-based menu number or a name to a position in entries
func Index(entries []Entry, s string) (int, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		if i >= 1 && i <= len(entries) {
			return i - 1, nil
		}
		return 0, fmt.Errorf("preset %q: %w", s, ErrUnknownPreset)
	}
	for i, e := range entries {
		if strings.EqualFold(e.Name, s) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("preset %q: %w", s, ErrUnknownPreset)
}

// Decode reads a preset file
// Entries need a unique non-empty name and a config that passes lightning.Config.Validate
func Decode(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}

	seen := make(map[string]bool, len(f.Presets))
	for i, e := range f.Presets {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("preset #%d: missing name: %w", i+1, ErrInvalidPreset)
		}
		key := strings.ToLower(e.Name)
		if seen[key] {
			return nil, fmt.Errorf("preset %q: duplicate name: %w", e.Name, ErrInvalidPreset)
		}
		seen[key] = true
		if err := e.Config().Validate(); err != nil {
			return nil, fmt.Errorf("preset %q: %w: %w", e.Name, ErrInvalidPreset, err)
		}
	}
	return f.Presets, nil
}

// Encode writes entries as a preset file
func Encode(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("# lightning presets\n"); err != nil {
		return err
	}
	if err := toml.NewEncoder(bw).Encode(file{Presets: entries}); err != nil {
		return fmt.Errorf("encode presets: %w", err)
	}
	return bw.Flush()
}

// Load reads the preset file at path
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Save writes entries to path, replacing any existing file
func Save(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, entries); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
