package panel

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/pelletier/go-toml/v2"
)

// Folder groups the controls of one component, such as a pass or a light.
type Folder struct {
	mu       sync.RWMutex
	name     string
	controls []Control
}

func (f *Folder) Name() string {
	return f.name
}

// Add appends controls to the folder. A control whose name is already taken replaces the
// earlier one in place.
func (f *Folder) Add(controls ...Control) *Folder {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range controls {
		if c == nil {
			continue
		}
		replaced := false
		for i, existing := range f.controls {
			if existing.Name() == c.Name() {
				f.controls[i] = c
				replaced = true
				break
			}
		}
		if !replaced {
			f.controls = append(f.controls, c)
		}
	}
	return f
}

// Control returns the control named name.
func (f *Folder) Control(name string) (Control, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, c := range f.controls {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Controls returns the controls in insertion order.
func (f *Folder) Controls() []Control {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Control, len(f.controls))
	copy(out, f.controls)
	return out
}

// Panel is the runtime configuration surface of the stage: folders of named controls bound to live
// getters and setters, with presets stored as TOML tables (one table per folder).
type Panel struct {
	mu      sync.RWMutex
	folders []*Folder
}

func New() *Panel {
	return &Panel{}
}

// Folder returns the folder named name, creating it on first use.
//
// Parameters:
//   - name: the folder name
//
// Returns:
//   - *Folder: the folder
func (p *Panel) Folder(name string) *Folder {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, f := range p.folders {
		if f.name == name {
			return f
		}
	}
	f := &Folder{name: name}
	p.folders = append(p.folders, f)
	return f
}

func (p *Panel) Folders() []*Folder {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Folder, len(p.folders))
	copy(out, p.folders)
	return out
}

// Find resolves a "folder/control" path.
//
// Parameters:
//   - path: the folder and control names joined by a slash
//
// Returns:
//   - Control: the control
//   - bool: true if found
func (p *Panel) Find(path string) (Control, bool) {
	folder, name, ok := strings.Cut(path, "/")
	if !ok {
		return nil, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, f := range p.folders {
		if f.name == folder {
			return f.Control(name)
		}
	}
	return nil, false
}

// Set writes one control by path.
func (p *Panel) Set(path string, v any) error {
	c, ok := p.Find(path)
	if !ok {
		return fmt.Errorf("panel: no control %q", path)
	}
	return c.Set(v)
}

// Preset is a snapshot of every valued control, keyed by folder then control name.
type Preset map[string]map[string]any

// Snapshot reads the current value of every control except actions.
//
// Returns:
//   - Preset: the current values
func (p *Panel) Snapshot() Preset {
	out := make(Preset)
	for _, f := range p.Folders() {
		values := make(map[string]any)
		for _, c := range f.Controls() {
			if c.Kind() == KindAction {
				continue
			}
			values[c.Name()] = c.Value()
		}
		if len(values) > 0 {
			out[f.Name()] = values
		}
	}
	return out
}

// Apply writes every value of preset to the matching control. Unknown folders and controls are
// skipped with a warning; type errors are collected and returned together after all other values
// have been applied.
//
// Parameters:
//   - preset: the values to write
//
// Returns:
//   - error: the joined control errors, or nil
func (p *Panel) Apply(preset Preset) error {
	var errs []error
	for folder, values := range preset {
		for name, v := range values {
			c, ok := p.Find(folder + "/" + name)
			if !ok {
				common.Logger().Warn("panel preset entry ignored", "folder", folder, "control", name)
				continue
			}
			if c.Kind() == KindAction {
				continue
			}
			if err := c.Set(v); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Save encodes the current snapshot as TOML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: error if encoding fails
func (p *Panel) Save(w io.Writer) error {
	return toml.NewEncoder(w).Encode(p.Snapshot())
}

// Load decodes a TOML preset from r and applies it.
//
// Parameters:
//   - r: the source
//
// Returns:
//   - error: error if decoding fails or any value is rejected
func (p *Panel) Load(r io.Reader) error {
	var preset Preset
	if err := toml.NewDecoder(r).Decode(&preset); err != nil {
		return fmt.Errorf("panel: decode preset: %w", err)
	}
	return p.Apply(preset)
}

// SaveFile writes the current snapshot to path.
func (p *Panel) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := p.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads and applies the preset stored at path.
func (p *Panel) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return p.Load(f)
}
