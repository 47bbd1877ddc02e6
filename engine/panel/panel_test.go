package panel

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// settings is a stand-in for the stage state a panel binds to.
type settings struct {
	bloom     bool
	strength  float32
	edge      common.Color
	quality   string
	saveCount int
}

func newPanel(s *settings) *Panel {
	p := New()
	p.Folder("Bloom").Add(
		Bool("enabled", func() bool { return s.bloom }, func(v bool) { s.bloom = v }),
		Float("strength", 0, 2, 0.1, func() float32 { return s.strength }, func(v float32) { s.strength = v }),
	)
	p.Folder("Outline").Add(
		Color("visibleEdgeColor", func() common.Color { return s.edge }, func(c common.Color) { s.edge = c }),
	)
	p.Folder("Renderer").Add(
		Enum("quality", []string{"low", "medium", "high"}, func() string { return s.quality }, func(v string) { s.quality = v }),
		Action("save", func() { s.saveCount++ }),
	)
	return p
}

func TestFloatClampsAndSnaps(t *testing.T) {
	s := &settings{}
	p := newPanel(s)

	require.NoError(t, p.Set("Bloom/strength", 5.0))
	assert.Equal(t, float32(2), s.strength)

	require.NoError(t, p.Set("Bloom/strength", 0.44))
	assert.InDelta(t, 0.4, s.strength, 1e-5)

	require.NoError(t, p.Set("Bloom/strength", int64(-3)))
	assert.Equal(t, float32(0), s.strength)

	err := p.Set("Bloom/strength", "loud")
	assert.True(t, errors.Is(err, common.ErrInputShape))
}

func TestEnumRejectsUnknownChoice(t *testing.T) {
	s := &settings{quality: "low"}
	p := newPanel(s)
	assert.Error(t, p.Set("Renderer/quality", "ultra"))
	assert.Equal(t, "low", s.quality)
	require.NoError(t, p.Set("Renderer/quality", "high"))
	assert.Equal(t, "high", s.quality)
}

func TestColorAcceptsHex(t *testing.T) {
	s := &settings{}
	p := newPanel(s)
	require.NoError(t, p.Set("Outline/visibleEdgeColor", "#ff0000"))
	assert.Equal(t, common.RGB(1, 0, 0), s.edge)

	c, ok := p.Find("Outline/visibleEdgeColor")
	require.True(t, ok)
	assert.Equal(t, "#ff0000", c.Value())
	assert.Error(t, c.Set("not-a-color"))
}

func TestActionTriggers(t *testing.T) {
	s := &settings{}
	p := newPanel(s)
	require.NoError(t, p.Set("Renderer/save", nil))
	assert.Equal(t, 1, s.saveCount)
	assert.NotContains(t, p.Snapshot()["Renderer"], "save")
}

func TestFindUnknownPath(t *testing.T) {
	p := newPanel(&settings{})
	_, ok := p.Find("Bloom")
	assert.False(t, ok)
	_, ok = p.Find("Missing/enabled")
	assert.False(t, ok)
	assert.Error(t, p.Set("Bloom/missing", true))
}

func TestPresetRoundTrip(t *testing.T) {
	s := &settings{bloom: true, strength: 0.8, edge: common.RGB(1, 1, 1), quality: "medium"}
	p := newPanel(s)

	var buf bytes.Buffer
	require.NoError(t, p.Save(&buf))
	assert.Contains(t, buf.String(), "[Bloom]")

	s.bloom, s.strength, s.edge, s.quality = false, 1.5, common.RGB(0, 0, 0), "low"
	require.NoError(t, p.Load(&buf))

	assert.True(t, s.bloom)
	assert.InDelta(t, 0.8, s.strength, 1e-5)
	assert.Equal(t, common.RGB(1, 1, 1), s.edge)
	assert.Equal(t, "medium", s.quality)
	assert.Equal(t, 0, s.saveCount)
}

func TestApplySkipsUnknownAndCollectsErrors(t *testing.T) {
	s := &settings{}
	p := newPanel(s)
	err := p.Apply(Preset{
		"Bloom":   {"enabled": true, "strength": "high"},
		"Unknown": {"x": 1},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInputShape))
	assert.True(t, s.bloom)
}

func TestWatchReloadsPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "preset.toml")
	require.NoError(t, os.WriteFile(path, []byte("[Bloom]\nenabled = false\n"), 0o644))

	s := &settings{}
	p := newPanel(s)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan error, 8)
	require.NoError(t, p.Watch(ctx, path, nil, func(err error) { reloaded <- err }))

	require.NoError(t, os.WriteFile(path, []byte("[Bloom]\nenabled = true\nstrength = 1.2\n"), 0o644))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case err := <-reloaded:
			require.NoError(t, err)
			if s.bloom {
				assert.InDelta(t, 1.2, s.strength, 1e-5)
				return
			}
		case <-deadline:
			t.Fatal("preset was not reloaded")
		}
	}
}
