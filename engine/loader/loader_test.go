package loader

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/binary"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-fx/common"
	"github.com/Carmen-Shannon/oxy-fx/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// binarySTL encodes a single triangle as a binary STL file.
func binarySTL(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.Write(make([]byte, 80))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(1)))
	tri := [12]float32{
		0, 0, 1,
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
	}
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, tri))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(0)))
	return buf.Bytes()
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func gzipped(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// recorder collects import callbacks from worker goroutines.
type recorder struct {
	mu       sync.Mutex
	progress []string
	errs     []string
	loads    int
	loaded   chan struct{}
	progCh   chan string
}

func newRecorder() *recorder {
	return &recorder{loaded: make(chan struct{}, 4), progCh: make(chan string, 16)}
}

func (r *recorder) options(urls ...string) ImportOptions {
	return ImportOptions{
		URLs: urls,
		OnProgress: func(n scene.Node) {
			r.mu.Lock()
			r.progress = append(r.progress, n.AsObject().Name())
			r.mu.Unlock()
			r.progCh <- n.AsObject().Name()
		},
		OnLoad: func() {
			r.mu.Lock()
			r.loads++
			r.mu.Unlock()
			r.loaded <- struct{}{}
		},
		OnError: func(url string, _ error) {
			r.mu.Lock()
			r.errs = append(r.errs, url)
			r.mu.Unlock()
		},
	}
}

func (r *recorder) waitLoad(t *testing.T) {
	t.Helper()
	select {
	case <-r.loaded:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for OnLoad")
	}
}

func TestImportModelRejectsEmptyURLs(t *testing.T) {
	l := NewLoader(BackendTypeFauxGL, scene.NewScene())
	defer l.Close()

	err := l.ImportModel(ImportOptions{OnLoad: func() { t.Fatal("OnLoad must not run") }})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInputShape))
}

func TestImportModelLocalAndCompressed(t *testing.T) {
	dir := t.TempDir()
	stl := binarySTL(t)
	plain := writeFile(t, dir, "rock.stl", stl)
	packed := writeFile(t, dir, "tree.stl.gz", gzipped(t, stl))

	s := scene.NewScene()
	l := NewLoader(BackendTypeFauxGL, s, WithTempDir(dir))
	defer l.Close()

	rec := newRecorder()
	require.NoError(t, l.ImportModel(rec.options(plain, packed)))
	rec.waitLoad(t)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, 1, rec.loads)
	assert.ElementsMatch(t, []string{"rock", "tree"}, rec.progress)
	assert.Empty(t, rec.errs)
	assert.Len(t, s.Children(), 2)

	for _, n := range s.Children() {
		m := n.(*scene.Mesh)
		assert.Len(t, m.Geometry().Triangles(), 1)
	}
}

func TestImportModelFailureStillCompletes(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.stl", binarySTL(t))
	missing := filepath.Join(dir, "missing.stl")

	s := scene.NewScene()
	l := NewLoader(BackendTypeFauxGL, s)
	defer l.Close()

	rec := newRecorder()
	require.NoError(t, l.ImportModel(rec.options(missing, good)))
	rec.waitLoad(t)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, 1, rec.loads)
	assert.Equal(t, []string{"good"}, rec.progress)
	assert.Equal(t, []string{missing}, rec.errs)
	assert.Len(t, s.Children(), 1)
}

func TestImportModelOnLoadWaitsForSlowestURL(t *testing.T) {
	dir := t.TempDir()
	stl := binarySTL(t)
	fast := writeFile(t, dir, "fast.stl", stl)

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		w.Write(stl)
	}))
	defer srv.Close()

	l := NewLoader(BackendTypeFauxGL, scene.NewScene(), WithTempDir(dir))
	defer l.Close()

	rec := newRecorder()
	require.NoError(t, l.ImportModel(rec.options(srv.URL+"/models/slow.stl", fast)))

	select {
	case name := <-rec.progCh:
		assert.Equal(t, "fast", name)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the fast model")
	}
	select {
	case <-rec.loaded:
		t.Fatal("OnLoad ran before the slow model completed")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	rec.waitLoad(t)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, []string{"fast", "slow"}, rec.progress)
	assert.Equal(t, 1, rec.loads)
}

func TestLoadCachesGeometry(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "box.stl", binarySTL(t))

	l := NewLoader(BackendTypeFauxGL, scene.NewScene())
	defer l.Close()

	assert.False(t, l.Cached(p))
	a, err := l.Load(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, l.Cached(p))
	b, err := l.Load(context.Background(), p)
	require.NoError(t, err)

	assert.NotSame(t, a.Geometry(), b.Geometry())
	assert.Equal(t, a.Geometry().Bounds(), b.Geometry().Bounds())
	assert.Equal(t, "box", a.Name())
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	l := NewLoader(BackendTypeFauxGL, scene.NewScene())
	defer l.Close()
	_, err := l.Load(context.Background(), "scene.gltf")
	assert.Error(t, err)
}

func TestLoadRemoteNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	l := NewLoader(BackendTypeFauxGL, scene.NewScene())
	defer l.Close()
	_, err := l.Load(context.Background(), srv.URL+"/none.stl")
	assert.Error(t, err)
}

func TestModelNameAndExt(t *testing.T) {
	tests := []struct {
		url, name, ext string
	}{
		{"models/tree1.stl", "tree1", ".stl"},
		{"models/tree2.obj.gz", "tree2", ".obj"},
		{"https://cdn.example.com/a/rock.PLY?v=3", "rock", ".ply"},
		{"C:\\assets\\house.3ds", "house", ".3ds"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, ModelName(tt.url), tt.url)
	}
	assert.Equal(t, ".stl", modelExt("models/tree1.stl"))
	assert.Equal(t, ".obj", modelExt("models/tree2.obj.gz"))
	assert.Equal(t, ".ply", modelExt("https://cdn.example.com/a/rock.PLY?v=3"))
}
