package present

import "sync"

// PresenterBackendType identifies the surface API frames are uploaded through.
type PresenterBackendType int

const (
	// BackendTypeWGPU uploads frames to a window surface through WebGPU.
	BackendTypeWGPU PresenterBackendType = iota

	// BackendTypeHeadless keeps the last frame in memory. Used for tests and offscreen capture.
	BackendTypeHeadless
)

// PresentMode controls how presented frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// PresenterBackend is the top-level backend interface for the Presenter.
type PresenterBackend interface {
	// Configure sizes the swapchain in physical pixels.
	Configure(width, height int) error

	// SetPresentMode changes the present mode. It applies on the next Configure.
	SetPresentMode(mode PresentMode)

	// Upload copies tightly packed RGBA8 pixels of the configured size to the surface and presents.
	Upload(pixels []byte, width, height int) error

	// Release frees every surface resource.
	Release()
}

// headlessPresenterBackend stores the most recent upload.
type headlessPresenterBackend struct {
	mu     sync.Mutex
	mode   PresentMode
	width  int
	height int
	last   []byte
	frames int
}

var _ PresenterBackend = &headlessPresenterBackend{}

func (b *headlessPresenterBackend) Configure(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
	return nil
}

func (b *headlessPresenterBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mode = mode
}

func (b *headlessPresenterBackend) Upload(pixels []byte, width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = append(b.last[:0], pixels...)
	b.frames++
	return nil
}

func (b *headlessPresenterBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = nil
}
