package present

import (
	"fmt"
	"image"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"golang.org/x/image/draw"
)

// presenter is the implementation of the Presenter interface.
type presenter struct {
	mu *sync.Mutex

	backendType PresenterBackendType
	backend     PresenterBackend

	width  int
	height int
	scaled *image.RGBA

	// Pre-creation config collected from builder options
	surfaceDescriptor    *wgpu.SurfaceDescriptor
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
}

// Presenter puts finished frames on screen.
//
// The composited frame is produced on the CPU; the Presenter owns the swapchain of the host window
// and copies each frame into it. Frames whose size differs from the swapchain are rescaled first.
type Presenter interface {
	// Resize reconfigures the swapchain for a new surface size.
	//
	// Parameters:
	//   - width: the framebuffer width in pixels
	//   - height: the framebuffer height in pixels
	//
	// Returns:
	//   - error: an error if the surface cannot be configured
	Resize(width, height int) error

	// Size returns the configured swapchain size.
	Size() (int, int)

	// SetPresentMode sets how frames are delivered to the display. A call to Resize is
	// required for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Present uploads frame and presents it.
	//
	// Parameters:
	//   - frame: the finished frame
	//
	// Returns:
	//   - error: an error if the upload fails or the presenter is not configured
	Present(frame *image.RGBA) error

	// Release frees the surface and device.
	Release()
}

var _ Presenter = &presenter{}

// NewPresenter creates a Presenter with the given options.
// The WGPU backend requires WithSurfaceDescriptor.
//
// Parameters:
//   - options: variadic list of PresenterBuilderOption functions
//
// Returns:
//   - Presenter: the presenter
//   - error: an error if the backend cannot be created
func NewPresenter(options ...PresenterBuilderOption) (Presenter, error) {
	p := &presenter{
		mu:          &sync.Mutex{},
		backendType: BackendTypeWGPU,
	}
	for _, option := range options {
		option(p)
	}

	switch p.backendType {
	case BackendTypeWGPU:
		b, err := newWGPUPresenterBackend(p.surfaceDescriptor, p.forceFallbackAdapter)
		if err != nil {
			return nil, err
		}
		p.backend = b
	case BackendTypeHeadless:
		p.backend = &headlessPresenterBackend{}
	default:
		return nil, fmt.Errorf("presenter: unsupported backend type %d", p.backendType)
	}

	if p.pendingPresentMode != nil {
		p.backend.SetPresentMode(*p.pendingPresentMode)
		p.pendingPresentMode = nil
	}
	return p, nil
}

func (p *presenter) Resize(width, height int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	width, height = max(width, 1), max(height, 1)
	if err := p.backend.Configure(width, height); err != nil {
		return fmt.Errorf("presenter resize: %w", err)
	}
	p.width, p.height = width, height
	return nil
}

func (p *presenter) Size() (int, int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.width, p.height
}

func (p *presenter) SetPresentMode(mode PresentMode) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.backend.SetPresentMode(mode)
}

func (p *presenter) Present(frame *image.RGBA) error {
	if frame == nil {
		return fmt.Errorf("present: nil frame")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.width == 0 || p.height == 0 {
		return fmt.Errorf("present: presenter not configured")
	}

	src := frame
	b := frame.Bounds()
	if b.Dx() != p.width || b.Dy() != p.height || frame.Stride != p.width*4 {
		if p.scaled == nil || p.scaled.Rect.Dx() != p.width || p.scaled.Rect.Dy() != p.height {
			p.scaled = image.NewRGBA(image.Rect(0, 0, p.width, p.height))
		}
		draw.BiLinear.Scale(p.scaled, p.scaled.Rect, frame, b, draw.Src, nil)
		src = p.scaled
	}

	if err := p.backend.Upload(src.Pix[:p.width*p.height*4], p.width, p.height); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}

func (p *presenter) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.backend.Release()
}
