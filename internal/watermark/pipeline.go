package watermark

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/ironsheep/document-watermark-mcp/internal/canvas"
	imgproc "github.com/ironsheep/document-watermark-mcp/internal/imaging"
	"github.com/ironsheep/document-watermark-mcp/internal/layout"
)

// State is the stage a pipeline run has reached.
type State int32

const (
	StateIdle State = iota
	StateLoading
	StateComposing
	StateExporting
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateComposing:
		return "composing"
	case StateExporting:
		return "exporting"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int32(s))
}

// Result is the outcome of an asynchronous run. Exactly one of Artifact and
// Err is set.
type Result struct {
	Artifact *Artifact
	Err      error
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithResampler replaces the default Lanczos resampler.
func WithResampler(r Resampler) Option {
	return func(p *Pipeline) { p.resampler = r }
}

// WithStore registers every produced artifact in store.
func WithStore(store *ArtifactStore) Option {
	return func(p *Pipeline) { p.store = store }
}

// WithLogger sets the logger for stage transitions and failures.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// WithStateHook calls fn on every state transition, on the running goroutine.
func WithStateHook(fn func(State)) Option {
	return func(p *Pipeline) { p.hook = fn }
}

// WithOpacity overrides DefaultOpacity. Values are clamped to [0, 1] and NaN
// keeps the default.
func WithOpacity(opacity float64) Option {
	return func(p *Pipeline) {
		switch {
		case math.IsNaN(opacity):
			return
		case opacity < 0:
			opacity = 0
		case opacity > 1:
			opacity = 1
		}
		p.opacity = opacity
	}
}

// WithMaxPixels caps the source raster and every surface of a run. Run checks
// the source header against it before decoding. Oversized runs fail with
// canvas.ErrUnavailable.
func WithMaxPixels(n int) Option {
	return func(p *Pipeline) { p.maxPixels = n }
}

// Pipeline turns a source photo and holder text into a watermarked PNG.
type Pipeline struct {
	resampler Resampler
	store     *ArtifactStore
	log       zerolog.Logger
	hook      func(State)
	opacity   float64
	maxPixels int

	state atomic.Int32
}

// New creates a pipeline in StateIdle.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		resampler: LanczosResampler{},
		log:       zerolog.Nop(),
		opacity:   DefaultOpacity,
		maxPixels: canvas.DefaultMaxPixels,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// State returns the state of the current or most recent run.
func (p *Pipeline) State() State {
	return State(p.state.Load())
}

// Run decodes the source from r and watermarks it with text.
func (p *Pipeline) Run(ctx context.Context, r io.Reader, text string) (*Artifact, error) {
	p.setState(StateLoading)

	if err := ctx.Err(); err != nil {
		return nil, p.fail(err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, p.fail(fmt.Errorf("%w: failed to read source: %v", ErrDecode, err))
	}
	if err := p.checkSource(data); err != nil {
		return nil, p.fail(err)
	}
	img, err := imgproc.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, p.fail(err)
	}

	return p.RunImage(ctx, img, text)
}

// checkSource rejects a source whose raster, or the canvas planned for it,
// exceeds the pixel limit. Only the header is read.
func (p *Pipeline) checkSource(data []byte) error {
	cfg, err := imgproc.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if p.maxPixels <= 0 {
		return nil
	}

	limit := int64(p.maxPixels)
	if int64(cfg.Width)*int64(cfg.Height) > limit {
		return fmt.Errorf("%w: source %dx%d exceeds %d pixels", canvas.ErrUnavailable, cfg.Width, cfg.Height, p.maxPixels)
	}
	// EXIF orientation may swap the sides, which changes the canvas slightly.
	for _, dims := range [][2]int{{cfg.Width, cfg.Height}, {cfg.Height, cfg.Width}} {
		plan, err := layout.New(dims[0], dims[1])
		if err != nil {
			return err
		}
		if w, h := plan.Size(); int64(w)*int64(h) > limit {
			return fmt.Errorf("%w: canvas %dx%d exceeds %d pixels", canvas.ErrUnavailable, w, h, p.maxPixels)
		}
	}
	return nil
}

// RunImage watermarks an already decoded source, starting at StateComposing.
func (p *Pipeline) RunImage(ctx context.Context, img image.Image, text string) (*Artifact, error) {
	p.setState(StateComposing)
	if img == nil {
		return nil, p.fail(fmt.Errorf("%w: no source image", ErrDecode))
	}

	b := img.Bounds()
	plan, err := layout.New(b.Dx(), b.Dy())
	if err != nil {
		return nil, p.fail(err)
	}
	w, h := plan.Size()
	log := p.log.With().
		Int("source_width", plan.SourceWidth).
		Int("source_height", plan.SourceHeight).
		Int("canvas_width", w).
		Int("canvas_height", h).
		Logger()

	base, err := canvas.NewLimited(w, h, p.maxPixels)
	if err != nil {
		return nil, p.fail(err)
	}
	if err := DrawFrame(base, plan, img); err != nil {
		return nil, p.fail(fmt.Errorf("failed to draw frame: %w", err))
	}
	if err := DrawCaption(base, plan); err != nil {
		return nil, p.fail(fmt.Errorf("failed to draw caption: %w", err))
	}
	log.Debug().Msg("frame and caption drawn")

	layer, err := canvas.NewLimited(w, h, p.maxPixels)
	if err != nil {
		return nil, p.fail(err)
	}
	if err := TileText(layer, Template(text)); err != nil {
		return nil, p.fail(fmt.Errorf("failed to tile watermark: %w", err))
	}

	adjusted, err := AdjustContrast(base.Pixels(), layer.Pixels(), p.opacity)
	if err != nil {
		return nil, p.fail(fmt.Errorf("failed to adjust contrast: %w", err))
	}
	if err := layer.PutPixels(adjusted); err != nil {
		return nil, p.fail(err)
	}
	if err := Composite(base, layer); err != nil {
		return nil, p.fail(fmt.Errorf("failed to composite: %w", err))
	}
	log.Debug().Float64("opacity", p.opacity).Msg("watermark composited")

	p.setState(StateExporting)
	data, err := Export(ctx, p.resampler, base.Image(), w, h)
	if err != nil {
		return nil, p.fail(err)
	}

	art := newArtifact(data, w, h, text)
	if p.store != nil {
		p.store.Put(art)
	}
	p.setState(StateReady)
	log.Debug().Str("handle", art.Handle).Int("bytes", len(data)).Msg("artifact ready")

	return art, nil
}

// Start runs Run on a new goroutine. The returned channel receives exactly one
// Result and is then closed. It is buffered, so an abandoned run does not leak.
func (p *Pipeline) Start(ctx context.Context, r io.Reader, text string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		art, err := p.Run(ctx, r, text)
		ch <- Result{Artifact: art, Err: err}
	}()
	return ch
}

func (p *Pipeline) setState(s State) {
	p.state.Store(int32(s))
	p.log.Debug().Str("state", s.String()).Msg("pipeline state changed")
	if p.hook != nil {
		p.hook(s)
	}
}

func (p *Pipeline) fail(err error) error {
	p.log.Error().Err(err).Str("state", p.State().String()).Msg("pipeline run failed")
	p.setState(StateFailed)
	return err
}
