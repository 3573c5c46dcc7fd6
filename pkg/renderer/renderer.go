package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// ErrNonFiniteRadiance is returned when a pixel sum contains NaN or Inf
var ErrNonFiniteRadiance = errors.New("non-finite radiance")

// Renderer accumulates per-pixel samples of a preprocessed scene into a pixel buffer
type Renderer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
}

// NewRenderer creates a renderer. The scene must already be preprocessed and
// must not be modified until Render returns.
func NewRenderer(s *scene.Scene, integ integrator.Integrator, config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if s == nil || s.Camera == nil {
		return nil, fmt.Errorf("%w: scene is missing or not preprocessed", ErrInvalidConfig)
	}
	if integ == nil {
		return nil, fmt.Errorf("%w: no integrator", ErrInvalidConfig)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Renderer{
		scene:      s,
		integrator: integ,
		config:     config,
		logger:     logger,
	}, nil
}

// Render traces every pixel and blocks until all of them are done. On failure
// or cancellation the partial buffer is returned alongside the first error.
func (r *Renderer) Render(ctx context.Context) (*PixelBuffer, RenderStats, error) {
	sampling := r.scene.SamplingConfig
	width, height := sampling.Width, sampling.Height
	buf := NewPixelBuffer(width, height, sampling.SamplesPerPixel)

	tasks := make([]PixelTask, width*height)
	for i := range tasks {
		tasks[i] = PixelTask{Index: i, X: i % width, Y: i / width}
	}

	pool := NewWorkerPool(r.config.NumWorkers)
	progress := NewProgress(len(tasks), r.logger)
	start := time.Now()

	err := pool.Run(ctx, tasks, func(task PixelTask) error {
		sum, err := r.renderPixel(task)
		if err != nil {
			return err
		}
		buf.Pixels[task.Index] = sum
		progress.Increment()
		return nil
	})

	completed := progress.Done()
	stats := RenderStats{
		TotalPixels:     len(tasks),
		CompletedPixels: completed,
		TotalSamples:    completed * sampling.SamplesPerPixel,
		SamplesPerPixel: sampling.SamplesPerPixel,
		NumWorkers:      pool.GetNumWorkers(),
		Duration:        time.Since(start),
	}
	if err != nil {
		return buf, stats, err
	}

	stats.AverageLuminance = CalculateAverageLuminance(buf)
	return buf, stats, nil
}

// renderPixel sums SamplesPerPixel jittered camera samples for one pixel.
// The sampler stream is the pixel index, so the result does not depend on
// which worker runs the task or when.
func (r *Renderer) renderPixel(task PixelTask) (core.Vec3, error) {
	sampling := r.scene.SamplingConfig
	sampler := core.NewSeededSampler(r.config.Seed, uint64(task.Index))

	uScale := float64(max(sampling.Width-1, 1))
	vScale := float64(max(sampling.Height-1, 1))
	row := float64(sampling.Height - 1 - task.Y)

	sum := core.Vec3{}
	for s := 0; s < sampling.SamplesPerPixel; s++ {
		jitter := sampler.Get2D()
		u := (float64(task.X) + jitter.X) / uScale
		v := (row + jitter.Y) / vScale

		ray := r.scene.Camera.GetRay(u, v, sampler)
		sum = sum.Add(r.integrator.RayColor(ray, r.scene, sampler))
	}

	if !sum.IsFinite() {
		return sum, fmt.Errorf("%w: pixel (%d, %d) = %v", ErrNonFiniteRadiance, task.X, task.Y, sum)
	}
	return sum, nil
}
