package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/output"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneID     string
	threads     int
	spp         int // 0 keeps the scene's value
	width       int // 0 keeps the scene's value
	depth       int // negative keeps the scene's value
	seed        uint64
	sky         bool
	texturePath string
	outputPath  string
	list        bool
	help        bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	defaults := renderer.DefaultConfig()
	var opts options

	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.sceneID, "scene", scene.DefaultSceneID, "Built-in scene id or path to a .json scene description")
	fs.IntVar(&opts.threads, "threads", defaults.NumWorkers, "Number of render workers (0 = CPU count)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.width, "width", 0, "Image width; height follows the scene's aspect ratio (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Maximum bounces per path (-1 = scene default)")
	fs.Uint64Var(&opts.seed, "seed", defaults.Seed, "Random seed for scene generation and sampling")
	fs.BoolVar(&opts.sky, "sky", false, "Replace the scene background with the white to sky-blue gradient")
	fs.StringVar(&opts.texturePath, "texture", scene.DefaultEarthTexture, "Image used by the earth scene")
	fs.StringVar(&opts.outputPath, "output", "output.ppm", "Output image (.ppm or .png)")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	if fs.NArg() > 0 {
		return opts, fs, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, fs, nil
}

// createScene builds the requested scene and applies command line overrides.
// The returned scene is preprocessed and ready to render.
func createScene(opts options) (*scene.Scene, error) {
	s, err := scene.Build(opts.sceneID, scene.BuildOptions{
		Seed:        opts.seed,
		TexturePath: opts.texturePath,
		Sky:         opts.sky,
	})
	if err != nil {
		return nil, err
	}

	if opts.width > 0 {
		aspect := float64(s.SamplingConfig.Width) / float64(s.SamplingConfig.Height)
		s.SamplingConfig.Width = opts.width
		s.SamplingConfig.Height = scene.HeightForAspect(opts.width, aspect)
	}
	if opts.spp > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if opts.depth >= 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}

	if err := s.Preprocess(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", opts.sceneID, err)
	}
	return s, nil
}

func printScenes(w io.Writer) error {
	all, err := scene.ListAllScenes(scene.DefaultScenesDir)
	if err != nil {
		return err
	}
	for _, group := range all.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-20s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, fs, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if opts.help {
		fmt.Fprintln(stdout, "Path Tracer")
		fmt.Fprintln(stdout, "Usage: pathtracer [options]")
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Options:")
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, "Available scenes:")
		if err := printScenes(stdout); err != nil {
			fmt.Fprintf(stderr, "Error listing scenes: %v\n", err)
			return 1
		}
		return 0
	}
	if opts.list {
		if err := printScenes(stdout); err != nil {
			fmt.Fprintf(stderr, "Error listing scenes: %v\n", err)
			return 1
		}
		return 0
	}

	if err := output.CheckPath(opts.outputPath); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	selected, err := createScene(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating scene: %v\n", err)
		return 1
	}

	logger := renderer.NewWriterLogger(stderr)
	config := renderer.Config{NumWorkers: opts.threads, Seed: opts.seed}
	r, err := renderer.NewRenderer(selected, integrator.NewPathTracingIntegrator(selected.SamplingConfig), config, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating renderer: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return render(ctx, r, selected, opts.outputPath, logger)
}

func render(ctx context.Context, r *renderer.Renderer, s *scene.Scene, outputPath string, logger core.Logger) int {
	sampling := s.SamplingConfig
	logger.Printf("Rendering %dx%d, %d samples per pixel, max depth %d, %d shapes\n",
		sampling.Width, sampling.Height, sampling.SamplesPerPixel, sampling.MaxDepth, s.GetPrimitiveCount())

	logger.Printf(">>> RENDERING <<<\n")
	buf, stats, err := r.Render(ctx)
	logger.Printf("\n")
	if err != nil {
		logger.Printf("Render failed after %d of %d pixels: %v\n", stats.CompletedPixels, stats.TotalPixels, err)
		return 1
	}
	logger.Printf("Render completed in %v using %d workers (%d samples, average luminance %.4f)\n",
		stats.Duration.Round(time.Millisecond), stats.NumWorkers, stats.TotalSamples, stats.AverageLuminance)

	logger.Printf(">>> WRITING TO FILE <<<\n")
	if err := output.WriteFile(outputPath, buf); err != nil {
		logger.Printf("Error saving image: %v\n", err)
		return 1
	}
	logger.Printf("Render saved as %s\n", outputPath)
	return 0
}
