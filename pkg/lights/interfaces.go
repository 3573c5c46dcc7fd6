package lights

import "github.com/df07/go-pathtracer/pkg/core"

type BackgroundType string

const (
	BackgroundTypeUniform  BackgroundType = "uniform"
	BackgroundTypeGradient BackgroundType = "gradient"
)

// Background is the infinitely distant environment a ray sees when it escapes the scene.
// Implementations are immutable and safe for concurrent use.
type Background interface {
	Type() BackgroundType

	// Emit evaluates the radiance arriving along the escaped ray
	Emit(ray core.Ray) core.Vec3
}
