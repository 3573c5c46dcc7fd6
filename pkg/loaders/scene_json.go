package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrInvalidSceneDescription is returned for structurally broken scene files
var ErrInvalidSceneDescription = errors.New("invalid scene description")

// SceneDescription is the on-disk form of a scene. Textures and materials are
// named so that many objects can share one instance.
type SceneDescription struct {
	Meta       MetaDescription                `json:"meta"`
	Image      ImageDescription               `json:"image"`
	Camera     CameraDescription              `json:"camera"`
	Background BackgroundDescription          `json:"background"`
	Textures   map[string]TextureDescription  `json:"textures"`
	Materials  map[string]MaterialDescription `json:"materials"`
	Objects    []ObjectDescription            `json:"objects"`
}

// MetaDescription is optional display information used when listing scenes
type MetaDescription struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

// ImageDescription holds output size and sampling settings. Zero fields take defaults.
type ImageDescription struct {
	Width           int     `json:"width"`
	AspectRatio     float64 `json:"aspectRatio"`
	SamplesPerPixel int     `json:"samplesPerPixel"`
	MaxDepth        int     `json:"maxDepth"`
}

type CameraDescription struct {
	LookFrom      Vector  `json:"lookFrom"`
	LookAt        Vector  `json:"lookAt"`
	Up            *Vector `json:"up"`
	VFov          float64 `json:"vfov"`
	Aperture      float64 `json:"aperture"`
	FocusDistance float64 `json:"focusDistance"`
	Time0         float64 `json:"time0"`
	Time1         float64 `json:"time1"`
}

// BackgroundDescription is either {"type":"solid","color":C} or {"type":"gradient"}
type BackgroundDescription struct {
	Type   string `json:"type"`
	Color  *Color `json:"color"`
	Top    *Color `json:"top"`
	Bottom *Color `json:"bottom"`
}

type TextureDescription struct {
	Type      string  `json:"type"` // solid, checker, noise, image
	Color     *Color  `json:"color"`
	Even      *Color  `json:"even"`
	Odd       *Color  `json:"odd"`
	Frequency float64 `json:"frequency"`
	Scale     float64 `json:"scale"`
	Path      string  `json:"path"`
	Filter    string  `json:"filter"`
}

type MaterialDescription struct {
	Type     string  `json:"type"` // lambertian, metal, dielectric, diffuse_light
	Texture  string  `json:"texture"`
	Albedo   *Color  `json:"albedo"`
	Fuzz     float64 `json:"fuzz"`
	IOR      float64 `json:"ior"`
	Emission *Color  `json:"emission"`
}

// ObjectDescription covers every primitive; each type reads only its own fields.
type ObjectDescription struct {
	Type     string `json:"type"` // sphere, moving_sphere, xy_rect, xz_rect, yz_rect
	Material string `json:"material"`
	Flip     bool   `json:"flip"` // swap front and back face, e.g. for a downward-facing ceiling light

	Center  *Vector `json:"center"`
	Center0 *Vector `json:"center0"`
	Center1 *Vector `json:"center1"`
	Radius  float64 `json:"radius"`
	Time0   float64 `json:"time0"`
	Time1   float64 `json:"time1"`

	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`
	Z0 float64 `json:"z0"`
	Z1 float64 `json:"z1"`
	K  float64 `json:"k"`
}

// Vector is a JSON [x, y, z] triple
type Vector [3]float64

// Vec3 converts to core.Vec3
func (v Vector) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// Color is a linear RGB value written either as [r, g, b] or as an SVG color name.
// Names are sRGB and are squared into linear space to match the gamma 2 output.
type Color core.Vec3

// Vec3 converts to core.Vec3
func (c Color) Vec3() core.Vec3 {
	return core.Vec3(c)
}

// UnmarshalJSON accepts [r, g, b] or a name such as "tomato"
func (c *Color) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		rgba, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return fmt.Errorf("%w: unknown color name %q", ErrInvalidSceneDescription, name)
		}
		*c = Color(core.NewVec3(linear(rgba.R), linear(rgba.G), linear(rgba.B)))
		return nil
	}

	var rgb [3]float64
	if err := json.Unmarshal(data, &rgb); err != nil {
		return fmt.Errorf("%w: color must be [r,g,b] or a name: %s", ErrInvalidSceneDescription, string(data))
	}
	*c = Color(core.NewVec3(rgb[0], rgb[1], rgb[2]))
	return nil
}

// linear inverts the gamma 2 display curve for one 8-bit channel
func linear(c uint8) float64 {
	v := float64(c) / 255
	return v * v
}

// LoadSceneDescription reads and validates a scene description file
func LoadSceneDescription(filename string) (*SceneDescription, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	desc, err := ParseSceneDescription(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return desc, nil
}

// ParseSceneDescription decodes a scene description. Unknown fields are rejected.
func ParseSceneDescription(reader io.Reader) (*SceneDescription, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var desc SceneDescription
	if err := decoder.Decode(&desc); err != nil {
		if errors.Is(err, ErrInvalidSceneDescription) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSceneDescription, err)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	return &desc, nil
}

// Validate checks types and cross references. Geometric validity is left to the shapes themselves.
func (d *SceneDescription) Validate() error {
	switch d.Background.Type {
	case "", "gradient":
	case "solid":
		if d.Background.Color == nil {
			return fmt.Errorf("%w: solid background needs a color", ErrInvalidSceneDescription)
		}
	default:
		return fmt.Errorf("%w: unknown background type %q", ErrInvalidSceneDescription, d.Background.Type)
	}

	for _, name := range sortedKeys(d.Textures) {
		if err := d.Textures[name].validate(); err != nil {
			return fmt.Errorf("texture %q: %w", name, err)
		}
	}

	for _, name := range sortedKeys(d.Materials) {
		if err := d.Materials[name].validate(d.Textures); err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}
	}

	if len(d.Objects) == 0 {
		return fmt.Errorf("%w: no objects", ErrInvalidSceneDescription)
	}
	for i, obj := range d.Objects {
		if err := obj.validate(d.Materials); err != nil {
			return fmt.Errorf("object %d (%s): %w", i, obj.Type, err)
		}
	}
	return nil
}

func (t TextureDescription) validate() error {
	switch t.Type {
	case "solid":
		if t.Color == nil {
			return fmt.Errorf("%w: solid texture needs a color", ErrInvalidSceneDescription)
		}
	case "checker":
		if t.Even == nil || t.Odd == nil {
			return fmt.Errorf("%w: checker texture needs even and odd colors", ErrInvalidSceneDescription)
		}
	case "noise":
	case "image":
		if t.Path == "" {
			return fmt.Errorf("%w: image texture needs a path", ErrInvalidSceneDescription)
		}
	default:
		return fmt.Errorf("%w: unknown texture type %q", ErrInvalidSceneDescription, t.Type)
	}
	return nil
}

func (m MaterialDescription) validate(textures map[string]TextureDescription) error {
	if m.Texture != "" {
		if _, ok := textures[m.Texture]; !ok {
			return fmt.Errorf("%w: unknown texture %q", ErrInvalidSceneDescription, m.Texture)
		}
	}

	switch m.Type {
	case "lambertian":
		if m.Texture == "" && m.Albedo == nil {
			return fmt.Errorf("%w: lambertian needs a texture or an albedo", ErrInvalidSceneDescription)
		}
	case "metal":
		if m.Albedo == nil {
			return fmt.Errorf("%w: metal needs an albedo", ErrInvalidSceneDescription)
		}
	case "dielectric":
		if m.IOR <= 0 {
			return fmt.Errorf("%w: dielectric needs a positive ior", ErrInvalidSceneDescription)
		}
	case "diffuse_light":
		if m.Texture == "" && m.Emission == nil {
			return fmt.Errorf("%w: diffuse_light needs a texture or an emission", ErrInvalidSceneDescription)
		}
	default:
		return fmt.Errorf("%w: unknown material type %q", ErrInvalidSceneDescription, m.Type)
	}
	return nil
}

func (o ObjectDescription) validate(materials map[string]MaterialDescription) error {
	if _, ok := materials[o.Material]; !ok {
		return fmt.Errorf("%w: unknown material %q", ErrInvalidSceneDescription, o.Material)
	}

	switch o.Type {
	case "sphere":
		if o.Center == nil {
			return fmt.Errorf("%w: sphere needs a center", ErrInvalidSceneDescription)
		}
	case "moving_sphere":
		if o.Center0 == nil || o.Center1 == nil {
			return fmt.Errorf("%w: moving_sphere needs center0 and center1", ErrInvalidSceneDescription)
		}
	case "xy_rect", "xz_rect", "yz_rect":
	default:
		return fmt.Errorf("%w: unknown object type %q", ErrInvalidSceneDescription, o.Type)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
