package scene

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/lights"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// LoadJSONScene reads a scene description file and builds the scene it describes.
// Relative image texture paths are resolved against the file's directory.
func LoadJSONScene(filename string, seed uint64) (*Scene, error) {
	desc, err := loaders.LoadSceneDescription(filename)
	if err != nil {
		return nil, err
	}
	s, err := NewSceneFromDescription(desc, filepath.Dir(filename), seed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// NewSceneFromDescription builds a scene from a parsed description. Each named
// texture and material is created once and shared by every object that refers to it.
func NewSceneFromDescription(desc *loaders.SceneDescription, baseDir string, seed uint64) (*Scene, error) {
	sampling := descriptionSampling(desc.Image)
	s := NewScene(descriptionCamera(desc.Camera), sampling, descriptionBackground(desc.Background))

	// One sampler drives every noise lattice, in name order, so builds are reproducible
	sampler := core.NewSeededSampler(seed, buildStream)

	textures := make(map[string]material.ColorSource, len(desc.Textures))
	for _, name := range sortedNames(desc.Textures) {
		texture, err := buildTexture(desc.Textures[name], baseDir, sampler)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", name, err)
		}
		textures[name] = texture
	}

	materials := make(map[string]material.Material, len(desc.Materials))
	for _, name := range sortedNames(desc.Materials) {
		materials[name] = buildMaterial(desc.Materials[name], textures)
	}

	for i, obj := range desc.Objects {
		shape, err := buildObject(obj, materials[obj.Material])
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		s.Add(shape)
	}

	return s, nil
}

func descriptionSampling(image loaders.ImageDescription) SamplingConfig {
	sampling := DefaultSamplingConfig()
	aspect := 16.0 / 9.0
	if image.AspectRatio > 0 {
		aspect = image.AspectRatio
	}
	if image.Width > 0 {
		sampling.Width = image.Width
	}
	sampling.Height = HeightForAspect(sampling.Width, aspect)
	if image.SamplesPerPixel > 0 {
		sampling.SamplesPerPixel = image.SamplesPerPixel
	}
	if image.MaxDepth > 0 {
		sampling.MaxDepth = image.MaxDepth
	}
	return sampling
}

func descriptionCamera(camera loaders.CameraDescription) geometry.CameraConfig {
	config := geometry.CameraConfig{
		Center:        camera.LookFrom.Vec3(),
		LookAt:        camera.LookAt.Vec3(),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          camera.VFov,
		Aperture:      camera.Aperture,
		FocusDistance: camera.FocusDistance,
		Time0:         camera.Time0,
		Time1:         camera.Time1,
	}
	if camera.Up != nil {
		config.Up = camera.Up.Vec3()
	}
	if config.VFov == 0 {
		config.VFov = 40
	}
	if config.Time0 == 0 && config.Time1 == 0 {
		config.Time1 = 1
	}
	return config
}

func descriptionBackground(bg loaders.BackgroundDescription) lights.Background {
	if bg.Type == "solid" {
		return lights.NewUniformInfiniteLight(bg.Color.Vec3())
	}
	top, bottom := lights.DefaultSkyTop, lights.DefaultSkyBottom
	if bg.Top != nil {
		top = bg.Top.Vec3()
	}
	if bg.Bottom != nil {
		bottom = bg.Bottom.Vec3()
	}
	return lights.NewGradientInfiniteLight(top, bottom)
}

func buildTexture(t loaders.TextureDescription, baseDir string, sampler core.Sampler) (material.ColorSource, error) {
	switch t.Type {
	case "solid":
		return material.NewSolidColor(t.Color.Vec3()), nil
	case "checker":
		return material.NewCheckerTextureFrom(
			material.NewSolidColor(t.Even.Vec3()),
			material.NewSolidColor(t.Odd.Vec3()),
			t.Frequency,
		), nil
	case "noise":
		scale := t.Scale
		if scale == 0 {
			scale = 4
		}
		return material.NewNoiseTexture(scale, sampler), nil
	case "image":
		filter, err := material.ParseTextureFilter(t.Filter)
		if err != nil {
			return nil, err
		}
		path := t.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		texture, err := material.NewImageTextureFromFile(path, filter)
		if err != nil {
			return nil, err
		}
		return texture, nil
	}
	return nil, fmt.Errorf("%w: texture type %q", loaders.ErrInvalidSceneDescription, t.Type)
}

// colorSource picks the named texture when present, else the inline color
func colorSource(name string, inline *loaders.Color, textures map[string]material.ColorSource) material.ColorSource {
	if name != "" {
		return textures[name]
	}
	return material.NewSolidColor(inline.Vec3())
}

func buildMaterial(m loaders.MaterialDescription, textures map[string]material.ColorSource) material.Material {
	switch m.Type {
	case "metal":
		return material.NewMetal(m.Albedo.Vec3(), m.Fuzz)
	case "dielectric":
		return material.NewDielectric(m.IOR)
	case "diffuse_light":
		return material.NewTexturedDiffuseLight(colorSource(m.Texture, m.Emission, textures))
	default:
		return material.NewTexturedLambertian(colorSource(m.Texture, m.Albedo, textures))
	}
}

func buildObject(o loaders.ObjectDescription, mat material.Material) (geometry.Shape, error) {
	var shape geometry.Shape
	switch o.Type {
	case "sphere":
		shape = geometry.NewSphere(o.Center.Vec3(), o.Radius, mat)
	case "moving_sphere":
		// Omitted times span the default shutter [0, 1]
		time0, time1 := o.Time0, o.Time1
		if time0 == 0 && time1 == 0 {
			time1 = 1
		}
		shape = geometry.NewMovingSphere(o.Center0.Vec3(), o.Center1.Vec3(), time0, time1, o.Radius, mat)
	case "xy_rect":
		shape = geometry.NewXYRect(o.X0, o.X1, o.Y0, o.Y1, o.K, mat)
	case "xz_rect":
		shape = geometry.NewXZRect(o.X0, o.X1, o.Z0, o.Z1, o.K, mat)
	case "yz_rect":
		shape = geometry.NewYZRect(o.Y0, o.Y1, o.Z0, o.Z1, o.K, mat)
	default:
		return nil, fmt.Errorf("%w: object type %q", loaders.ErrInvalidSceneDescription, o.Type)
	}
	if o.Flip {
		shape = geometry.NewFlipFace(shape)
	}
	return shape, nil
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
