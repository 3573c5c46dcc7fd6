package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/loaders"
)

// ErrUnknownScene is returned by Build for ids that name no scene
var ErrUnknownScene = errors.New("unknown scene")

// DefaultSceneID is built when no scene is requested
const DefaultSceneID = "cornell"

// DefaultScenesDir is scanned for JSON scene descriptions
const DefaultScenesDir = "scenes"

// SceneInfo represents a buildable scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, passed to Build
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // Display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the JSON file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse is every known scene, grouped
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// BuildOptions carries the settings a scene builder may need
type BuildOptions struct {
	Seed        uint64 // Seeds procedural content such as the random sphere field and noise lattices
	TexturePath string // Image for the earth scene
	Sky         bool   // Replace the scene's background with the sky gradient
}

const builtinGroup = "Built-in Scenes"

type builtinScene struct {
	info  SceneInfo
	build func(BuildOptions) (*Scene, error)
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{ID: "cornell", Name: "Cornell Box", Description: "Empty Cornell box lit by a ceiling light"},
		build: func(BuildOptions) (*Scene, error) {
			return NewCornellScene(), nil
		},
	},
	{
		info: SceneInfo{ID: "random", Name: "Random Spheres", Description: "Field of random diffuse, metal and glass spheres with motion blur"},
		build: func(opts BuildOptions) (*Scene, error) {
			return NewRandomScene(opts.Seed), nil
		},
	},
	{
		info: SceneInfo{ID: "random-sky", Name: "Random Spheres (Sky)", Description: "Random spheres under a white to sky-blue gradient"},
		build: func(opts BuildOptions) (*Scene, error) {
			return NewRandomSkyScene(opts.Seed), nil
		},
	},
	{
		info: SceneInfo{ID: "two-spheres", Name: "Two Spheres", Description: "Two large checkered spheres"},
		build: func(BuildOptions) (*Scene, error) {
			return NewTwoSpheresScene(), nil
		},
	},
	{
		info: SceneInfo{ID: "two-perlin-spheres", Name: "Two Perlin Spheres", Description: "Marble ground and sphere from Perlin turbulence"},
		build: func(opts BuildOptions) (*Scene, error) {
			return NewTwoPerlinSpheresScene(opts.Seed), nil
		},
	},
	{
		info: SceneInfo{ID: "earth", Name: "Earth", Description: "Image-textured globe"},
		build: func(opts BuildOptions) (*Scene, error) {
			return NewEarthScene(opts.TexturePath)
		},
	},
	{
		info: SceneInfo{ID: "simple-light", Name: "Simple Light", Description: "Marble spheres lit by one rectangular light"},
		build: func(opts BuildOptions) (*Scene, error) {
			return NewSimpleLightScene(opts.Seed), nil
		},
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// Build constructs the scene named by id. An id ending in .json is loaded as
// a scene description file.
func Build(id string, opts BuildOptions) (*Scene, error) {
	if id == "" {
		id = DefaultSceneID
	}

	var (
		s   *Scene
		err error
	)
	if strings.EqualFold(filepath.Ext(id), ".json") {
		s, err = LoadJSONScene(id, opts.Seed)
	} else {
		s, err = buildBuiltin(id, opts)
	}
	if err != nil {
		return nil, err
	}

	if opts.Sky {
		s.UseSkyGradient()
	}
	return s, nil
}

func buildBuiltin(id string, opts BuildOptions) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build(opts)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// ListJSONScenes scans dir for scene description files. A missing directory
// yields an empty list.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseJSONMetadata(filePath)
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseJSONMetadata reads the optional "meta" block of a scene file, falling
// back to values derived from the file name
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          filePath,
		Name:        titleCase(nameWithoutExt),
		DisplayName: titleCase(nameWithoutExt),
		Group:       "JSON Scenes",
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, fmt.Errorf("failed to read %s: %w", filePath, err)
	}

	var header struct {
		Meta loaders.MetaDescription `json:"meta"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, fmt.Errorf("%s: %w: %v", filePath, loaders.ErrInvalidSceneDescription, err)
	}

	if header.Meta.Name != "" {
		sceneInfo.Name = header.Meta.Name
		sceneInfo.DisplayName = header.Meta.Name
	}
	if header.Meta.Group != "" {
		sceneInfo.Group = header.Meta.Group
	}
	sceneInfo.Description = header.Meta.Description

	return sceneInfo, nil
}

// ListAllScenes returns built-in scenes and the JSON scenes found in dir, grouped by category
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list JSON scenes: %w", err)
	}

	allScenes := append(ListScenes(), jsonScenes...)

	groupMap := make(map[string][]SceneInfo)
	for _, scene := range allScenes {
		groupMap[scene.Group] = append(groupMap[scene.Group], scene)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if builtInGroup, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   builtinGroup,
			Scenes: builtInGroup,
		})
	}

	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{
			Name:   groupName,
			Scenes: groupMap[groupName],
		})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
