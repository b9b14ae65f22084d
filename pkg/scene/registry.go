package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by NewSceneByName
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Width       int    `json:"width"`  // Preferred image width
	Height      int    `json:"height"` // Preferred image height
}

type sceneEntry struct {
	description string
	build       func(overrides renderer.CameraConfig) *Scene
}

var builtInScenes = map[string]sceneEntry{
	"normals": {
		description: "Two spheres shaded by surface normal",
		build:       func(o renderer.CameraConfig) *Scene { return NewNormalsScene(o) },
	},
	"default": {
		description: "Diffuse, fuzzy metal and hollow glass spheres on a ground sphere",
		build:       func(o renderer.CameraConfig) *Scene { return NewDefaultScene(o) },
	},
	"random": {
		description: "Cover picture: hundreds of random small spheres with depth of field",
		build:       func(o renderer.CameraConfig) *Scene { return NewRandomScene(DefaultRandomSeed, o) },
	},
	"plane": {
		description: "The default spheres above an infinite ground plane",
		build:       func(o renderer.CameraConfig) *Scene { return NewPlaneScene(o) },
	},
	"sphere-grid": {
		description: "10x10 grid of rainbow-colored metallic spheres",
		build:       func(o renderer.CameraConfig) *Scene { return NewSphereGridScene(o) },
	},
}

// ListScenes returns every built-in scene sorted by ID
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for id, entry := range builtInScenes {
		s := entry.build(renderer.CameraConfig{})
		scenes = append(scenes, SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: entry.description,
			Width:       s.SamplingConfig.Width,
			Height:      s.SamplingConfig.Height,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// NewSceneByName builds a built-in scene, overlaying the non-zero camera fields of overrides
func NewSceneByName(name string, overrides renderer.CameraConfig) (*Scene, error) {
	entry, ok := builtInScenes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", name, strings.Join(sceneIDs(), ", "))
	}
	return entry.build(overrides), nil
}

func sceneIDs() []string {
	ids := make([]string, 0, len(builtInScenes))
	for id := range builtInScenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// titleCase converts a filename-style string to title case
// e.g., "sphere-grid" -> "Sphere Grid"
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
