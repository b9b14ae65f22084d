package server

import (
	"fmt"
	"math"
	"math/rand"
	"net/http"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains information about the object hit by an inspection ray
type InspectResult struct {
	Hit       bool
	Ray       core.Ray
	HitRecord *material.HitRecord
	Shape     geometry.Shape // The shape that was hit; nil if it could not be identified
}

func vecArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	rgb := c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(rgb.X*255), int(rgb.Y*255), int(rgb.Z*255))
}

// extractMaterialInfo describes a material and its parameters
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch mat.Kind {
	case material.KindLambertian:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
	case material.KindMetal:
		properties["albedo"] = vecArray(mat.Albedo)
		properties["color"] = hexColor(mat.Albedo)
		properties["fuzz"] = mat.Fuzz
	case material.KindDielectric:
		properties["refractiveIndex"] = mat.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
	}

	return mat.Kind.String(), properties
}

// extractGeometryInfo describes a shape and its parameters
func (s *Server) extractGeometryInfo(shape geometry.Shape) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch geom := shape.(type) {
	case *geometry.Sphere:
		properties["center"] = vecArray(geom.Center)
		properties["radius"] = geom.Radius
		return "sphere", properties

	case *geometry.Plane:
		properties["point"] = vecArray(geom.Point)
		properties["normal"] = vecArray(geom.Normal)
		return "plane", properties

	default:
		return "unknown", properties
	}
}

// inspectPixel casts a ray through the center of pixel (x, y), with y counted from the top,
// and reports the first object hit
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) InspectResult {
	width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height
	u := (float64(pixelX) + 0.5) / float64(width)
	v := (float64(height-1-pixelY) + 0.5) / float64(height)

	// Fixed seed so lens sampling gives the same ray on every call
	ray := sceneObj.Camera.GetRay(u, v, rand.New(rand.NewSource(0)))

	hit, isHit := sceneObj.World.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		return InspectResult{Hit: false, Ray: ray}
	}

	// The world does not report which shape won, so find the one with the same hit distance
	for _, shape := range sceneObj.World.Shapes {
		if shapeHit, ok := shape.Hit(ray, 0.001, math.Inf(1)); ok && shapeHit.T == hit.T {
			return InspectResult{Hit: true, Ray: ray, HitRecord: hit, Shape: shape}
		}
	}

	return InspectResult{Hit: true, Ray: ray, HitRecord: hit}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	inspectReq := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, inspectReq); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Parse pixel coordinates
	width, height := sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height
	pixelX, err := parseIntParam(r.URL.Query(), "x", -1, 0, width-1)
	if err != nil || pixelX < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := parseIntParam(r.URL.Query(), "y", -1, 0, height-1)
	if err != nil || pixelY < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	result := inspectPixel(sceneObj, pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material)
	geometryType, geometryProps := s.extractGeometryInfo(result.Shape)

	response := InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vecArray(result.HitRecord.Point),
		Normal:       vecArray(result.HitRecord.Normal),
		Distance:     result.HitRecord.T * result.Ray.Direction.Length(),
		FrontFace:    result.Ray.Direction.Dot(result.HitRecord.Normal) < 0,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	}

	writeJSON(w, http.StatusOK, response)
}
