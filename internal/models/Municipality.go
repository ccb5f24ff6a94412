// internal/models/municipality.go
package models

import (
	"encoding/json"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// Region identifies the river basin a municipality belongs to.
type Region string

const (
	RegionSolimoes Region = "Rio Solimões"
	RegionJapura   Region = "Rio Japurá"
	RegionJurua    Region = "Rio Juruá"
)

// Municipality is static reference data: loaded once, never mutated.
type Municipality struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Region Region  `json:"region"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// Point returns the municipality location as a geometry (lng/lat, SRID 4326).
func (m Municipality) Point() *geom.Point {
	return geom.NewPointFlat(geom.XY, []float64{m.Lng, m.Lat})
}

// AmazonasMunicipalities is the service area covered by the field teams.
var AmazonasMunicipalities = []Municipality{
	{ID: "m1", Name: "Tabatinga", Region: RegionSolimoes, Lat: -4.23, Lng: -69.93},
	{ID: "m2", Name: "Benjamin Constant", Region: RegionSolimoes, Lat: -4.38, Lng: -70.03},
	{ID: "m3", Name: "Coari", Region: RegionSolimoes, Lat: -4.08, Lng: -63.14},
	{ID: "m5", Name: "Tefé", Region: RegionSolimoes, Lat: -3.35, Lng: -64.71},
	{ID: "m6", Name: "Japurá", Region: RegionJapura, Lat: -1.82, Lng: -66.93},
	{ID: "m7", Name: "Maraã", Region: RegionJapura, Lat: -1.83, Lng: -65.57},
	{ID: "m8", Name: "Eirunepé", Region: RegionJurua, Lat: -6.66, Lng: -69.87},
	{ID: "m9", Name: "Itamarati", Region: RegionJurua, Lat: -6.73, Lng: -69.21},
	{ID: "m10", Name: "Carauari", Region: RegionJurua, Lat: -4.88, Lng: -66.89},
}

// FindMunicipality resolves an id against a municipality set.
// The second return reports whether the id was found.
func FindMunicipality(municipalities []Municipality, id string) (Municipality, bool) {
	for _, m := range municipalities {
		if m.ID == id {
			return m, true
		}
	}
	return Municipality{}, false
}

// MunicipalitiesGeoJSON renders the municipality set as a GeoJSON
// FeatureCollection for the map component.
func MunicipalitiesGeoJSON(municipalities []Municipality) ([]byte, error) {
	fc := &geojson.FeatureCollection{}
	for _, m := range municipalities {
		fc.Features = append(fc.Features, &geojson.Feature{
			ID:       m.ID,
			Geometry: m.Point(),
			Properties: map[string]interface{}{
				"name":   m.Name,
				"region": string(m.Region),
			},
		})
	}
	return json.Marshal(fc)
}
