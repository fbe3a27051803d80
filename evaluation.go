package obstacle

import(
	"fmt"
	"time"

	"github.com/skypies/geo"
)

// An Evaluation is the outcome of one click on the map: the point, the obstacle height, and
// what both remote services said about that point.
type Evaluation struct {
	Clicked     geo.Latlong   // Where the user clicked
	Pos         geo.Latlong   // Where the elevation service says it looked; markers go here
	DataSource  string        // e.g. "NED 1/3 arc-second", from the elevation service
	Time        time.Time
	SurfacePenetrationInfo
}

func (e Evaluation)String() string {
	return fmt.Sprintf("%s %s [%s]", e.Pos, e.SurfacePenetrationInfo, e.DataSource)
}

// EvaluationJSON is the wire form of an Evaluation, as handed to the map page.
type EvaluationJSON struct {
	Lat                  float64    `json:"lat"`
	Long                 float64    `json:"long"`
	AGL                  float64    `json:"agl"`
	SurfaceElevation     float64    `json:"surfaceElevation"`
	TerrainElevation     float64    `json:"terrainElevation"`
	DistanceFromSurface  float64    `json:"distanceFromSurface"`
	PenetrationOfSurface float64    `json:"penetrationOfSurface"`
	PenetratesSurface    bool       `json:"penetratesSurface"`
	DataSource           string     `json:"dataSource,omitempty"`
	Time                 time.Time  `json:"time"`
	Badge                Badge      `json:"badge"`
	Rows                 []PopupRow `json:"rows"`
}

type Badge struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

func (e Evaluation)ForJSON() EvaluationJSON {
	return EvaluationJSON{
		Lat: e.Pos.Lat,
		Long: e.Pos.Long,
		AGL: e.AGL,
		SurfaceElevation: e.SurfaceElevation,
		TerrainElevation: e.TerrainElevation,
		DistanceFromSurface: e.DistanceFromSurface,
		PenetrationOfSurface: e.PenetrationOfSurface,
		PenetratesSurface: e.PenetratesSurface(),
		DataSource: e.DataSource,
		Time: e.Time,
		Badge: Badge{Text:e.BadgeText(), Class:e.BadgeClass()},
		Rows: e.Rows(),
	}
}
