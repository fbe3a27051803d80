package obstacle

import(
	"strconv"
)

const(
	BadgeClass            = "elevation-div-icon"
	PenetratingBadgeClass = "elevation-div-icon penetrates-surface"
	kFeetMark             = "′"
)

type PopupRow struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func feet(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) + kFeetMark }

// Rows is the content of a marker's popup, in display order.
func (spi SurfacePenetrationInfo)Rows() []PopupRow {
	penetrates := "No"
	if spi.PenetratesSurface() { penetrates = "Yes" }

	return []PopupRow{
		{"Penetrates Surface", penetrates},
		{"Distance from Surface", feet(spi.DistanceFromSurface)},
		{"Penetration of Surface", feet(spi.PenetrationOfSurface)},
		{"AGL", feet(spi.AGL)},
		{"Surface Elev.", feet(spi.SurfaceElevation)},
		{"Terrain Elev.", feet(spi.TerrainElevation)},
	}
}

// The marker badge shows the surface elevation, and is styled differently when penetrating.
func (spi SurfacePenetrationInfo)BadgeText() string {
	return strconv.FormatFloat(spi.SurfaceElevation, 'f', -1, 64)
}

func (spi SurfacePenetrationInfo)BadgeClass() string {
	if spi.PenetratesSurface() { return PenetratingBadgeClass }
	return BadgeClass
}
