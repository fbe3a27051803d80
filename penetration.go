package obstacle

import(
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SurfacePenetrationInfo describes how an obstacle of a given height above ground relates
// to a regulated surface at one point. All values are in feet. It is a value type; once
// built, the derived fields always agree with the inputs.
type SurfacePenetrationInfo struct {
	AGL               float64 // height of the obstacle above the terrain
	SurfaceElevation  float64 // elevation of the surface at the point
	TerrainElevation  float64 // ground elevation at the point

	DistanceFromSurface  float64 // SurfaceElevation - TerrainElevation
	PenetrationOfSurface float64 // AGL - DistanceFromSurface
}

// {{{ NewSurfacePenetrationInfo

func NewSurfacePenetrationInfo(agl, surface, terrain float64) SurfacePenetrationInfo {
	spi := SurfacePenetrationInfo{
		AGL: agl,
		SurfaceElevation: surface,
		TerrainElevation: terrain,
	}
	spi.DistanceFromSurface = surface - terrain
	spi.PenetrationOfSurface = agl - spi.DistanceFromSurface
	return spi
}

// }}}
// {{{ NewSurfacePenetrationInfoFromText

// The surface elevation from the image service is a pixel value, which arrives as text.
// "NoData" is terminal; anything else that doesn't parse as a finite number is rejected,
// rather than being allowed to poison the arithmetic with a NaN.
func NewSurfacePenetrationInfoFromText(agl float64, surface string, terrain float64) (SurfacePenetrationInfo, error) {
	surfaceFeet,err := ParseElevationText(surface)
	if err != nil {
		return SurfacePenetrationInfo{}, err
	}
	return NewSurfacePenetrationInfo(agl, surfaceFeet, terrain), nil
}

// }}}
// {{{ ParseElevationText

func ParseElevationText(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == NoDataSentinel {
		return 0, fmt.Errorf("%w", ErrDataUnavailable)
	}
	f,err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f,0) {
		return 0, fmt.Errorf("%w: %q", ErrBadElevation, s)
	}
	return f, nil
}

// }}}

// Strictly positive; an obstacle sitting exactly on the surface doesn't penetrate it.
func (spi SurfacePenetrationInfo)PenetratesSurface() bool {
	return spi.PenetrationOfSurface > 0
}

func (spi SurfacePenetrationInfo)String() string {
	return fmt.Sprintf("agl=%gft surface=%gft terrain=%gft dist=%gft penetration=%gft (penetrates:%v)",
		spi.AGL, spi.SurfaceElevation, spi.TerrainElevation, spi.DistanceFromSurface,
		spi.PenetrationOfSurface, spi.PenetratesSurface())
}

// {{{ ValidateAGL, ParseAGL

func ValidateAGL(agl float64) error {
	if math.IsNaN(agl) || math.IsInf(agl,0) || agl <= 0 {
		return ErrUndefinedAGL
	}
	return nil
}

// ParseAGL reads the contents of an AGL input box. Empty, non-numeric, and non-positive
// values all come back as ErrUndefinedAGL.
func ParseAGL(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrUndefinedAGL
	}
	agl,err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrUndefinedAGL
	}
	if err := ValidateAGL(agl); err != nil {
		return 0, err
	}
	return agl, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
