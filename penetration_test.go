package obstacle

// go test -v github.com/skypies/obstacle

import(
	"errors"
	"math"
	"testing"
)

type PenetrationTest struct {
	AGL, Surface, Terrain float64
	Distance, Penetration float64
	Penetrates            bool
}

var penetrationTests = []PenetrationTest{
	{  50, 1200, 1150,  50,    0, false}, // Exactly on the surface is not a penetration
	{ 200, 1200, 1150,  50,  150, true},
	{  10, 1200, 1150,  50,  -40, false},
	{ 100,  900, 1000, -100, 200, true},  // Surface below terrain
	{ 0.5, 1000.25, 1000,  0.25, 0.25, true},
}

func TestSurfacePenetration(t *testing.T) {
	for _,test := range penetrationTests {
		spi := NewSurfacePenetrationInfo(test.AGL, test.Surface, test.Terrain)
		if spi.DistanceFromSurface != test.Distance {
			t.Errorf("%v: distance expected %g, got %g", test, test.Distance, spi.DistanceFromSurface)
		}
		if spi.PenetrationOfSurface != test.Penetration {
			t.Errorf("%v: penetration expected %g, got %g", test, test.Penetration, spi.PenetrationOfSurface)
		}
		if spi.PenetratesSurface() != test.Penetrates {
			t.Errorf("%v: penetrates expected %v, got %v", test, test.Penetrates, spi.PenetratesSurface())
		}
		if spi.AGL != test.AGL || spi.SurfaceElevation != test.Surface || spi.TerrainElevation != test.Terrain {
			t.Errorf("%v: inputs not preserved: %s", test, spi)
		}
	}
}

func TestSurfacePenetrationFormulas(t *testing.T) {
	vals := []float64{-1000.5, -1, 0, 0.1, 1, 177.965854, 1150, 14505.25}
	for _,agl := range vals {
		for _,surface := range vals {
			for _,terrain := range vals {
				spi := NewSurfacePenetrationInfo(agl, surface, terrain)
				dist := surface - terrain
				if spi.DistanceFromSurface != dist {
					t.Fatalf("(%g,%g,%g) distance %g != %g", agl, surface, terrain, spi.DistanceFromSurface, dist)
				}
				if spi.PenetrationOfSurface != agl - dist {
					t.Fatalf("(%g,%g,%g) penetration %g != %g", agl, surface, terrain, spi.PenetrationOfSurface, agl-dist)
				}
				if spi.PenetratesSurface() != (agl - dist > 0) {
					t.Fatalf("(%g,%g,%g) penetrates mismatch", agl, surface, terrain)
				}
			}
		}
	}
}

func TestSurfacePenetrationFromText(t *testing.T) {
	spi,err := NewSurfacePenetrationInfoFromText(200, "177.965854", 100)
	if err != nil {
		t.Fatalf("numeric text: %v", err)
	}
	if spi.SurfaceElevation != 177.965854 {
		t.Errorf("surface expected 177.965854, got %g", spi.SurfaceElevation)
	}
	surface := 177.965854
	if spi.DistanceFromSurface != surface - 100 {
		t.Errorf("distance wrong: %g", spi.DistanceFromSurface)
	}

	for _,agl := range []float64{1, 200, 5000} {
		spi,err := NewSurfacePenetrationInfoFromText(agl, "NoData", 1150)
		if !errors.Is(err, ErrDataUnavailable) {
			t.Errorf("NoData: expected ErrDataUnavailable, got %v", err)
		}
		if spi != (SurfacePenetrationInfo{}) {
			t.Errorf("NoData: expected no derived fields, got %s", spi)
		}
	}

	for _,junk := range []string{"", "abc", "12ft", "NaN", "Inf", "nodata"} {
		if _,err := NewSurfacePenetrationInfoFromText(200, junk, 1150); !errors.Is(err, ErrBadElevation) {
			t.Errorf("%q: expected ErrBadElevation, got %v", junk, err)
		}
	}
}

func TestParseAGL(t *testing.T) {
	good := map[string]float64{"50":50, " 200 ":200, "12.5":12.5}
	for in,expected := range good {
		if agl,err := ParseAGL(in); err != nil || agl != expected {
			t.Errorf("%q: expected %g, got %g, %v", in, expected, agl, err)
		}
	}

	for _,in := range []string{"", "0", "-10", "abc", "NaN", "+Inf"} {
		if _,err := ParseAGL(in); !errors.Is(err, ErrUndefinedAGL) {
			t.Errorf("%q: expected ErrUndefinedAGL, got %v", in, err)
		}
	}

	if err := ValidateAGL(math.NaN()); err != ErrUndefinedAGL {
		t.Errorf("NaN agl was accepted")
	}
	if err := ValidateAGL(0); err != ErrUndefinedAGL {
		t.Errorf("zero agl was accepted")
	}
}

func TestPopup(t *testing.T) {
	spi := NewSurfacePenetrationInfo(200, 1200, 1150)
	expected := []PopupRow{
		{"Penetrates Surface", "Yes"},
		{"Distance from Surface", "50′"},
		{"Penetration of Surface", "150′"},
		{"AGL", "200′"},
		{"Surface Elev.", "1200′"},
		{"Terrain Elev.", "1150′"},
	}
	rows := spi.Rows()
	if len(rows) != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), len(rows))
	}
	for i := range rows {
		if rows[i] != expected[i] {
			t.Errorf("row %d: expected %v, got %v", i, expected[i], rows[i])
		}
	}
	if spi.BadgeClass() != PenetratingBadgeClass {
		t.Errorf("badge class: %q", spi.BadgeClass())
	}
	if spi.BadgeText() != "1200" {
		t.Errorf("badge text: %q", spi.BadgeText())
	}

	flat := NewSurfacePenetrationInfo(50, 1200, 1150)
	if flat.Rows()[0].Value != "No" || flat.BadgeClass() != BadgeClass {
		t.Errorf("non-penetrating popup wrong: %v %q", flat.Rows()[0], flat.BadgeClass())
	}
}
