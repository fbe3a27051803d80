package fpdf

// go test -v github.com/skypies/obstacle/fpdf

import(
	"bytes"
	"testing"

	"github.com/skypies/geo"

	"github.com/skypies/obstacle"
)

func TestWriteMarkers(t *testing.T) {
	markers := []obstacle.Marker{
		{ID:"m1", Evaluation:obstacle.Evaluation{
			Pos: geo.Latlong{Lat:47.41, Long:-120.80},
			DataSource: "NED 1/3 arc-second",
			SurfacePenetrationInfo: obstacle.NewSurfacePenetrationInfo(200, 1200, 1150),
		}},
		{ID:"m2", Evaluation:obstacle.Evaluation{
			Pos: geo.Latlong{Lat:47.42, Long:-120.81},
			SurfacePenetrationInfo: obstacle.NewSurfacePenetrationInfo(50, 1200, 1150),
		}},
	}

	var buf bytes.Buffer
	if err := WriteMarkers(&buf, markers); err != nil {
		t.Fatalf("WriteMarkers: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Errorf("output doesn't look like a PDF: %.20q", buf.String())
	}

	buf.Reset()
	if err := WriteMarkers(&buf, nil); err != nil {
		t.Errorf("empty marker list: %v", err)
	}
}
