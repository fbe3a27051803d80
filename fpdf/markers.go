// Provides routines to render obstacle evaluations as PDFs
package fpdf

import(
	"fmt"
	"io"
	"math"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/skypies/obstacle"
)

// https://godoc.org/github.com/jung-kurt/gofpdf

// {{{ var()

var(
	// Column widths (mm) for the table; landscape letter leaves ~260mm to play with
	ColumnWidths = []float64{10, 46, 22, 22, 22, 24, 26, 26, 60}
	ColumnNames = []string{"#", "Position", "AGL", "Surface", "Terrain", "Dist", "Penetration", "Penetrates", "Source"}

	RowHeight = 6.0

	PenetratingRGB = []int{0xF5, 0xC6, 0xC6}
	ClearRGB       = []int{0xFF, 0xFF, 0xFF}

	// The profile strip at the bottom of the page
	ProfileBoxHeight = 50.0
	TerrainRGB  = []int{0x8B, 0x5A, 0x2B}
	SurfaceRGB  = []int{0x20, 0x60, 0xD0}
	ObstacleRGB = []int{0xDA, 0x06, 0x00}
)

// }}}

// {{{ ftStr

// Core PDF fonts have no prime mark, so this page says 'ft'
func ftStr(f float64) string {
	return fmt.Sprintf("%.1fft", f)
}

// }}}
// {{{ DrawTitle

func DrawTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, title)
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 9)
}

// }}}
// {{{ DrawMarkerTable

func DrawMarkerTable(pdf *gofpdf.Fpdf, markers []obstacle.Marker) {
	pdf.SetFont("Arial", "B", 9)
	for i,name := range ColumnNames {
		pdf.CellFormat(ColumnWidths[i], RowHeight, name, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i,m := range markers {
		rgb := ClearRGB
		penetrates := "No"
		if m.PenetratesSurface() {
			rgb = PenetratingRGB
			penetrates = "Yes"
		}
		pdf.SetFillColor(rgb[0], rgb[1], rgb[2])

		vals := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.5f,%.5f", m.Pos.Lat, m.Pos.Long),
			ftStr(m.AGL),
			ftStr(m.SurfaceElevation),
			ftStr(m.TerrainElevation),
			ftStr(m.DistanceFromSurface),
			ftStr(m.PenetrationOfSurface),
			penetrates,
			m.DataSource,
		}
		for j,val := range vals {
			align := "R"
			if j == 1 || j >= 7 { align = "L" }
			pdf.CellFormat(ColumnWidths[j], RowHeight, val, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}
}

// }}}
// {{{ DrawProfiles

// Each marker gets a little vertical bar: ground up to terrain, the surface as a line, and
// the obstacle stacked on the terrain. Everything shares one vertical scale.
func DrawProfiles(pdf *gofpdf.Fpdf, markers []obstacle.Marker) {
	if len(markers) == 0 { return }

	lo,hi := math.Inf(1), math.Inf(-1)
	for _,m := range markers {
		lo = math.Min(lo, math.Min(m.TerrainElevation, m.SurfaceElevation))
		hi = math.Max(hi, math.Max(m.TerrainElevation+m.AGL, m.SurfaceElevation))
	}
	if hi <= lo { hi = lo + 1 }
	lo -= (hi-lo) * 0.1

	pageWidth,pageHeight := pdf.GetPageSize()
	left,_,right,bottom := pdf.GetMargins()
	baseY := pageHeight - bottom - 10
	width := (pageWidth - left - right) / float64(len(markers))
	if width > 20 { width = 20 }

	altToY := func(ft float64) float64 {
		return baseY - ProfileBoxHeight * (ft-lo) / (hi-lo)
	}

	for i,m := range markers {
		x := left + float64(i)*width

		pdf.SetFillColor(TerrainRGB[0], TerrainRGB[1], TerrainRGB[2])
		pdf.Rect(x+1, altToY(m.TerrainElevation), width/2-1, baseY-altToY(m.TerrainElevation), "F")

		pdf.SetFillColor(ObstacleRGB[0], ObstacleRGB[1], ObstacleRGB[2])
		top := altToY(m.TerrainElevation + m.AGL)
		pdf.Rect(x+width/4, top, width/4, altToY(m.TerrainElevation)-top, "F")

		pdf.SetDrawColor(SurfaceRGB[0], SurfaceRGB[1], SurfaceRGB[2])
		pdf.SetLineWidth(0.6)
		y := altToY(m.SurfaceElevation)
		pdf.Line(x, y, x+width, y)

		pdf.SetDrawColor(0, 0, 0)
		pdf.SetLineWidth(0.2)
		pdf.Text(x+1, baseY+4, fmt.Sprintf("%d", i+1))
	}
}

// }}}

// {{{ NewMarkerPdf

func NewMarkerPdf(markers []obstacle.Marker, tm time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.AddPage()
	DrawTitle(pdf, fmt.Sprintf("Surface penetration: %d point(s), %s", len(markers),
		tm.UTC().Format("2006-01-02 15:04 MST")))
	DrawMarkerTable(pdf, markers)
	DrawProfiles(pdf, markers)
	return pdf
}

// }}}
// {{{ WriteMarkers

func WriteMarkers(output io.Writer, markers []obstacle.Marker) error {
	pdf := NewMarkerPdf(markers, time.Now())
	return pdf.Output(output)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
