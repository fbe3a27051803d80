package main

// obstacle -agl 200 47.41322, -120.80566
// obstacle -agl 200 -json 47.41322, -120.80566
// obstacle -agl 200 -pdf out.pdf 47.41322, -120.80566

import(
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	golog "log"
	"os"
	"strings"

	"github.com/skypies/geo"

	"github.com/skypies/obstacle"
	"github.com/skypies/obstacle/config"
	"github.com/skypies/obstacle/fpdf"
	"github.com/skypies/obstacle/log"
	"github.com/skypies/obstacle/query"
)

var(
	fAGL         string
	fJSON        bool
	fPDF         string
	fImageServer string
	fEPQS        string
	fVerbosity   int
)

func init() {
	flag.StringVar(&fAGL, "agl", "", "height of the obstacle above ground level, in feet")
	flag.BoolVar(&fJSON, "json", false, "output JSON instead of text")
	flag.StringVar(&fPDF, "pdf", "", "also write a PDF report to this file")
	flag.StringVar(&fImageServer, "imageserver", "", "ArcGIS ImageServer URL for the surfaces raster")
	flag.StringVar(&fEPQS, "epqs", "", "USGS elevation point query service URL")
	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")
	flag.Parse()
}

func main() {
	if len(flag.Args()) == 0 {
		golog.Fatal("usage: obstacle -agl 200 47.41322, -120.80566\n")
	}

	agl,err := obstacle.ParseAGL(fAGL)
	if err != nil {
		golog.Fatalf("%v (use -agl=<feet>)\n", err)
	}

	in := strings.Join(flag.Args(), " ")
	pos := geo.NewLatlong(in)
	if pos.IsNil() {
		golog.Fatalf("could not parse a position from %q\n", in)
	}

	cfg,err := config.FromEnv()
	if err != nil { golog.Fatal(err) }
	if fImageServer != "" { cfg.ImageServerURL = fImageServer }
	if fEPQS != "" { cfg.EPQSURL = fEPQS }

	var l *log.Logger
	if fVerbosity > 0 {
		level := "info"
		if fVerbosity > 1 { level = "debug" }
		l = log.New(level, "")
	}

	e := query.NewFromConfig(cfg, l)
	ev,err := e.Evaluate(context.Background(), pos, agl)
	if errors.Is(err, obstacle.ErrDataUnavailable) {
		golog.Fatalf("no data at (%.6f,%.6f): %v\n", pos.Lat, pos.Long, err)
	} else if err != nil {
		golog.Fatalf("lookup failed: %v\n", err)
	}

	if fJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(ev.ForJSON())
	} else {
		fmt.Printf(">>>> (%.7f, %.7f) agl=%g\n", ev.Pos.Lat, ev.Pos.Long, agl)
		for _,row := range ev.Rows() {
			fmt.Printf("  %-24s %s\n", row.Name, row.Value)
		}
		if ev.DataSource != "" {
			fmt.Printf("  %-24s %s\n", "Terrain source", ev.DataSource)
		}
	}

	if fPDF != "" {
		s := obstacle.NewMarkerSet()
		s.Add(ev)
		f,err := os.Create(fPDF)
		if err != nil { golog.Fatal(err) }
		if err := fpdf.WriteMarkers(f, s.Markers()); err != nil { golog.Fatal(err) }
		if err := f.Close(); err != nil { golog.Fatal(err) }
	}
}
