package query

// go test -v github.com/skypies/obstacle/query

import(
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skypies/geo"

	"github.com/skypies/obstacle"
	"github.com/skypies/obstacle/config"
	"github.com/skypies/obstacle/epqs"
	"github.com/skypies/obstacle/imageserver"
)

type fakeTerrain struct {
	elev  obstacle.Elevation
	err   error
	block bool
	calls int32
}

func (f *fakeTerrain)Lookup(ctx context.Context, pos geo.Latlong) (epqs.Query, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block {
		<-ctx.Done()
		return epqs.Query{}, ctx.Err()
	}
	if f.err != nil { return epqs.Query{}, f.err }
	return epqs.Query{X:pos.Long, Y:pos.Lat, DataSource:"fake", Elevation:f.elev, Units:"Feet"}, nil
}

type fakeSurface struct {
	value string
	err   error
	block bool
	calls int32
}

func (f *fakeSurface)Identify(ctx context.Context, pos geo.Latlong) (imageserver.Pixel, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block {
		<-ctx.Done()
		return imageserver.Pixel{}, ctx.Err()
	}
	if f.err != nil { return imageserver.Pixel{}, f.err }
	return imageserver.Pixel{Name:"Pixel", Value:f.value}, nil
}

var pos = geo.Latlong{Lat:47.41322033015946, Long:-120.80566406246835}

func TestEvaluate(t *testing.T) {
	tests := []struct{
		AGL        float64
		Penetration float64
		Penetrates bool
	}{
		{ 50,   0, false},
		{200, 150, true},
	}

	for _,test := range tests {
		terrain := &fakeTerrain{elev:obstacle.NewElevation(1150)}
		surface := &fakeSurface{value:"1200"}
		e := New(terrain, surface, time.Second, 0, 0, nil)

		ev,err := e.Evaluate(context.Background(), pos, test.AGL)
		if err != nil { t.Fatalf("agl %g: %v", test.AGL, err) }
		if ev.DistanceFromSurface != 50 || ev.PenetrationOfSurface != test.Penetration ||
			ev.PenetratesSurface() != test.Penetrates {
			t.Errorf("agl %g: got %s", test.AGL, ev)
		}
		if ev.Pos.Lat != pos.Lat || ev.Pos.Long != pos.Long || ev.DataSource != "fake" {
			t.Errorf("agl %g: pos/source wrong: %s", test.AGL, ev)
		}
	}
}

func TestEvaluateBadAGL(t *testing.T) {
	terrain := &fakeTerrain{elev:obstacle.NewElevation(1150)}
	surface := &fakeSurface{value:"1200"}
	e := New(terrain, surface, time.Second, 0, 0, nil)

	for _,agl := range []float64{0, -5} {
		if _,err := e.Evaluate(context.Background(), pos, agl); !errors.Is(err, obstacle.ErrUndefinedAGL) {
			t.Errorf("agl %g: expected ErrUndefinedAGL, got %v", agl, err)
		}
	}
	if terrain.calls != 0 || surface.calls != 0 {
		t.Errorf("bad AGL made network calls: %d, %d", terrain.calls, surface.calls)
	}
}

func TestEvaluateNoData(t *testing.T) {
	e := New(&fakeTerrain{elev:obstacle.NewElevation(1150)}, &fakeSurface{value:"NoData"}, time.Second, 0, 0, nil)
	if _,err := e.Evaluate(context.Background(), pos, 200); !errors.Is(err, obstacle.ErrDataUnavailable) {
		t.Errorf("surface NoData: expected ErrDataUnavailable, got %v", err)
	}

	e = New(&fakeTerrain{elev:obstacle.NoDataElevation()}, &fakeSurface{value:"1200"}, time.Second, 0, 0, nil)
	if _,err := e.Evaluate(context.Background(), pos, 200); !errors.Is(err, obstacle.ErrDataUnavailable) {
		t.Errorf("terrain NoData: expected ErrDataUnavailable, got %v", err)
	}

	e = New(&fakeTerrain{elev:obstacle.NewElevation(1150)}, &fakeSurface{value:"n/a"}, time.Second, 0, 0, nil)
	if _,err := e.Evaluate(context.Background(), pos, 200); !errors.Is(err, obstacle.ErrBadElevation) {
		t.Errorf("junk surface: expected ErrBadElevation, got %v", err)
	}
}

// One side failing must not wait for the other, which would otherwise hang forever.
func TestEvaluateFailFast(t *testing.T) {
	netErr := fmt.Errorf("%w: connection refused", obstacle.ErrNetwork)
	e := New(&fakeTerrain{block:true}, &fakeSurface{err:netErr}, time.Minute, 0, 0, nil)

	done := make(chan error, 1)
	go func() {
		_,err := e.Evaluate(context.Background(), pos, 200)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, obstacle.ErrNetwork) {
			t.Errorf("expected ErrNetwork, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Evaluate did not fail fast")
	}
}

func TestEvaluateTimeout(t *testing.T) {
	e := New(&fakeTerrain{block:true}, &fakeSurface{block:true}, 50*time.Millisecond, 0, 0, nil)
	if _,err := e.Evaluate(context.Background(), pos, 200); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestEvaluateCache(t *testing.T) {
	terrain := &fakeTerrain{elev:obstacle.NewElevation(1150)}
	surface := &fakeSurface{value:"1200"}
	e := New(terrain, surface, time.Second, 8, time.Hour, nil)

	for _,agl := range []float64{50, 200, 300} {
		if _,err := e.Evaluate(context.Background(), pos, agl); err != nil {
			t.Fatalf("agl %g: %v", agl, err)
		}
	}
	if terrain.calls != 1 || surface.calls != 1 {
		t.Errorf("expected one call each with the cache, got %d, %d", terrain.calls, surface.calls)
	}

	// Failures aren't cached
	failing := New(&fakeTerrain{err:obstacle.ErrNetwork}, surface, time.Second, 8, time.Hour, nil)
	failing.Evaluate(context.Background(), pos, 50)
	failing.Evaluate(context.Background(), pos, 50)
	if failing.cache.Len() != 0 {
		t.Errorf("failure was cached")
	}
}

func TestNewFromConfig(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/epqs", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"USGS_Elevation_Point_Query_Service":{"Elevation_Query":{"x":-120.8,"y":47.4,"Data_Source":"NED 1/3 arc-second","Elevation":1150,"Units":"Feet"}}}`))
	})
	mux.HandleFunc("/ImageServer/identify", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"objectId":0,"name":"Pixel","value":"1200","location":{"x":-120.8,"y":47.4,"spatialReference":{"wkid":4326}}}`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	c := config.Default()
	c.EPQSURL = ts.URL + "/epqs"
	c.ImageServerURL = ts.URL + "/ImageServer"

	e := NewFromConfig(c, nil)
	ev,err := e.Evaluate(context.Background(), geo.Latlong{Lat:47.4, Long:-120.8}, 200)
	if err != nil { t.Fatalf("Evaluate: %v", err) }
	if !ev.PenetratesSurface() || ev.PenetrationOfSurface != 150 {
		t.Errorf("got %s", ev)
	}
	if ev.DataSource != "NED 1/3 arc-second" {
		t.Errorf("data source %q", ev.DataSource)
	}
}
