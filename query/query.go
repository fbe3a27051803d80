// Package query evaluates an obstacle at a point, by asking the terrain and surface
// services about the point at the same time and combining their answers.
package query

import(
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/errgroup"

	"github.com/skypies/geo"

	"github.com/skypies/obstacle"
	"github.com/skypies/obstacle/config"
	"github.com/skypies/obstacle/epqs"
	"github.com/skypies/obstacle/imageserver"
	"github.com/skypies/obstacle/log"
)

// TerrainSource is satisfied by epqs.Client.
type TerrainSource interface {
	Lookup(ctx context.Context, pos geo.Latlong) (epqs.Query, error)
}

// SurfaceSource is satisfied by imageserver.Client.
type SurfaceSource interface {
	Identify(ctx context.Context, pos geo.Latlong) (imageserver.Pixel, error)
}

// What both services said about a point. It doesn't depend on the AGL, so is cacheable.
type pointResult struct {
	Terrain epqs.Query
	Surface imageserver.Pixel
}

type Evaluator struct {
	Terrain TerrainSource
	Surface SurfaceSource
	Timeout time.Duration
	Log     *log.Logger

	cache *expirable.LRU[string, pointResult]
}

// {{{ New, NewFromConfig

func New(terrain TerrainSource, surface SurfaceSource, timeout time.Duration, cacheSize int, cacheTTL time.Duration, l *log.Logger) *Evaluator {
	e := &Evaluator{
		Terrain: terrain,
		Surface: surface,
		Timeout: timeout,
		Log: l,
	}
	if cacheSize > 0 {
		e.cache = expirable.NewLRU[string, pointResult](cacheSize, nil, cacheTTL)
	}
	return e
}

func NewFromConfig(c config.Config, l *log.Logger) *Evaluator {
	terrain := &epqs.Client{URL: c.EPQSURL}
	terrain.Init()
	surface := &imageserver.Client{URL: c.ImageServerURL}
	surface.Init()

	return New(terrain, surface, c.Timeout, c.CacheSize, c.CacheTTL, l)
}

// }}}

func cacheKey(pos geo.Latlong) string {
	return fmt.Sprintf("%.7f,%.7f", pos.Lat, pos.Long)
}

// {{{ lookupPoint

// Both lookups run at once; the first to fail cancels the other, and its error is the one
// returned. There is no partial result.
func (e *Evaluator)lookupPoint(ctx context.Context, pos geo.Latlong) (pointResult, error) {
	if e.cache != nil {
		if res,ok := e.cache.Get(cacheKey(pos)); ok {
			e.Log.Debugf("cache hit for %s", cacheKey(pos))
			return res, nil
		}
	}

	res := pointResult{}
	eg,ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		q,err := e.Terrain.Lookup(ctx, pos)
		res.Terrain = q
		return err
	})
	eg.Go(func() error {
		p,err := e.Surface.Identify(ctx, pos)
		res.Surface = p
		return err
	})
	if err := eg.Wait(); err != nil {
		return pointResult{}, err
	}

	if e.cache != nil {
		e.cache.Add(cacheKey(pos), res)
	}
	return res, nil
}

// }}}
// {{{ Evaluate

// Evaluate checks the AGL before doing anything else; a bad AGL never reaches the network.
func (e *Evaluator)Evaluate(ctx context.Context, pos geo.Latlong, agl float64) (obstacle.Evaluation, error) {
	if err := obstacle.ValidateAGL(agl); err != nil {
		return obstacle.Evaluation{}, err
	}

	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx,cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	tStart := time.Now()
	res,err := e.lookupPoint(ctx, pos)
	if err != nil {
		e.Log.Warn("lookup failed", "pos", cacheKey(pos), "agl", agl, "err", err)
		return obstacle.Evaluation{}, err
	}

	terrain,err := res.Terrain.Elevation.Feet()
	if err != nil {
		e.Log.Warn("no terrain data", "pos", cacheKey(pos), "source", res.Terrain.DataSource)
		return obstacle.Evaluation{}, fmt.Errorf("terrain at %s: %w", cacheKey(pos), err)
	}

	spi,err := obstacle.NewSurfacePenetrationInfoFromText(agl, res.Surface.Value, terrain)
	if err != nil {
		e.Log.Warn("no surface data", "pos", cacheKey(pos), "value", res.Surface.Value, "err", err)
		return obstacle.Evaluation{}, fmt.Errorf("surface at %s: %w", cacheKey(pos), err)
	}

	ev := obstacle.Evaluation{
		Clicked: pos,
		Pos: res.Terrain.Latlong(),
		DataSource: res.Terrain.DataSource,
		Time: time.Now().UTC(),
		SurfacePenetrationInfo: spi,
	}
	if ev.Pos.IsNil() {
		ev.Pos = pos
	}

	e.Log.Info("evaluated", "pos", cacheKey(ev.Pos), "agl", agl,
		"penetration", spi.PenetrationOfSurface, "penetrates", spi.PenetratesSurface(),
		"took", time.Since(tStart).String())

	return ev, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
