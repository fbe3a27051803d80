package ui

import(
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/skypies/geo"
	hw "github.com/skypies/util/handlerware"

	"github.com/skypies/obstacle"
	"github.com/skypies/obstacle/config"
	"github.com/skypies/obstacle/log"
)

// Evaluator is satisfied by *query.Evaluator.
type Evaluator interface {
	Evaluate(ctx context.Context, pos geo.Latlong, agl float64) (obstacle.Evaluation, error)
}

// Publisher is satisfied by archive.Publisher.
type Publisher interface {
	Publish(ctx context.Context, markers []obstacle.Marker, t time.Time) (string, int, error)
}

// App is everything the handlers share. It gets built once, in main, and its methods are
// the handlers; nothing lives in package globals.
type App struct {
	Config    config.Config
	Evaluator Evaluator
	Markers   *obstacle.MarkerSet
	Publisher Publisher          // nil if publishing isn't configured
	Templates *template.Template
	Log       *log.Logger
}

func NewApp(c config.Config, e Evaluator, p Publisher, tmpl *template.Template, l *log.Logger) *App {
	return &App{
		Config: c,
		Evaluator: e,
		Markers: obstacle.NewMarkerSet(),
		Publisher: p,
		Templates: tmpl,
		Log: l,
	}
}

// RequestTimeout bounds every request, on top of whatever the evaluator does.
const RequestTimeout = 55 * time.Second

// {{{ WithCtx, WithAgeOut

// WithCtx builds the base context via handlerware, then gives the handler a deadline that
// is cancelled as soon as the handler returns.
func (a *App)WithCtx(ch hw.ContextHandler) hw.BaseHandler {
	return hw.WithCtx(func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		ctx,cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		ch(ctx, w, r)
	})
}

// WithAgeOut drops stale markers before the handler sees the set.
func (a *App)WithAgeOut(ch hw.ContextHandler) hw.ContextHandler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		if a.Config.MarkerMaxAge > 0 {
			if n := a.Markers.AgeOut(a.Config.MarkerMaxAge); n > 0 {
				a.Log.Infof("aged out %d markers", n)
			}
		}
		ch(ctx, w, r)
	}
}

// }}}

// {{{ Register

// Register wires up all the routes.
func (a *App)Register(mux *http.ServeMux) {
	// ui/map.go
	mux.HandleFunc("/", a.WithCtx(a.MapHandler))
	mux.HandleFunc("/map", a.WithCtx(a.MapHandler))

	// ui/api.go
	mux.HandleFunc("/api/penetration", a.WithCtx(a.WithAgeOut(a.PenetrationHandler)))
	mux.HandleFunc("/api/markers", a.WithCtx(a.WithAgeOut(a.MarkersHandler)))
	mux.HandleFunc("/api/markers/delete", a.WithCtx(a.MarkerDeleteHandler))

	// ui/report.go
	mux.HandleFunc("/penetration/pdf", a.WithCtx(a.WithAgeOut(a.PDFHandler)))
	mux.HandleFunc("/backend/publish-markers", a.WithCtx(a.WithAgeOut(a.PublishHandler)))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
