package ui

import(
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/skypies/geo"

	"github.com/skypies/obstacle"
)

// {{{ writeJSON, writeJSONError

// Encodes before writing the header, so a value that can't be encoded is a 500, not a 200
// with an empty body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	b,err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("json: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(b, '\n'))
}

// Status codes follow the kind of failure: bad input is the caller's fault, missing data is
// nobody's fault, and everything else is upstream's fault.
func errorStatus(err error) int {
	// Timeouts come wrapped in ErrNetwork, so check them first.
	switch {
	case errors.Is(err, context.DeadlineExceeded): return http.StatusGatewayTimeout
	case errors.Is(err, obstacle.ErrUndefinedAGL): return http.StatusBadRequest
	case errors.Is(err, obstacle.ErrDataUnavailable): return http.StatusUnprocessableEntity
	case errors.Is(err, obstacle.ErrBadElevation): return http.StatusBadGateway
	case errors.Is(err, obstacle.ErrNetwork): return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeJSONError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), map[string]string{"error": err.Error()})
}

// }}}
// {{{ formValueCoord, formValuePos

// Unlike the widget helpers, junk is an error rather than a zero; a NaN would otherwise
// slip past every range check.
func formValueCoord(r *http.Request, name string) (float64, error) {
	s := strings.TrimSpace(r.FormValue(name))
	if s == "" {
		return 0, fmt.Errorf("need %s= arg", name)
	}
	f,err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s=%q is not a number", name, s)
	}
	return f, nil
}

func formValuePos(r *http.Request) (geo.Latlong, error) {
	lat,err := formValueCoord(r, "lat")
	if err != nil { return geo.Latlong{}, err }
	long,err := formValueCoord(r, "long")
	if err != nil { return geo.Latlong{}, err }

	if lat < -90 || lat > 90 || long < -180 || long > 180 {
		return geo.Latlong{}, fmt.Errorf("position (%f,%f) out of range", lat, long)
	}
	return geo.Latlong{Lat:lat, Long:long}, nil
}

// }}}

// {{{ MarkerJSON

type MarkerJSON struct {
	ID string `json:"id"`
	obstacle.EvaluationJSON
}

func markerToJSON(m obstacle.Marker) MarkerJSON {
	return MarkerJSON{ID:m.ID, EvaluationJSON:m.ForJSON()}
}

// }}}

// {{{ PenetrationHandler

// ?lat=47.41&long=-120.80&agl=200

func (a *App)PenetrationHandler(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	// AGL first, so that a bad one never triggers any lookups.
	agl,err := obstacle.ParseAGL(r.FormValue("agl"))
	if err != nil {
		writeJSONError(w, err)
		return
	}

	pos,err := formValuePos(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	ev,err := a.Evaluator.Evaluate(ctx, pos, agl)
	if err != nil {
		a.Log.Warn("penetration query failed", "lat", pos.Lat, "long", pos.Long, "agl", agl, "err", err)
		writeJSONError(w, err)
		return
	}

	m,_ := a.Markers.Add(ev)
	writeJSON(w, http.StatusOK, markerToJSON(m))
}

// }}}
// {{{ MarkersHandler

func (a *App)MarkersHandler(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	out := []MarkerJSON{}
	for _,m := range a.Markers.Markers() {
		out = append(out, markerToJSON(m))
	}
	writeJSON(w, http.StatusOK, out)
}

// }}}
// {{{ MarkerDeleteHandler

// ?id=m12

func (a *App)MarkerDeleteHandler(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	id := r.FormValue("id")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "need id= arg"})
		return
	}
	if !a.Markers.Remove(id) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no marker " + id})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
