package ui

import(
	"context"
	"net/http"

	"github.com/skypies/geo"
	"github.com/skypies/util/widget"

	"github.com/skypies/obstacle/config"
)

// {{{ getMapParams

//  &zoom=10
//  &center_lat=47&center_long=-120 (alternate center point)
//  &agl=200                        (prefill the AGL box)

func (a *App)getMapParams(r *http.Request, params map[string]interface{}) {
	zoom := int(widget.FormValueInt64(r, "zoom"))
	if zoom < 1 || zoom > config.DefaultMapMaxZoom { zoom = config.DefaultMapZoom }

	center := config.DefaultMapCenter
	lat,errLat := formValueCoord(r, "center_lat")
	long,errLong := formValueCoord(r, "center_long")
	if errLat == nil && errLong == nil {
		center = geo.Latlong{Lat:lat, Long:long}
	}

	params["Center"] = center
	params["Zoom"] = zoom
	params["MaxZoom"] = config.DefaultMapMaxZoom
	params["AGL"] = r.FormValue("agl")
	params["BaseLayers"] = TileLayersJSVar(BaseLayers())
	params["ImageServerURL"] = a.Config.ImageServerURL
	params["OverlayName"] = "Airport Surfaces"
	params["OverlayOpacity"] = 0.5
	params["Markers"] = a.Markers.Markers()
}

// }}}

// {{{ MapHandler

func (a *App)MapHandler(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/map" {
		http.NotFound(w, r)
		return
	}

	params := map[string]interface{}{}
	a.getMapParams(r, params)

	if err := a.Templates.ExecuteTemplate(w, "map", params); err != nil {
		a.Log.Errorf("map template: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
