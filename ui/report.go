package ui

import(
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/skypies/obstacle/fpdf"
)

// {{{ PDFHandler

func (a *App)PDFHandler(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	if err := fpdf.WriteMarkers(w, a.Markers.Markers()); err != nil {
		a.Log.Errorf("pdf: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// }}}
// {{{ PublishHandler

// /backend/publish-markers
// Writes the current marker set into Cloud Storage, and submits a BigQuery load job for it.

func (a *App)PublishHandler(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	if a.Publisher == nil {
		http.Error(w, "publishing is not configured", http.StatusServiceUnavailable)
		return
	}

	tStart := time.Now()
	filename,n,err := a.Publisher.Publish(ctx, a.Markers.Markers(), tStart)
	if err != nil {
		a.Log.Errorf("publish %s: %v", filename, err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(fmt.Sprintf("OK!\n%d markers written to %s/%s and job sent - took %s\n",
		n, a.Config.GCSFolder, filename, time.Since(tStart))))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
