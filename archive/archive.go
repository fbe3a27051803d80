// Package archive publishes the marker set to Cloud Storage as gzipped newline-delimited
// JSON, and then asks BigQuery to load that file into a table.
package archive

import(
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/klauspost/compress/gzip"
	"google.golang.org/api/option"

	"github.com/skypies/obstacle"
	"github.com/skypies/obstacle/config"
	"github.com/skypies/obstacle/log"
)

// The BigQuery dataset may live in a different cloud project from the GCS folder. If so,
// the service account for the GCS project needs to be an editor on the BigQuery project,
// so it can submit load jobs; and the BigQuery project's service account needs to be able
// to read the GCS folder.
type Publisher struct {
	Project   string  // Owns the GCS folder
	Folder    string  // GCS bucket

	BigQueryProject string
	BigQueryDataset string
	BigQueryTable   string

	Options []option.ClientOption
	Log     *log.Logger
}

func NewPublisher(c config.Config, l *log.Logger) Publisher {
	p := Publisher{
		Project: c.GoogleCloudProject,
		Folder: c.GCSFolder,
		BigQueryProject: c.BigQueryProject,
		BigQueryDataset: c.BigQueryDataset,
		BigQueryTable: c.BigQueryTable,
		Log: l,
	}
	if c.CredentialsFile != "" {
		p.Options = append(p.Options, option.WithCredentialsFile(c.CredentialsFile))
	}
	return p
}

// {{{ MarkerRow

// MarkerRow is one line of the published file, flattened for BigQuery.
type MarkerRow struct {
	ID                   string    `json:"id"`
	Created              time.Time `json:"created"`
	Lat                  float64   `json:"lat"`
	Long                 float64   `json:"long"`
	ClickedLat           float64   `json:"clicked_lat"`
	ClickedLong          float64   `json:"clicked_long"`
	AGL                  float64   `json:"agl_ft"`
	SurfaceElevation     float64   `json:"surface_elevation_ft"`
	TerrainElevation     float64   `json:"terrain_elevation_ft"`
	DistanceFromSurface  float64   `json:"distance_from_surface_ft"`
	PenetrationOfSurface float64   `json:"penetration_of_surface_ft"`
	PenetratesSurface    bool      `json:"penetrates_surface"`
	DataSource           string    `json:"data_source"`
}

func NewMarkerRow(m obstacle.Marker) MarkerRow {
	return MarkerRow{
		ID: m.ID,
		Created: m.Created,
		Lat: m.Pos.Lat,
		Long: m.Pos.Long,
		ClickedLat: m.Clicked.Lat,
		ClickedLong: m.Clicked.Long,
		AGL: m.AGL,
		SurfaceElevation: m.SurfaceElevation,
		TerrainElevation: m.TerrainElevation,
		DistanceFromSurface: m.DistanceFromSurface,
		PenetrationOfSurface: m.PenetrationOfSurface,
		PenetratesSurface: m.PenetratesSurface(),
		DataSource: m.DataSource,
	}
}

// }}}

// {{{ Filename

func Filename(t time.Time) string {
	return "markers-" + t.UTC().Format("2006.01.02-150405") + ".json.gz"
}

// }}}
// {{{ WriteNDJSON

// Returns the number of records written.
func WriteNDJSON(w io.Writer, markers []obstacle.Marker) (int,error) {
	gz := gzip.NewWriter(w)
	encoder := json.NewEncoder(gz)

	n := 0
	for _,m := range markers {
		if err := encoder.Encode(NewMarkerRow(m)); err != nil {
			return n, err
		}
		n++
	}

	return n, gz.Close()
}

// }}}
// {{{ WriteGCSFile

// Returns number of records written (which is zero if the file already exists)
func (p Publisher)WriteGCSFile(ctx context.Context, filename string, markers []obstacle.Marker) (int,error) {
	client,err := storage.NewClient(ctx, p.Options...)
	if err != nil {
		return 0, fmt.Errorf("creating storage client: %v", err)
	}
	defer client.Close()

	obj := client.Bucket(p.Folder).Object(filename)
	if _,err := obj.Attrs(ctx); err == nil {
		return 0, nil
	} else if !errors.Is(err, storage.ErrObjectNotExist) {
		return 0, fmt.Errorf("GCS-Attrs %s|%s: %v", p.Folder, filename, err)
	}

	w := obj.NewWriter(ctx)
	w.ContentType = "application/json"

	n,err := WriteNDJSON(w, markers)
	if err != nil {
		w.Close()
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("GCS-Close %s|%s: %v", p.Folder, filename, err)
	}

	p.Log.Infof("GCS bigquery file 'gs://%s/%s' successfully written, %d rows", p.Folder, filename, n)
	return n, nil
}

// }}}
// {{{ SubmitLoadJob

func (p Publisher)SubmitLoadJob(ctx context.Context, filename string) error {
	client,err := bigquery.NewClient(ctx, p.BigQueryProject, p.Options...)
	if err != nil {
		return fmt.Errorf("Creating bigquery client: %v", err)
	}
	defer client.Close()

	gcsSrc := bigquery.NewGCSReference(fmt.Sprintf("gs://%s/%s", p.Folder, filename))
	gcsSrc.SourceFormat = bigquery.JSON
	gcsSrc.Compression = bigquery.Gzip
	gcsSrc.AutoDetect = true

	loader := client.Dataset(p.BigQueryDataset).Table(p.BigQueryTable).LoaderFrom(gcsSrc)
	loader.CreateDisposition = bigquery.CreateIfNeeded
	loader.WriteDisposition = bigquery.WriteAppend

	job,err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("Submission of load job: %v", err)
	}

	status,err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("Failure determining status: %v", err)
	} else if err := status.Err(); err != nil {
		detailedErrStr := ""
		for i,innerErr := range status.Errors {
			detailedErrStr += fmt.Sprintf(" [%2d] %v\n", i, innerErr)
		}
		p.Log.Errorf("BigQuery LoadJob error: %v\n--\n%s", err, detailedErrStr)
		return fmt.Errorf("Job error: %v\n--\n%s", err, detailedErrStr)
	}

	p.Log.Infof("BigQuery LoadJob done, state=%v", status.State)
	return nil
}

// }}}
// {{{ Publish

// Publish writes the markers to a fresh GCS file, and loads it into BigQuery. Returns the
// filename and the number of rows.
func (p Publisher)Publish(ctx context.Context, markers []obstacle.Marker, t time.Time) (string, int, error) {
	if p.Project == "" || p.Folder == "" {
		return "", 0, fmt.Errorf("publishing not configured (project=%q, folder=%q)", p.Project, p.Folder)
	}
	if len(markers) == 0 {
		return "", 0, nil
	}

	filename := Filename(t)
	n,err := p.WriteGCSFile(ctx, filename, markers)
	if err != nil {
		return filename, 0, err
	} else if n == 0 {
		return filename, 0, nil
	}

	if err := p.SubmitLoadJob(ctx, filename); err != nil {
		return filename, n, fmt.Errorf("submitLoadJob failed: %v", err)
	}
	return filename, n, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
