// Package config holds the knobs for the obstacle service. Defaults are overlaid by
// environment variables; the binaries then let flags override those.
package config

import(
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/skypies/geo"
)

var(
	// The statewide airport surfaces raster the map overlays, and identify queries.
	DefaultImageServerURL = "http://hqolymgis99t/arcgis/rest/services/Airport/Statewide_40ft_Int/ImageServer"
	DefaultEPQSURL        = "https://epqs.nationalmap.gov/v1/json"

	DefaultMapCenter = geo.Latlong{Lat:47.41322033015946, Long:-120.80566406246835}
	DefaultMapZoom   = 7
	DefaultMapMaxZoom = 18
)

type Config struct {
	Port            string

	ImageServerURL  string
	EPQSURL         string
	Timeout         time.Duration   // For the pair of lookups behind one click
	CacheSize       int             // Points; zero disables the cache
	CacheTTL        time.Duration

	MarkerMaxAge    time.Duration   // Markers older than this get aged out of the set

	LogDir          string          // Empty means log to stderr
	LogLevel        string

	// Publishing of markers to Cloud Storage and BigQuery
	GoogleCloudProject string
	CredentialsFile    string
	GCSFolder          string
	BigQueryProject    string
	BigQueryDataset    string
	BigQueryTable      string
}

func Default() Config {
	return Config{
		Port: "8080",
		ImageServerURL: DefaultImageServerURL,
		EPQSURL: DefaultEPQSURL,
		Timeout: 30 * time.Second,
		CacheSize: 1024,
		CacheTTL: 24 * time.Hour,
		MarkerMaxAge: 24 * time.Hour,
		LogLevel: "info",
		GCSFolder: "obstacle-markers",
		BigQueryDataset: "public",
		BigQueryTable: "markers",
	}
}

// {{{ FromEnv

// FromEnv returns the defaults overlaid with whatever is set in the environment.
func FromEnv() (Config, error) {
	return fromLookup(os.LookupEnv)
}

func fromLookup(lookup func(string) (string,bool)) (Config, error) {
	c := Default()

	str := func(name string, dst *string) {
		if v,ok := lookup(name); ok && v != "" { *dst = v }
	}
	str("PORT", &c.Port)
	str("OBSTACLE_IMAGESERVER_URL", &c.ImageServerURL)
	str("OBSTACLE_EPQS_URL", &c.EPQSURL)
	str("OBSTACLE_LOG_DIR", &c.LogDir)
	str("OBSTACLE_LOG_LEVEL", &c.LogLevel)
	str("GOOGLE_CLOUD_PROJECT", &c.GoogleCloudProject)
	str("GOOGLE_APPLICATION_CREDENTIALS", &c.CredentialsFile)
	str("OBSTACLE_GCS_FOLDER", &c.GCSFolder)
	str("OBSTACLE_BQ_PROJECT", &c.BigQueryProject)
	str("OBSTACLE_BQ_DATASET", &c.BigQueryDataset)
	str("OBSTACLE_BQ_TABLE", &c.BigQueryTable)

	for name,dst := range map[string]*time.Duration{
		"OBSTACLE_TIMEOUT": &c.Timeout,
		"OBSTACLE_CACHE_TTL": &c.CacheTTL,
		"OBSTACLE_MARKER_MAX_AGE": &c.MarkerMaxAge,
	} {
		if v,ok := lookup(name); ok && v != "" {
			d,err := time.ParseDuration(v)
			if err != nil { return c, fmt.Errorf("%s: %v", name, err) }
			*dst = d
		}
	}

	if v,ok := lookup("OBSTACLE_CACHE_SIZE"); ok && v != "" {
		n,err := strconv.Atoi(v)
		if err != nil { return c, fmt.Errorf("OBSTACLE_CACHE_SIZE: %v", err) }
		c.CacheSize = n
	}

	if c.BigQueryProject == "" { c.BigQueryProject = c.GoogleCloudProject }

	return c, c.Validate()
}

// }}}

func (c Config)Validate() error {
	if c.ImageServerURL == "" { return fmt.Errorf("config: no image server URL") }
	if c.EPQSURL == "" { return fmt.Errorf("config: no elevation service URL") }
	if c.Timeout < 0 { return fmt.Errorf("config: negative timeout %s", c.Timeout) }
	if c.CacheSize < 0 { return fmt.Errorf("config: negative cache size %d", c.CacheSize) }
	return nil
}

// CanPublish is true when there is enough config to write markers out to Cloud Storage.
func (c Config)CanPublish() bool {
	return c.GoogleCloudProject != "" && c.GCSFolder != ""
}
