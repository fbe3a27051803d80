// Package epqs talks to the USGS Elevation Point Query Service, to find out the terrain
// elevation at a point.
package epqs // https://epqs.nationalmap.gov/v1/docs

import(
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/skypies/geo"

	"github.com/skypies/obstacle"
)

// The v1 service reports 'no data' with this magic value, rather than a string.
const kV1NoDataValue = -1000000.0

type Client struct {
	Client *http.Client
	URL    string
}

func (c *Client)Init() {
	if c.Client == nil {
		c.Client = &http.Client{}
	}
	if c.URL == "" {
		c.URL = "https://epqs.nationalmap.gov/v1/json"
	}
}

// {{{ Query

// Query is what the service says about a point. The legacy service looked like this:
//
// {"USGS_Elevation_Point_Query_Service": {
//    "Elevation_Query": {
//      "x": -123, "y": 45,
//      "Data_Source": "NED 1/3 arc-second",
//      "Elevation": 177.965854,
//      "Units": "Feet"
//    }
// }}
type Query struct {
	X          float64            `json:"x"`
	Y          float64            `json:"y"`
	DataSource string             `json:"Data_Source"`
	Elevation  obstacle.Elevation `json:"Elevation"`
	Units      string             `json:"Units"`
}

// The wire form of Query; Elevation is a pointer so that a missing value can be told apart
// from 0ft.
type legacyQuery struct {
	X          float64             `json:"x"`
	Y          float64             `json:"y"`
	DataSource string              `json:"Data_Source"`
	Elevation  *obstacle.Elevation `json:"Elevation"`
	Units      string              `json:"Units"`
}

type legacyResponse struct {
	Service *struct {
		Query *legacyQuery `json:"Elevation_Query"`
	} `json:"USGS_Elevation_Point_Query_Service"`
}

// The v1 service flattened things out:
// {"location":{"x":-123,"y":45,"spatialReference":{"wkid":4326}},"locationId":0,
//  "value":"177.965854","rasterId":1,"resolution":1}
type v1Response struct {
	Location *struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"location"`
	Value      *obstacle.Elevation `json:"value"`
	RasterId   int                 `json:"rasterId"`
	Resolution float64             `json:"resolution"`
}

func (q Query)Latlong() geo.Latlong {
	return geo.Latlong{Lat:q.Y, Long:q.X}
}

func (q Query)String() string {
	return fmt.Sprintf("(%.6f,%.6f) %s %s [%s]", q.Y, q.X, q.Elevation, q.Units, q.DataSource)
}

// }}}

// {{{ QueryURL

func (c Client)QueryURL(pos geo.Latlong) string {
	args := url.Values{}
	args.Set("x", strconv.FormatFloat(pos.Long, 'f', -1, 64))
	args.Set("y", strconv.FormatFloat(pos.Lat, 'f', -1, 64))
	args.Set("units", "Feet")
	args.Set("output", "json")
	args.Set("wkid", "4326")
	return c.URL + "?" + args.Encode()
}

// }}}
// {{{ Lookup

func (c Client)Lookup(ctx context.Context, pos geo.Latlong) (Query, error) {
	if c.Client == nil { c.Init() }

	req,err := http.NewRequestWithContext(ctx, "GET", c.QueryURL(pos), nil)
	if err != nil {
		return Query{}, fmt.Errorf("%w: epqs: %w", obstacle.ErrNetwork, err)
	}

	resp,err := c.Client.Do(req)
	if err != nil {
		return Query{}, fmt.Errorf("%w: epqs: %w", obstacle.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body,err := io.ReadAll(resp.Body)
	if err != nil {
		return Query{}, fmt.Errorf("%w: epqs read: %w", obstacle.ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Query{}, fmt.Errorf("%w: epqs: status %d: %.200s", obstacle.ErrNetwork, resp.StatusCode, body)
	}

	q,err := ParseResponse(body)
	if err != nil {
		return Query{}, err
	}

	// The legacy service echoes the point back; v1 sometimes doesn't.
	if q.X == 0 && q.Y == 0 {
		q.X, q.Y = pos.Long, pos.Lat
	}
	return q, nil
}

// }}}
// {{{ ParseResponse

func ParseResponse(body []byte) (Query, error) {
	legacy := legacyResponse{}
	if err := json.Unmarshal(body, &legacy); err != nil {
		return Query{}, fmt.Errorf("%w: epqs decode: %v", obstacle.ErrNetwork, err)
	}
	if legacy.Service != nil {
		if legacy.Service.Query == nil {
			return Query{}, fmt.Errorf("%w: epqs: response has no Elevation_Query", obstacle.ErrNetwork)
		}
		lq := legacy.Service.Query
		if lq.Elevation == nil {
			return Query{}, fmt.Errorf("%w: epqs: response has no Elevation", obstacle.ErrNetwork)
		}
		return Query{X:lq.X, Y:lq.Y, DataSource:lq.DataSource, Elevation:*lq.Elevation, Units:lq.Units}, nil
	}

	v1 := v1Response{}
	if err := json.Unmarshal(body, &v1); err != nil {
		return Query{}, fmt.Errorf("%w: epqs decode: %v", obstacle.ErrNetwork, err)
	}
	if v1.Location == nil {
		return Query{}, fmt.Errorf("%w: epqs: unrecognized response %.200s", obstacle.ErrNetwork, body)
	} else if v1.Value == nil {
		return Query{}, fmt.Errorf("%w: epqs: response has no value", obstacle.ErrNetwork)
	}

	q := Query{
		X: v1.Location.X,
		Y: v1.Location.Y,
		DataSource: fmt.Sprintf("3DEP raster %d (%gm)", v1.RasterId, v1.Resolution),
		Elevation: *v1.Value,
		Units: "Feet",
	}
	if !q.Elevation.NoData && q.Elevation.Value <= kV1NoDataValue {
		q.Elevation = obstacle.NoDataElevation()
	}
	return q, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
