// Package imageserver queries an ArcGIS ImageServer for the pixel value at a point. For the
// airport surfaces raster, the pixel value is the elevation of the surface, in feet.
package imageserver

import(
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/skypies/geo"

	"github.com/skypies/obstacle"
)

type Client struct {
	Client *http.Client
	URL    string // The ImageServer root, e.g. https://host/arcgis/rest/services/Foo/ImageServer
}

func (c *Client)Init() {
	if c.Client == nil {
		c.Client = &http.Client{}
	}
}

// {{{ Pixel

// {"objectId":0,"name":"Pixel","value":"1234.5",
//  "location":{"x":-120.8,"y":47.4,"spatialReference":{"wkid":4326}},
//  "properties":null,"catalogItems":null,"catalogItemVisibilities":[]}
type Pixel struct {
	ObjectID   int                    `json:"objectId"`
	Name       string                 `json:"name"`
	Value      string                 `json:"value"`
	Location   Location               `json:"location"`
	Properties map[string]interface{} `json:"properties"`
}

type Location struct {
	X                float64 `json:"x"`
	Y                float64 `json:"y"`
	SpatialReference struct {
		WKID int `json:"wkid"`
	} `json:"spatialReference"`
}

type serviceError struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

type identifyResponse struct {
	Pixel
	Error *serviceError `json:"error"`
}

func (p Pixel)String() string {
	return fmt.Sprintf("%s[%d]=%q @(%.6f,%.6f)", p.Name, p.ObjectID, p.Value, p.Location.Y, p.Location.X)
}

// Feet parses the pixel value; "NoData" yields ErrDataUnavailable.
func (p Pixel)Feet() (float64, error) {
	return obstacle.ParseElevationText(p.Value)
}

// }}}

// {{{ IdentifyURL

func (c Client)IdentifyURL(pos geo.Latlong) string {
	geom := fmt.Sprintf(`{"x":%v,"y":%v,"spatialReference":{"wkid":4326}}`, pos.Long, pos.Lat)

	args := url.Values{}
	args.Set("geometry", geom)
	args.Set("geometryType", "esriGeometryPoint")
	args.Set("returnGeometry", "false")
	args.Set("returnCatalogItems", "false")
	args.Set("f", "json")

	return strings.TrimSuffix(c.URL, "/") + "/identify?" + args.Encode()
}

// }}}
// {{{ Identify

func (c Client)Identify(ctx context.Context, pos geo.Latlong) (Pixel, error) {
	if c.Client == nil { c.Init() }

	req,err := http.NewRequestWithContext(ctx, "GET", c.IdentifyURL(pos), nil)
	if err != nil {
		return Pixel{}, fmt.Errorf("%w: identify: %w", obstacle.ErrNetwork, err)
	}

	resp,err := c.Client.Do(req)
	if err != nil {
		return Pixel{}, fmt.Errorf("%w: identify: %w", obstacle.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body,err := io.ReadAll(resp.Body)
	if err != nil {
		return Pixel{}, fmt.Errorf("%w: identify read: %w", obstacle.ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Pixel{}, fmt.Errorf("%w: identify: status %d: %.200s", obstacle.ErrNetwork, resp.StatusCode, body)
	}

	return ParseResponse(body)
}

// }}}
// {{{ ParseResponse

// ArcGIS reports most failures with a 200 and an error object in the body.
func ParseResponse(body []byte) (Pixel, error) {
	r := identifyResponse{}
	if err := json.Unmarshal(body, &r); err != nil {
		return Pixel{}, fmt.Errorf("%w: identify decode: %v", obstacle.ErrNetwork, err)
	}
	if r.Error != nil {
		return Pixel{}, fmt.Errorf("%w: identify: [%d] %s %v", obstacle.ErrNetwork, r.Error.Code,
			r.Error.Message, r.Error.Details)
	}
	if r.Pixel.Value == "" {
		return Pixel{}, fmt.Errorf("%w: identify: response has no pixel value", obstacle.ErrNetwork)
	}
	return r.Pixel, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
