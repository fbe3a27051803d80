package obstacle

import(
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Elevation is a value from a remote elevation service, which may be a number (feet), or
// the NoData sentinel. Services disagree on whether numbers come back as JSON numbers or as
// strings, so both are accepted.
type Elevation struct {
	Value  float64
	NoData bool
}

func NewElevation(f float64) Elevation { return Elevation{Value:f} }
func NoDataElevation() Elevation { return Elevation{NoData:true} }

func (e Elevation)String() string {
	if e.NoData { return NoDataSentinel }
	return strconv.FormatFloat(e.Value, 'f', -1, 64)
}

// Feet returns the numeric value, or ErrDataUnavailable.
func (e Elevation)Feet() (float64, error) {
	if e.NoData {
		return 0, fmt.Errorf("%w", ErrDataUnavailable)
	}
	return e.Value, nil
}

// {{{ UnmarshalJSON, MarshalJSON

func (e *Elevation)UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*e = NoDataElevation()
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil { return err }
		f,err := ParseElevationText(s)
		if err == nil {
			*e = NewElevation(f)
			return nil
		} else if s == NoDataSentinel {
			*e = NoDataElevation()
			return nil
		}
		return err
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("%w: %s", ErrBadElevation, string(b))
	}
	*e = NewElevation(f)
	return nil
}

func (e Elevation)MarshalJSON() ([]byte, error) {
	if e.NoData {
		return json.Marshal(NoDataSentinel)
	}
	return json.Marshal(e.Value)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
