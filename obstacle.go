// This package contains the types for evaluating obstacles against airport surfaces. No
// network or cloud imports; the remote lookups live in epqs/, imageserver/ and query/.
package obstacle

import "errors"

const(
	// The textual sentinel both remote services use for "no data at this point".
	NoDataSentinel = "NoData"
)

var(
	// A missing, non-numeric or non-positive AGL. Callers should reject input with this
	// before going anywhere near the network.
	ErrUndefinedAGL = errors.New("Undefined AGL")

	// The surface (or terrain) has no data at the requested point.
	ErrDataUnavailable = errors.New("surface elevation has no data")

	// An elevation arrived as text that was neither numeric nor the NoData sentinel.
	ErrBadElevation = errors.New("elevation is not numeric")

	// Any failure talking to a remote service: transport, non-2xx, bad JSON, or an error
	// payload from the service itself.
	ErrNetwork = errors.New("remote lookup failed")
)
