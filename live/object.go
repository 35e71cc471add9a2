// Package live resolves compact object paths like "t0/d0/pC1/c0/d0"
// against a host object model. The host itself (Ableton Live's tracks,
// devices, chains and drum pads) is consumed only through the minimal
// Object/Client capability below; the real binding lives in the plugin
// host, and tests use the in-memory graph in livetest.
package live

// Object is a handle onto one node of the host object model. Get, Set and
// Call are synchronous in-process calls into the host API.
type Object interface {
	// Get reads a property. Child collections ("tracks", "devices",
	// "chains", "return_chains", "drum_pads") come back as []Object;
	// singular children ("master_track") as Object; scalars as their
	// native type.
	Get(property string) (any, error)
	Set(property string, value any) error
	Call(function string, args ...any) (any, error)
	// Exists reports whether the handle points at a live object.
	Exists() bool
	// Path is the host API path, e.g. "live_set tracks 0 devices 0".
	Path() string
	ID() string
}

// Client constructs object handles. Both constructors always return a
// handle; a dangling one answers false from Exists.
type Client interface {
	FromPath(path string) Object
	FromID(id string) Object
}
