package server

import "strings"

// Mode is the execution mode of the launcher.  It is resolved once at startup and never changes.
type Mode int

const (
	// Production binds all interfaces on the port supplied by the environment.
	Production Mode = iota

	// Local binds a fixed local address and decorates responses with permissive CORS headers.
	Local
)

func (m Mode) String() string {
	if m == Local {
		return "local"
	}

	return "production"
}

// ResolveMode examines the first argument for LocalMarker.  An empty argument list, or any first argument
// that does not contain the marker, resolves to Production.
func ResolveMode(arguments []string) Mode {
	if len(arguments) > 0 && strings.Contains(arguments[0], LocalMarker) {
		return Local
	}

	return Production
}
