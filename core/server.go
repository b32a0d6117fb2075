package core

import (
	"fmt"
	"strings"
)

// Server selects which backing catalog instance a call targets.
type Server string

const (
	ServerLocal   Server = "local"
	ServerGlobal  Server = "global"
	ServerPreCkan Server = "pre_ckan"
)

var knownServers = []Server{ServerLocal, ServerGlobal, ServerPreCkan}

func (s Server) String() string {
	return string(s)
}

// Valid reports whether s is one of the recognized selectors.
func (s Server) Valid() bool {
	for _, known := range knownServers {
		if s == known {
			return true
		}
	}
	return false
}

// Resolve returns s, or def when s is empty. Unknown values are rejected.
func (s Server) Resolve(def Server) (Server, error) {
	if s == "" {
		s = def
	}
	if !s.Valid() {
		names := make([]string, len(knownServers))
		for i, known := range knownServers {
			names[i] = fmt.Sprintf("%q", known)
		}
		return "", &ValidationError{
			Field:   "server",
			Message: fmt.Sprintf("unknown server %q, expected one of %s", string(s), strings.Join(names, ", ")),
		}
	}
	return s, nil
}
