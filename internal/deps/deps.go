// Package deps checks for the external executables mediasort shells out to
// and explains how to install the missing ones.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMissingDependencies is returned when a required executable is absent.
var ErrMissingDependencies = errors.New("required external tools are missing")

// Requirement names an executable and the OS package that ships it.
type Requirement struct {
	Name        string
	Command     string
	Package     string
	Description string
	Optional    bool
}

// Status is a Requirement after lookup on PATH.
type Status struct {
	Requirement
	Available bool
	Path      string // resolved executable when Available
	Detail    string // why it is unavailable
}

func lookup(req Requirement) Status {
	req.Command = strings.TrimSpace(req.Command)
	req.Package = strings.TrimSpace(req.Package)
	st := Status{Requirement: req}
	if req.Command == "" {
		st.Detail = "command not configured"
		return st
	}
	path, err := exec.LookPath(req.Command)
	if err != nil {
		st.Detail = fmt.Sprintf("binary %q not found", req.Command)
		return st
	}
	st.Available, st.Path = true, path
	return st
}

// CheckBinaries resolves every requirement, preserving order.
func CheckBinaries(requirements []Requirement) []Status {
	out := make([]Status, len(requirements))
	for i, req := range requirements {
		out[i] = lookup(req)
	}
	return out
}

// Missing filters statuses down to unavailable, non-optional entries.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, st := range statuses {
		if !st.Available && !st.Optional {
			out = append(out, st)
		}
	}
	return out
}

// Verify is CheckBinaries plus an error wrapping ErrMissingDependencies that
// names the absent commands.
func Verify(requirements []Requirement) ([]Status, error) {
	statuses := CheckBinaries(requirements)
	missing := Missing(statuses)
	if len(missing) == 0 {
		return statuses, nil
	}
	var names strings.Builder
	for i, st := range missing {
		if i > 0 {
			names.WriteString(", ")
		}
		names.WriteString(st.Command)
	}
	return statuses, fmt.Errorf("%w: %s", ErrMissingDependencies, names.String())
}
