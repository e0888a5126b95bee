// Package preflight holds the checks that must pass before a run touches
// the filesystem: the scan root must be an accessible directory and the
// external tools the configuration needs must be installed.
//
// The CLI runs these before taking the run lock. Any failure ends the run
// with nothing created.
package preflight
