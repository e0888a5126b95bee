// Package main hosts the mediasort CLI.
//
// mediasort sorts the loose files under one directory into sorted/ (video,
// by resolution and frame rate), media/ (images and audio), and documents/
// (everything else). The command resolves configuration, sets up logging,
// runs the dependency and directory checks, takes the per-root lock, and
// then hands the directory to the organizer.
package main
