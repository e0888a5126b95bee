// Package classify assigns a file to one coarse category using its detected
// MIME type, falling back to the file name's extension only when the MIME
// type is not one the sorter recognizes. Video files are additionally probed
// for resolution and frame rate.
package classify
