// Package ffprobe reads the geometry and frame rate of a file's first video
// stream by shelling out to ffprobe.
//
// Key types:
//   - VideoInfo: width, height, and exact frame rate of the first video stream
//   - FrameRate: a rational frame rate with a truncated decimal rendering
//
// Primary entry point:
//   - Probe: executes ffprobe and reports whether usable video data was found
//
// A file without a video stream, a failing ffprobe, or unparseable output is
// an expected outcome and is reported as absent rather than as an error.
package ffprobe
