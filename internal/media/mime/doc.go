// Package mime detects the MIME type of a file's content.
//
// Two detectors satisfy the Detector interface: FileCommand shells out to
// `file --brief --mime-type`, and Sniffer inspects content in-process with
// github.com/gabriel-vasile/mimetype. Results are normalized to a bare,
// lower-case type/subtype with parameters removed.
package mime
