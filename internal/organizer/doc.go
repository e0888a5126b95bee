// Package organizer sorts every loose file under a root into the output
// tree.
//
// A run walks the root once, then handles each file in order: classify,
// resolve the destination, create it, and hand the file to the transfer
// engine. Per-file problems are logged and counted but never stop the run.
// Cancellation is only observed between files so a copy, its verification,
// and the source removal always complete together.
package organizer
