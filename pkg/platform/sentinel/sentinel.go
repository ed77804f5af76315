package sentinel

import "errors"

// Sentinel errors for ingestion facts. Extractors, sources and sinks return
// these (wrapped with context) so the pipeline can decide whether a failure is
// local to one input file or fatal to the whole run.
//
// File-local (the file is skipped, the run continues):
// - ErrInvalidPath: storage path does not follow <congress>/<chamber>/<session>/<year>_<rollcall>.json
// - ErrUnknownChamber: chamber segment is neither house nor senate
// - ErrMalformedDocument: JSON is malformed or does not match the chamber schema
// - ErrUndecodable: a polymorphic leaf matched none of the accepted shapes
// - ErrUnreadable: the file vanished or could not be read after discovery
//
// Run-fatal (the run aborts, relational work is rolled back):
// - ErrSinkWrite: the consolidated output could not be created or written
// - ErrInsert: a relational insertion failed inside the run transaction
// - ErrPublish: an event could not be delivered to the event sink
var (
	ErrInvalidPath       = errors.New("invalid path")
	ErrUnknownChamber    = errors.New("unknown chamber")
	ErrMalformedDocument = errors.New("malformed document")
	ErrUndecodable       = errors.New("undecodable value")
	ErrUnreadable        = errors.New("unreadable file")
	ErrSinkWrite         = errors.New("sink write failed")
	ErrInsert            = errors.New("insert failed")
	ErrPublish           = errors.New("publish failed")
)

// IsFileLocal reports whether err only invalidates the file that produced it.
func IsFileLocal(err error) bool {
	return errors.Is(err, ErrInvalidPath) ||
		errors.Is(err, ErrUnknownChamber) ||
		errors.Is(err, ErrMalformedDocument) ||
		errors.Is(err, ErrUndecodable) ||
		errors.Is(err, ErrUnreadable)
}

// Reason returns a short, stable label for err suitable for metric labels.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidPath):
		return "invalid_path"
	case errors.Is(err, ErrUnknownChamber):
		return "unknown_chamber"
	case errors.Is(err, ErrUndecodable):
		return "undecodable"
	case errors.Is(err, ErrMalformedDocument):
		return "malformed_document"
	case errors.Is(err, ErrUnreadable):
		return "unreadable"
	case errors.Is(err, ErrSinkWrite):
		return "sink_write"
	case errors.Is(err, ErrInsert):
		return "insert"
	case errors.Is(err, ErrPublish):
		return "publish"
	default:
		return "other"
	}
}
