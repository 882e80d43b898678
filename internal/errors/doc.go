// Package errors provides the structured errors used across the engine.
//
// Every error carries a Code, a message and optional metadata. Wrapping
// preserves the code of the innermost structured error so callers can
// branch on the kind of failure without string matching:
//
//	if errors.IsNotFound(err) {
//	    // unknown character or snapshot
//	}
//
// Code usage by layer:
//
//   - board: InvalidArgument for malformed configuration (fatal at start-up)
//   - game orchestrator: NotFound for unknown characters, FailedPrecondition
//     for operations outside the current phase, OutOfRange for positions off
//     the board, DataLoss for snapshots that cannot be restored
//   - decision clients: Unavailable or DeadlineExceeded when a remote
//     provider cannot answer, DataLoss for payloads that do not decode
//   - repositories: NotFound for missing snapshots, Unavailable when the
//     store cannot be reached, DataLoss for stored snapshots that do not
//     decode
//
// Configuration structs validate with the builder:
//
//	vb := errors.NewValidationBuilder()
//	if c.Board == nil {
//	    vb.RequiredField("Board")
//	}
//	return vb.Build()
package errors
