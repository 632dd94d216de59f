// Package domain defines the core entities of the annotation workflow.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Mention: an extracted reference awaiting disambiguation
//   - Candidate: a scored authority record offered for a mention
//   - Annotation: the decision recorded for a mention
//   - Page: one window of a server-side listing
//   - SessionState: the state of an annotation screen
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
