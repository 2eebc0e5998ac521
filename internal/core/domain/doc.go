// Package domain defines the core business entities for Gazer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Stargazer: A user who starred a repository
//   - EmailRecord: The result of resolving an email for a user
//   - ChatUser / ChatMessage: Participants and messages of a chat channel
//   - RepoRef: A parsed owner/name repository reference
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
