// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - StargazerLister: Fetches one page of a repository's stargazers listing
//   - EmailSource: Probes one read endpoint for a user's email
//   - HistoryClient: Fetches one batch of channel message history
//   - RunStore: Persists per-target processed keys for resume
//   - StargazerExporter / EmailExporter / ChatExporter: Output writers
//   - ConfigStore: Application configuration
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or connector package
package driven
