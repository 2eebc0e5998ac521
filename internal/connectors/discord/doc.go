// Package discord implements the chat history connector against the
// Discord v9 REST API. It exposes a single Messages operation used by
// the chat archiver service; pagination cursors (before/after/around)
// are passed through as query parameters and batches come back
// newest-first, exactly as the API delivers them.
package discord
