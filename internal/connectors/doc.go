// Package connectors groups the platform-specific clients. Each
// subpackage knows how to talk to one platform surface: the github
// package covers the REST API and the HTML listing pages, the discord
// package covers the channel message API.
package connectors
