// Package services implements the driving port interfaces.
// Services contain the collection logic and orchestrate calls to
// driven ports (connectors, exporters, the run store).
//
// All collection is sequential with fixed inter-request delays.
package services
