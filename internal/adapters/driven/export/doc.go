// Package export implements the file output adapters: CSV writers for
// stargazer and email records, a CSV reader for input user lists, and
// the chat archive writer (participant CSV plus raw message JSON).
package export
