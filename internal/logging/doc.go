// Package logging provides the structured logging interface shared by the
// numrt command, the HTTP server and the conformance runner. It abstracts the
// underlying implementation so components log the same way whether they are
// wired to zerolog or to a plain *log.Logger.
package logging
