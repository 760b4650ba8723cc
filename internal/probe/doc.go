// Package probe implements a diagnostic WebSocket client.
//
// A probe dials a broadcast endpoint once, counts every message it receives
// and logs a short preview of the first few. It finishes when the
// observation window elapses or the server closes the connection. Connection
// errors are reported but never shorten the window.
package probe
