// Package httputil provides shared HTTP response utilities for handlers.
//
// Handlers should use these helpers instead of writing raw
// http.ResponseWriter calls, so JSON formatting, error envelopes, and
// logging stay consistent across all endpoints.
package httputil
