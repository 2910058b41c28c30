// Package http implements the REST transport of the membership service.
//
// It exposes route wiring, request handlers, the server-rendered password
// reset pages and the middleware chain. Request tracing, access logging,
// compression, panic recovery, error reporting and bearer authentication
// are handled in this package before requests reach the service layer.
package http
