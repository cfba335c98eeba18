// Package handler turns typed request handlers into http.HandlerFunc values.
//
// A HandlerFunc receives a Context and a request value already decoded by
// the route's Bind, and returns a Response. JSON writes a body verbatim with
// a status code and HTML renders a templ component. Errors go out as
// {"error": message} with an optional "details" field.
package handler
