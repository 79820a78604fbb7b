// Package api defines the wire types of the gateway's HTTP surface:
// chat requests and responses, the health report, and the error
// envelope. Request types decode tolerantly so that shape problems
// (a message that is not an object, a non-numeric max_tokens) surface
// as named validation errors rather than generic JSON errors.
package api
