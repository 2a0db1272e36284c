// Package weather provides the HTTP client for the Visual Crossing timeline API.
//
// # Overview
//
// The kiosk needs four values from each response: the current condition icon
// code, the current temperature, and today's high and low. Client.Fetch
// performs exactly one GET per call and validates those fields before
// returning, so callers never index into a half-filled document.
//
// # Request
//
//	GET <base_url>/<location>?contentType=json&include=<include>&key=<api_key>&options=beta
//
// The location is path-escaped ("New York" becomes "New%20York"). Every
// request carries a fresh X-Request-ID which also appears in the logs.
//
// # Errors
//
//   - *ConfigError: the request cannot be built (missing key, location or
//     base URL). Never transient.
//   - *NetworkError: transport failure, or a status >= 400. StatusCode and
//     Body are filled when the server answered.
//   - *MalformedResponseError: the body is not JSON, or a required field is
//     missing or not a number. Field names the offending path.
//
// A missing icon is tolerated: Reading.Icon is empty and the icon resolver
// shows the fallback image.
//
// # Metrics
//
// Every fetch increments weatherFetchesTotal and observes
// weatherFetchDurationSeconds, labelled by outcome.
package weather
