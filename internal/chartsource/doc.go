// Package chartsource retrieves raw ChordPro text and classifies failures.
//
// # Sources
//
// A chart comes either from a URL or from literal text the host already
// holds:
//
//	src := chartsource.FromURL("amazing-grace.cho")
//	src := chartsource.FromText(body)
//
// Literal text never touches the network. URL sources are fetched with a
// Client; relative URLs resolve against the configured base_url, which is
// always treated as a directory.
//
// # Requests
//
// Every fetch:
//   - honors the caller's context
//   - sends Accept: text/plain and the configured User-Agent
//   - is bounded by the client timeout (10s unless configured)
//   - reads at most 4 MiB of body
//
// The client does not retry. Retries are an operator action handled by the
// state controller.
//
// # Error kinds
//
// Failures surface as *FetchError with one of:
//
//   - NetworkError: connection refused, DNS failure, timeout, reset. Retryable.
//   - NotFound: HTTP 404.
//   - Unknown: any other non-2xx status, or an unusable URL.
//
// Classify maps any error to a kind, including *chordpro.ParseError to
// ParseError, so callers can route parse failures through the same path.
// ErrorKind.Message gives the text shown in place of the chart.
package chartsource
