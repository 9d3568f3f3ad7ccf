/*
Package server implements msgpack IPC for the openers search.

The server reads a stream of msgpack maps from stdin and answers each with
exactly one msgpack map on stdout. Logs go to stderr so they never interleave
with responses.

# IPC

Every request carries an ID that is echoed back and an op naming what to do.
Starting word groups are requested with:

	{"id": "req_001", "op": "starters", "k": 2, "s": 0, "l": 5}

The server responds with groups ranked best first. t is the search time in
microseconds:

	{"id": "req_001", "g": [{"w": ["crane", "pilot"], "sc": 1874}], "c": 1, "t": 5210}

Feedback from earlier guesses narrows the corpus:

	{"id": "req_002", "op": "deduce", "grey": ["m"], "yellow": ["p"], "p": "a____"}
	{"id": "req_002", "s": [{"w": "apple", "r": 1, "sc": 41.2}], "c": 1, "t": 88}

Green letters may be sent either as a pattern string ("p") or as a map of
position to letter ("green"); the map wins on conflicts.

	{"id": "req_003", "op": "info"}

Failures are reported with an HTTP-like code: 400 for bad requests, 422 when
no group can exist, 499 when the search was canceled and 500 otherwise.

	{"id": "req_004", "e": "invalid configuration: k must be positive: got 0", "c": 400}
*/
package server

// Request is the union of every op's fields; unused fields are left empty.
type Request struct {
	ID string `msgpack:"id"`
	Op string `msgpack:"op"`

	// starters
	K     int `msgpack:"k,omitempty"`
	Slack int `msgpack:"s,omitempty"`

	// deduce
	Grey    []string       `msgpack:"grey,omitempty"`
	Yellow  []string       `msgpack:"yellow,omitempty"`
	Green   map[int]string `msgpack:"green,omitempty"`
	Pattern string         `msgpack:"p,omitempty"`

	Limit int `msgpack:"l,omitempty"`
}

// StartersGroup is one group of letter-disjoint words.
type StartersGroup struct {
	Words []string `msgpack:"w"`
	Score float64  `msgpack:"sc"`
}

// StartersResponse answers a starters request.
type StartersResponse struct {
	ID        string          `msgpack:"id"`
	Groups    []StartersGroup `msgpack:"g"`
	Count     int             `msgpack:"c"`
	TimeTaken int64           `msgpack:"t"`
}

// DeduceSuggestion is one surviving word. Rank saturates at 65535 on very
// large result sets; the slice order stays authoritative.
type DeduceSuggestion struct {
	Word  string  `msgpack:"w"`
	Rank  uint16  `msgpack:"r"`
	Score float64 `msgpack:"sc"`
}

// DeduceResponse answers a deduce request.
type DeduceResponse struct {
	ID          string             `msgpack:"id"`
	Suggestions []DeduceSuggestion `msgpack:"s"`
	Count       int                `msgpack:"c"`
	TimeTaken   int64              `msgpack:"t"`
}

// InfoResponse describes the loaded corpus and server limits.
type InfoResponse struct {
	ID         string `msgpack:"id"`
	Status     string `msgpack:"status"`
	Words      int    `msgpack:"words"`
	WordLength int    `msgpack:"len"`
	Dropped    int    `msgpack:"dropped"`
	Duplicates int    `msgpack:"duplicates"`
	TopLetters string `msgpack:"top"`
	MaxK       int    `msgpack:"max_k"`
	MaxLimit   int    `msgpack:"max_limit"`
	CacheHits  int    `msgpack:"cache_hits"`
}

// ErrorResponse holds basic error information for a failed request
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// ReadyMessage is sent once before the first request is read.
type ReadyMessage struct {
	Status string `msgpack:"status"`
}

// Error codes carried in ErrorResponse.Code.
const (
	CodeBadRequest = 400
	CodeInfeasible = 422
	CodeCanceled   = 499
	CodeInternal   = 500
)
