package sqlite

import "encoding/json"

// callJSON is one line of an exported transcript. Each line repeats the
// session's scenario so a file can be imported without a header.
type callJSON struct {
	SessionID    string          `json:"session_id"`
	Scenario     string          `json:"scenario"`
	Seq          int             `json:"seq"`
	Method       string          `json:"method"`
	Path         string          `json:"path"`
	Query        string          `json:"query,omitempty"`
	RequestBody  json.RawMessage `json:"request_body,omitempty"`
	Succeeded    bool            `json:"succeeded"`
	ResponseBody json.RawMessage `json:"response_body,omitempty"`
	Error        *errorJSON      `json:"error,omitempty"`
	RecordedAt   string          `json:"recorded_at"`
}

// errorJSON is the failure of a call that did not succeed.
type errorJSON struct {
	Kind    string `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}
