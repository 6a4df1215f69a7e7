package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/mesh-intelligence/contactsim/pkg/types"
)

type contactView struct {
	VID        int64          `json:"vid"`
	Email      string         `json:"email,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
	Related    []int64        `json:"related,omitempty"`
}

type listView struct {
	ID      int64  `json:"listId"`
	Name    string `json:"name"`
	Dynamic bool   `json:"dynamic"`
}

type propertyView struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	FieldType string `json:"fieldType"`
	GroupName string `json:"groupName,omitempty"`
}

type groupView struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName"`
	Properties  []propertyView `json:"properties"`
}

// callView is one simulated call as printed by simulate.
type callView struct {
	Method   string     `json:"method"`
	Path     string     `json:"path"`
	Query    string     `json:"query,omitempty"`
	Body     any        `json:"body,omitempty"`
	Response any        `json:"response,omitempty"`
	Error    *errorView `json:"error,omitempty"`
}

type errorView struct {
	Kind    string `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// runView is the outcome of a run.
type runView struct {
	Scenario string `json:"scenario"`
	Calls    int    `json:"calls"`
	Session  string `json:"session,omitempty"`
	Result   any    `json:"result,omitempty"`
	Error    string `json:"error,omitempty"`
}

func membershipView(vids []int64) any {
	if vids == nil {
		vids = []int64{}
	}
	return map[string]any{"updated": vids}
}

func propertyViews(properties []types.Property) []propertyView {
	views := make([]propertyView, 0, len(properties))
	for _, p := range properties {
		views = append(views, propertyView{Name: p.Name, Type: p.Type, FieldType: p.EffectiveFieldType(), GroupName: p.GroupName})
	}
	return views
}

func newCallViews(calls []types.APICall) []callView {
	views := make([]callView, 0, len(calls))
	for _, call := range calls {
		views = append(views, callView{
			Method:   call.Method,
			Path:     call.Path,
			Query:    call.Query.Encode(),
			Body:     call.Body,
			Response: call.ResponseBody(),
		})
		if apiErr := call.Err(); apiErr != nil {
			views[len(views)-1].Error = &errorView{Kind: string(apiErr.Kind), Code: apiErr.Code, Message: apiErr.Message}
		}
	}
	return views
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
