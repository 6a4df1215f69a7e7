package simulator

import "github.com/mesh-intelligence/contactsim/pkg/types"

// Mutator rewrites a successful response body in place or returns a
// replacement.
type Mutator func(body any) any

// Corrupt returns a Simulator whose successful response bodies are passed
// through mutators, to exercise the client's response validation. Requests
// and failures are left untouched.
func Corrupt(sim Simulator, mutators ...Mutator) Simulator {
	return func() ([]types.APICall, error) {
		calls, err := sim()
		if err != nil {
			return nil, err
		}
		for i, call := range calls {
			success, ok := call.Outcome.(types.Success)
			if !ok || success.Body == nil {
				continue
			}
			body := success.Body
			for _, m := range mutators {
				body = m(body)
			}
			calls[i].Outcome = types.Success{Body: body}
		}
		return calls, nil
	}
}

// StripField removes key from object response bodies.
func StripField(key string) Mutator {
	return func(body any) any {
		if m, ok := body.(map[string]any); ok {
			delete(m, key)
		}
		return body
	}
}

// StripItemField removes key from every object of the array found under
// listKey, or of the body itself when it is an array and listKey is empty.
func StripItemField(listKey, key string) Mutator {
	return func(body any) any {
		items := body
		if listKey != "" {
			m, ok := body.(map[string]any)
			if !ok {
				return body
			}
			items = m[listKey]
		}
		list, ok := items.([]any)
		if !ok {
			return body
		}
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				delete(m, key)
			}
		}
		return body
	}
}
