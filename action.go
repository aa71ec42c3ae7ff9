package enso

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// ActionInput is one named parameter of an action.
type ActionInput struct {
	Name        string
	Description string
}

// ActionInputs is an action's parameter list. Order is load-bearing:
// argument values bind to inputs by position, and the order fields
// appear in the API payload is the canonical binding order.
type ActionInputs []ActionInput

// UnmarshalJSON decodes the API's inputs object while preserving the
// order its fields appear in. A plain map would lose it.
func (in *ActionInputs) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("action inputs: expected object, got %v", tok)
	}

	parsed := ActionInputs{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("action inputs: expected field name, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		// Non-string descriptions are tolerated and flattened to "".
		var description string
		_ = json.Unmarshal(raw, &description)

		parsed = append(parsed, ActionInput{Name: name, Description: description})
	}

	*in = parsed
	return nil
}

// MarshalJSON renders the inputs back to the API's object shape.
func (in ActionInputs) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, input := range in {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(input.Name)
		if err != nil {
			return nil, err
		}
		description, err := json.Marshal(input.Description)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(description)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Action describes one named remote operation and its ordered parameter
// list.
type Action struct {
	Name   string       `json:"action"`
	Inputs ActionInputs `json:"inputs"`
}

// callAction is initialized once before first use and never mutated.
var callAction = sync.OnceValue(func() Action {
	return Action{
		Name: "call",
		Inputs: ActionInputs{
			{Name: "address"},
			{Name: "method"},
			{Name: "abi"},
			{Name: "args"},
		},
	}
})

// CallAction returns the built-in direct-call action. It is always
// available without a catalog fetch; its four parameters are the target
// address, the method name, the human-readable ABI signature, and the
// method argument list.
func CallAction() Action {
	return callAction()
}

// Actions retrieves the action catalog.
func (c *Client) Actions(ctx context.Context) ([]Action, error) {
	var actions []Action
	if err := c.getJSON(ctx, "/actions", nil, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}
