package enso

import "context"

// Network is a chain the aggregator operates on.
type Network struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Networks retrieves the list of supported networks.
func (c *Client) Networks(ctx context.Context) ([]Network, error) {
	var networks []Network
	if err := c.getJSON(ctx, "/networks", nil, &networks); err != nil {
		return nil, err
	}
	return networks, nil
}
