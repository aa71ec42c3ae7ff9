package enso

import (
	"context"
	"sync"
)

// Protocol identifies a DeFi protocol known to the aggregator.
type Protocol struct {
	Slug string `json:"slug"`
	URL  string `json:"url"`
}

var ensoProtocol = sync.OnceValue(func() Protocol {
	return Protocol{
		Slug: "enso",
		URL:  "https://api.enso.finance",
	}
})

// EnsoProtocol returns the aggregator's own protocol descriptor, used
// for built-in actions such as route and call.
func EnsoProtocol() Protocol {
	return ensoProtocol()
}

// Protocols retrieves the protocol catalog.
func (c *Client) Protocols(ctx context.Context) ([]Protocol, error) {
	var protocols []Protocol
	if err := c.getJSON(ctx, "/protocols", nil, &protocols); err != nil {
		return nil, err
	}
	return protocols, nil
}
