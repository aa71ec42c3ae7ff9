// Package enso provides a Go client for the Enso Finance aggregation API.
//
// Enso exposes DeFi actions (routing, deposits, direct contract calls)
// that can be batched into a single atomic bundle. This library lets you:
//   - Compose bundles of actions whose arguments may reference the output
//     of other actions in the same bundle
//   - Submit a bundle in one atomic call
//   - Retrieve the action, protocol, network, and token catalogs, with
//     pull-based streaming over server-paginated endpoints
//
// # Basic Usage
//
// Create a client, compose a bundle, and submit it:
//
//	client := enso.New(apiKey, enso.V1)
//
//	route := enso.Action{
//	    Name: "route",
//	    Inputs: enso.ActionInputs{
//	        {Name: "amountIn"}, {Name: "slippage"},
//	        {Name: "tokenIn"}, {Name: "tokenOut"},
//	    },
//	}
//
//	bundle := enso.NewBundle(1)
//	bundle.AddEnsoAction(route,
//	    enso.Value("100000000000"),
//	    enso.Value("300"),
//	    enso.Value(tokenIn),
//	    enso.Value(tokenOut),
//	)
//	bundle.AddCall(tokenAddr, "transfer",
//	    "function transfer(address,uint256) external",
//	    enso.Value(recipient), enso.OutputOf(0),
//	)
//
//	err := client.SendBundle(ctx, bundle, fromAddress)
//
// # Argument Values
//
// Transaction arguments are ParamValues:
//
//   - Literals: constant strings known at composition time, created with
//     Value(), AddressValue(), or Uint256Value()
//
//   - Output references: PreviousOutput() or OutputOf(n), substituted by
//     the executor with the result of another transaction in the bundle
//
//   - Lists: nested argument arrays, created with List()
//
// Arguments bind to action parameters by position, never by name. The
// order of an action's inputs is part of the wire contract.
//
// # Paginated Catalogs
//
// The token catalog is served in pages. TokenStream retrieves it one
// page per pull without loading the whole catalog into memory:
//
//	stream := client.TokenStream(url.Values{"chainId": {"1"}})
//	for addrs, err := range stream.Pages(ctx) {
//	    if err != nil {
//	        log.Println(err) // page-level, stream keeps going
//	        continue
//	    }
//	    process(addrs)
//	}
//
// A page-level failure does not terminate the stream: the failed page is
// retried on the next pull.
package enso

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the production Enso API address.
const DefaultBaseURL = "https://api.enso.finance"

// Version selects the Enso API version used for all requests.
type Version string

// V1 is the current Enso API version.
const V1 Version = "v1"

// Client is an authenticated Enso API client. It is safe for concurrent
// use; individual TokenStreams created from it are not.
type Client struct {
	baseURL string
	version Version
	apiKey  string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a Client for the given API key and version.
func New(apiKey string, version Version, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		version: version,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIURL returns the versioned API root, e.g. "https://api.enso.finance/api/v1".
func (c *Client) APIURL() string {
	return c.baseURL + "/api/" + string(c.version)
}

// roundTrip performs one authenticated request and returns the raw
// response payload. Connectivity and read failures surface as
// *TransportError, non-2xx responses as *StatusError. Decoding the
// payload is the caller's concern.
func (c *Client) roundTrip(ctx context.Context, method, endpoint string, query url.Values, body []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Endpoint: endpoint, Err: err}
		}
	}

	u := c.APIURL() + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("enso api request", "method", method, "endpoint", endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("enso api error response", "endpoint", endpoint, "status", resp.StatusCode)
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: string(payload)}
	}

	return payload, nil
}

// getJSON performs a GET and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	payload, err := c.roundTrip(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}
