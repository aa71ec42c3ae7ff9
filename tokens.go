package enso

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"net/url"
	"strconv"
)

// Token is one entry of the token catalog.
type Token struct {
	ChainID          int      `json:"chainId"`
	Address          string   `json:"address"`
	Type             string   `json:"type"`
	ProtocolSlug     string   `json:"protocolSlug"`
	UnderlyingTokens []string `json:"underlyingTokens"`
	PrimaryAddress   string   `json:"primaryAddress"`
}

// Meta is the pagination envelope the server attaches to every token
// page.
type Meta struct {
	Total       int  `json:"total"`
	LastPage    int  `json:"lastPage"`
	CurrentPage int  `json:"currentPage"`
	PerPage     int  `json:"perPage"`
	Prev        *int `json:"prev"`
	Next        *int `json:"next"`
}

// tokensPage is the wire shape of one paginated tokens response.
type tokensPage struct {
	Meta Meta    `json:"meta"`
	Data []Token `json:"data"`
}

func (p *tokensPage) addresses() []string {
	addrs := make([]string, len(p.Data))
	for i, token := range p.Data {
		addrs[i] = token.Address
	}
	return addrs
}

// Tokens retrieves a single page of the token catalog and returns its
// pagination meta plus the token addresses. Query parameters (chainId,
// page, ...) are passed through to the server. Either a transport or a
// decode failure is fatal to the call.
func (c *Client) Tokens(ctx context.Context, query url.Values) (Meta, []string, error) {
	payload, err := c.roundTrip(ctx, http.MethodGet, "/tokens", query, nil)
	if err != nil {
		return Meta{}, nil, err
	}
	var page tokensPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return Meta{}, nil, &DecodeError{Endpoint: "/tokens", Err: err}
	}
	return page.Meta, page.addresses(), nil
}

// streamPhase is the token stream's position in its fetch cycle.
type streamPhase uint8

const (
	// phaseIdle: nothing outstanding; the next pull decides whether to
	// fetch or finish.
	phaseIdle streamPhase = iota

	// phaseAwaitingResponse: a page request is about to be / being made.
	phaseAwaitingResponse

	// phaseAwaitingDecode: a raw payload is held, pending decode.
	phaseAwaitingDecode
)

// TokenStream retrieves the token catalog one page per pull. It is
// strictly pull-based with a single request outstanding at a time: page
// k+1 is never requested before page k's outcome has been observed, and
// no work happens between pulls. Abandoning the stream mid-way is safe;
// it holds no state outside itself.
//
// A TokenStream is for a single goroutine. Independent streams may run
// concurrently.
type TokenStream struct {
	client *Client
	query  url.Values

	cursor     int // pages successfully fetched so far
	totalPages int // -1 until the first successful decode
	phase      streamPhase
	pending    []byte // payload held between response and decode
}

// TokenStream creates a stream over the token catalog. Query parameters
// are passed through to the server on every page request; the stream
// owns its copy, so the caller may reuse the values.
func (c *Client) TokenStream(query url.Values) *TokenStream {
	q := url.Values{}
	for k, vs := range query {
		q[k] = append([]string(nil), vs...)
	}
	return &TokenStream{
		client:     c,
		query:      q,
		totalPages: -1,
	}
}

// Next pulls the stream once. It returns the next page's token
// addresses, or ErrDone once every page reported by the server has been
// yielded. The total page count is only ever taken from the most
// recently decoded page; until the first successful decode the stream
// always attempts a fetch.
//
// Transport and decode failures are non-fatal: the pull returns the
// error, the cursor stays on the failed page, and the next pull retries
// it. A caller wanting bounded wait time must bound ctx.
func (s *TokenStream) Next(ctx context.Context) ([]string, error) {
	for {
		switch s.phase {
		case phaseIdle:
			if s.totalPages >= 0 && s.cursor >= s.totalPages {
				return nil, ErrDone
			}
			s.phase = phaseAwaitingResponse

		case phaseAwaitingResponse:
			query := url.Values{}
			for k, vs := range s.query {
				query[k] = vs
			}
			query.Set("page", strconv.Itoa(s.cursor+1))

			payload, err := s.client.roundTrip(ctx, http.MethodGet, "/tokens", query, nil)
			if err != nil {
				s.phase = phaseIdle
				return nil, err
			}
			s.pending = payload
			s.phase = phaseAwaitingDecode

		case phaseAwaitingDecode:
			payload := s.pending
			s.pending = nil
			s.phase = phaseIdle

			var page tokensPage
			if err := json.Unmarshal(payload, &page); err != nil {
				return nil, &DecodeError{Endpoint: "/tokens", Err: err}
			}
			s.cursor++
			s.totalPages = page.Meta.LastPage
			return page.addresses(), nil
		}
	}
}

// Pages returns a range-over-func view of the stream. Page-level errors
// are yielded as items, matching Next; iteration ends when the stream is
// exhausted or the context is done.
func (s *TokenStream) Pages(ctx context.Context) iter.Seq2[[]string, error] {
	return func(yield func([]string, error) bool) {
		for {
			addrs, err := s.Next(ctx)
			if errors.Is(err, ErrDone) {
				return
			}
			if !yield(addrs, err) {
				return
			}
			// A dead context makes every further pull fail; stop rather
			// than yield the same error forever.
			if err != nil && ctx.Err() != nil {
				return
			}
		}
	}
}
