package enso

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Transaction is one action instance bound to concrete argument values
// within a bundle. Arguments are positional against the action's inputs;
// a transaction's index is its position in the bundle at serialization
// time, not a property of the transaction itself.
type Transaction struct {
	protocol Protocol
	action   Action
	args     []ParamValue
}

// Protocol returns the protocol the action belongs to.
func (t *Transaction) Protocol() Protocol {
	return t.protocol
}

// Action returns the transaction's action.
func (t *Transaction) Action() Action {
	return t.action
}

// Args returns the transaction's argument values.
func (t *Transaction) Args() []ParamValue {
	return t.args
}

// Bundle is an ordered sequence of transactions submitted atomically.
// A Bundle has a single owner: compose, serialize, and submit it from
// one goroutine, and do not mutate it after submission begins.
type Bundle struct {
	chainID      int
	transactions []*Transaction
}

// NewBundle creates an empty bundle for the given chain.
func NewBundle(chainID int) *Bundle {
	return &Bundle{
		chainID:      chainID,
		transactions: make([]*Transaction, 0, 8),
	}
}

// ChainID returns the chain the bundle executes on.
func (b *Bundle) ChainID() int {
	return b.chainID
}

// Len returns the number of transactions in the bundle.
func (b *Bundle) Len() int {
	return len(b.transactions)
}

// TransactionAt returns the transaction at the given index, or nil if
// the index is out of range.
func (b *Bundle) TransactionAt(i int) *Transaction {
	if i < 0 || i >= len(b.transactions) {
		return nil
	}
	return b.transactions[i]
}

// AddAction appends a transaction and returns its index. Argument count
// and content are not validated: if fewer values than inputs are given,
// serialization emits only the overlapping prefix.
func (b *Bundle) AddAction(protocol Protocol, action Action, args ...ParamValue) int {
	b.transactions = append(b.transactions, &Transaction{
		protocol: protocol,
		action:   action,
		args:     args,
	})
	return len(b.transactions) - 1
}

// AddEnsoAction appends a transaction under the aggregator's own
// protocol and returns its index.
func (b *Bundle) AddEnsoAction(action Action, args ...ParamValue) int {
	return b.AddAction(EnsoProtocol(), action, args...)
}

// AddCall appends a direct contract call and returns its index. The
// address, method name, and human-readable ABI signature become the
// first three arguments of the built-in call action; abiArgs become the
// method's argument list.
func (b *Bundle) AddCall(address, method, abiSig string, abiArgs ...ParamValue) int {
	return b.AddEnsoAction(CallAction(),
		Value(address),
		Value(method),
		Value(abiSig),
		List(abiArgs...),
	)
}

// AddContractCall appends a DirectCall built from a parsed contract ABI
// and returns its index.
func (b *Bundle) AddContractCall(call *DirectCall) int {
	return b.AddCall(call.Address.Hex(), call.Method, call.ABI, call.Args...)
}

// transactionRecord is the wire shape of one serialized transaction.
type transactionRecord struct {
	Protocol string         `json:"protocol"`
	Action   string         `json:"action"`
	Args     map[string]any `json:"args"`
}

// MarshalJSON serializes the bundle to the wire format: one record per
// transaction in insertion order, each mapping input names to resolved
// argument values. Transaction indices are computed during this pass,
// so references stay correct across mutations, and re-serializing an
// unchanged bundle yields identical bytes.
func (b *Bundle) MarshalJSON() ([]byte, error) {
	records := make([]transactionRecord, 0, len(b.transactions))
	for i, tx := range b.transactions {
		args := make(map[string]any)
		n := min(len(tx.action.Inputs), len(tx.args))
		for j := 0; j < n; j++ {
			args[tx.action.Inputs[j].Name] = tx.args[j].resolve(i)
		}
		records = append(records, transactionRecord{
			Protocol: tx.protocol.Slug,
			Action:   tx.action.Name,
			Args:     args,
		})
	}
	return json.Marshal(records)
}

// SendBundle submits the bundle for atomic execution from the given
// address. The call is at-most-once: no retry, and no response payload
// beyond the status is consumed. The bundle must not be mutated once
// submission begins.
func (c *Client) SendBundle(ctx context.Context, bundle *Bundle, fromAddress string) error {
	body, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("enso: serializing bundle: %w", err)
	}
	query := url.Values{
		"chainId":     {strconv.Itoa(bundle.ChainID())},
		"fromAddress": {fromAddress},
	}
	_, err = c.roundTrip(ctx, http.MethodPost, "/shortcuts/bundle", query, body)
	return err
}
