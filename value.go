package enso

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ParamValue represents one argument of a bundle transaction.
// This is a sealed interface - only types within this package can implement it.
type ParamValue interface {
	// isParamValue is unexported to seal the interface.
	isParamValue()

	// resolve returns the wire form of the value for the transaction at
	// index i in its bundle. Resolution is a pure function of (i, value):
	// it reads no state outside the receiver and the index.
	resolve(i int) any
}

// outputRef is the wire object substituted by the executor with the
// output of the transaction at the given bundle index.
type outputRef struct {
	UseOutputOfCallAt int `json:"useOutputOfCallAt"`
}

// LiteralValue is a constant string argument known at composition time.
type LiteralValue struct {
	value string
}

// Value creates a literal argument from a string.
func Value(s string) *LiteralValue {
	return &LiteralValue{value: s}
}

// AddressValue creates a literal argument from an address, in its
// EIP-55 checksummed form.
func AddressValue(addr common.Address) *LiteralValue {
	return Value(addr.Hex())
}

// Uint256Value creates a literal argument from an amount, rendered as a
// decimal string the way the API expects raw token amounts.
func Uint256Value(v *big.Int) *LiteralValue {
	return Value(v.String())
}

func (v *LiteralValue) isParamValue() {}

func (v *LiteralValue) resolve(int) any {
	return v.value
}

// String returns the literal's value.
func (v *LiteralValue) String() string {
	return v.value
}

// PreviousOutputValue references the output of the immediately
// preceding transaction in the bundle.
type PreviousOutputValue struct{}

// PreviousOutput creates a reference to the preceding transaction's
// output. On the first transaction of a bundle there is no predecessor
// and the value serializes to the literal "0" the executor expects.
func PreviousOutput() *PreviousOutputValue {
	return &PreviousOutputValue{}
}

func (v *PreviousOutputValue) isParamValue() {}

func (v *PreviousOutputValue) resolve(i int) any {
	if i > 0 {
		return outputRef{UseOutputOfCallAt: i - 1}
	}
	return "0"
}

// OutputValue references the output of the transaction at an absolute
// bundle index.
type OutputValue struct {
	index int
}

// OutputOf creates a reference to the output of the transaction at
// index n. The index is not bounds-checked: out-of-range and forward
// references are serialized verbatim and rejected, if at all, by the
// remote executor.
func OutputOf(n int) *OutputValue {
	return &OutputValue{index: n}
}

func (v *OutputValue) isParamValue() {}

func (v *OutputValue) resolve(int) any {
	return outputRef{UseOutputOfCallAt: v.index}
}

// Index returns the referenced transaction index.
func (v *OutputValue) Index() int {
	return v.index
}

// ListValue is an ordered, possibly nested argument array.
type ListValue struct {
	items []ParamValue
}

// List creates an array argument from the given items.
func List(items ...ParamValue) *ListValue {
	return &ListValue{items: items}
}

func (v *ListValue) isParamValue() {}

// resolve resolves every item with the index of the enclosing
// transaction: nesting depth does not shift references.
func (v *ListValue) resolve(i int) any {
	resolved := make([]any, len(v.items))
	for j, item := range v.items {
		resolved[j] = item.resolve(i)
	}
	return resolved
}

// Items returns the list's items.
func (v *ListValue) Items() []ParamValue {
	return v.items
}
