package enso

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract wraps a target contract so direct calls can be composed from
// its parsed ABI instead of hand-written signature strings.
type Contract struct {
	address common.Address
	abi     abi.ABI
}

// NewContract creates a Contract wrapper for the given address and ABI.
func NewContract(address common.Address, contractABI abi.ABI) *Contract {
	return &Contract{
		address: address,
		abi:     contractABI,
	}
}

// Address returns the contract address.
func (c *Contract) Address() common.Address {
	return c.address
}

// ABI returns the contract ABI.
func (c *Contract) ABI() abi.ABI {
	return c.abi
}

// HasMethod returns true if the contract has a method with the given name.
func (c *Contract) HasMethod(methodName string) bool {
	_, ok := c.abi.Methods[methodName]
	return ok
}

// MethodNames returns all method names in the contract ABI.
func (c *Contract) MethodNames() []string {
	names := make([]string, 0, len(c.abi.Methods))
	for name := range c.abi.Methods {
		names = append(names, name)
	}
	return names
}

// Call builds a DirectCall for the named method with the given argument
// values. The human-readable ABI signature the executor needs is derived
// from the parsed method.
func (c *Contract) Call(methodName string, args ...ParamValue) (*DirectCall, error) {
	method, ok := c.abi.Methods[methodName]
	if !ok {
		return nil, &MethodNotFoundError{Contract: c.address, Method: methodName}
	}

	return &DirectCall{
		Address: c.address,
		Method:  method.Name,
		ABI:     methodSignature(method),
		Args:    args,
	}, nil
}

// MustCall is like Call but panics on error.
func (c *Contract) MustCall(methodName string, args ...ParamValue) *DirectCall {
	call, err := c.Call(methodName, args...)
	if err != nil {
		panic(err)
	}
	return call
}

// DirectCall is a prepared direct contract call, ready to be appended to
// a bundle with Bundle.AddContractCall.
type DirectCall struct {
	Address common.Address
	Method  string
	ABI     string
	Args    []ParamValue
}

// methodSignature renders the human-readable signature the call action
// expects, e.g. "function transfer(address,uint256) external".
func methodSignature(m abi.Method) string {
	sig := "function " + m.Sig + " external"
	if m.StateMutability == "payable" {
		sig += " payable"
	}
	return sig
}

// ParseABI parses a JSON ABI string into an abi.ABI.
// This is a convenience function for creating contracts from ABI JSON.
func ParseABI(abiJSON string) (abi.ABI, error) {
	return abi.JSON(strings.NewReader(abiJSON))
}

// MustParseABI is like ParseABI but panics on error.
func MustParseABI(abiJSON string) abi.ABI {
	parsed, err := ParseABI(abiJSON)
	if err != nil {
		panic(err)
	}
	return parsed
}
