package enso

import (
	"math/big"
	"reflect"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestLiteralValue(t *testing.T) {
	t.Run("resolves to its string at any index", func(t *testing.T) {
		v := Value("100000000000")
		for _, i := range []int{0, 1, 7} {
			got := v.resolve(i)
			if got != "100000000000" {
				t.Errorf("resolve(%d) = %v, want %q", i, got, "100000000000")
			}
		}
	})

	t.Run("String returns the value", func(t *testing.T) {
		if got := Value("0xabc").String(); got != "0xabc" {
			t.Errorf("String() = %q", got)
		}
	})
}

func TestPreviousOutputValue(t *testing.T) {
	t.Run("resolves to the literal zero sentinel at index 0", func(t *testing.T) {
		got := PreviousOutput().resolve(0)
		if got != "0" {
			t.Errorf("resolve(0) = %v, want %q", got, "0")
		}
	})

	t.Run("resolves to a reference to the preceding index", func(t *testing.T) {
		v := PreviousOutput()
		for _, i := range []int{1, 2, 5, 42} {
			got := v.resolve(i)
			want := outputRef{UseOutputOfCallAt: i - 1}
			if got != want {
				t.Errorf("resolve(%d) = %v, want %v", i, got, want)
			}
		}
	})
}

func TestOutputValue(t *testing.T) {
	t.Run("resolves to a reference to the given index", func(t *testing.T) {
		got := OutputOf(3).resolve(0)
		want := outputRef{UseOutputOfCallAt: 3}
		if got != want {
			t.Errorf("resolve = %v, want %v", got, want)
		}
	})

	t.Run("ignores the enclosing transaction index", func(t *testing.T) {
		v := OutputOf(2)
		if v.resolve(0) != v.resolve(9) {
			t.Error("OutputOf resolution depends on enclosing index")
		}
	})

	t.Run("out-of-range references pass through verbatim", func(t *testing.T) {
		// Bounds are the remote executor's responsibility.
		for _, n := range []int{-1, 999} {
			got := OutputOf(n).resolve(0)
			want := outputRef{UseOutputOfCallAt: n}
			if got != want {
				t.Errorf("resolve of OutputOf(%d) = %v, want %v", n, got, want)
			}
		}
	})

	t.Run("Index returns the referenced index", func(t *testing.T) {
		if got := OutputOf(7).Index(); got != 7 {
			t.Errorf("Index() = %d, want 7", got)
		}
	})
}

func TestListValue(t *testing.T) {
	t.Run("resolves items in order", func(t *testing.T) {
		v := List(Value("a"), Value("b"), Value("c"))
		got := v.resolve(0)
		want := []any{"a", "b", "c"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("resolve = %v, want %v", got, want)
		}
	})

	t.Run("nested references use the enclosing transaction index", func(t *testing.T) {
		v := List(Value("x"), List(PreviousOutput()))
		got := v.resolve(3)
		want := []any{"x", []any{outputRef{UseOutputOfCallAt: 2}}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("resolve = %v, want %v", got, want)
		}
	})

	t.Run("empty list resolves to an empty array", func(t *testing.T) {
		got := List().resolve(0)
		if !reflect.DeepEqual(got, []any{}) {
			t.Errorf("resolve = %v, want empty array", got)
		}
	})

	t.Run("Items returns the list contents", func(t *testing.T) {
		items := []ParamValue{Value("a"), OutputOf(1)}
		if got := List(items...).Items(); !reflect.DeepEqual(got, items) {
			t.Errorf("Items() = %v", got)
		}
	})
}

func TestTypedLiterals(t *testing.T) {
	t.Run("AddressValue renders EIP-55 form", func(t *testing.T) {
		addr := common.HexToAddress("0xcc9ee9483f662091a1de4795249e24ac0ac2630f")
		got := AddressValue(addr).String()
		if got != "0xCc9EE9483f662091a1de4795249E24aC0aC2630f" {
			t.Errorf("AddressValue = %q", got)
		}
	})

	t.Run("Uint256Value renders a decimal string", func(t *testing.T) {
		v, ok := new(big.Int).SetString("100000000000000000000", 10)
		if !ok {
			t.Fatal("SetString failed")
		}
		got := Uint256Value(v).String()
		if got != "100000000000000000000" {
			t.Errorf("Uint256Value = %q", got)
		}
	})
}
