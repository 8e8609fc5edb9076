package calcpkg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type key struct {
	digit byte
	op    Op
	eval  bool
	back  bool
	clear bool
}

func d(b byte) key  { return key{digit: b} }
func o(op Op) key   { return key{op: op} }
func eval() key     { return key{eval: true} }
func back() key     { return key{back: true} }
func clearK() key   { return key{clear: true} }

func press(c *Calculator, keys ...key) {
	for _, k := range keys {
		switch {
		case k.eval:
			c.Evaluate()
		case k.back:
			c.Backspace()
		case k.clear:
			c.Clear()
		case k.op != "":
			c.Operator(k.op)
		default:
			c.Digit(k.digit)
		}
	}
}

func TestEvaluate(t *testing.T) {
	testCases := []struct {
		name string
		keys []key
		want int64
	}{
		{
			name: "LeftToRightWithoutPrecedence",
			keys: []key{d('3'), o(OpAdd), d('4'), o(OpMul), d('2'), eval()},
			want: 14,
		},
		{
			name: "DivisionByZeroYieldsZero",
			keys: []key{d('5'), o(OpDiv), d('0'), eval()},
			want: 0,
		},
		{
			name: "SubtractionFloorsAtZero",
			keys: []key{d('2'), o(OpSub), d('9'), eval()},
			want: 0,
		},
		{
			name: "DivisionTruncates",
			keys: []key{d('7'), o(OpDiv), d('2'), eval()},
			want: 3,
		},
		{
			name: "SingleOperand",
			keys: []key{d('1'), d('2'), d('0'), eval()},
			want: 120,
		},
		{
			name: "FloorAppliesMidFold",
			keys: []key{d('2'), o(OpSub), d('9'), o(OpAdd), d('5'), eval()},
			want: 5,
		},
		{
			name: "EmptyExpression",
			keys: []key{eval()},
			want: 0,
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			c := New()
			press(c, tc.keys...)
			require.Equal(t, tc.want, c.Amount())
		})
	}
}

func TestDigitAfterEvaluateStartsFresh(t *testing.T) {
	c := New()
	press(c, d('3'), o(OpAdd), d('4'), eval())
	require.Equal(t, int64(7), c.Amount())

	press(c, d('5'))
	require.Equal(t, int64(5), c.Amount())
	require.Equal(t, "", c.Formula())

	press(c, eval())
	require.Equal(t, int64(5), c.Amount())
}

func TestOperatorAfterEvaluateSeedsResult(t *testing.T) {
	c := New()
	press(c, d('3'), o(OpAdd), d('4'), eval())

	press(c, o(OpMul), d('2'), eval())
	require.Equal(t, int64(14), c.Amount())
}

func TestBackspace(t *testing.T) {
	c := New()
	press(c, d('1'), d('2'), d('3'), back())
	require.Equal(t, int64(12), c.Amount())

	press(c, back(), back(), back())
	require.Equal(t, int64(0), c.Amount())
}

func TestClear(t *testing.T) {
	c := New()
	press(c, d('9'), o(OpAdd), d('1'), clearK())
	require.Equal(t, int64(0), c.Amount())
	require.Equal(t, "", c.Formula())

	press(c, eval())
	require.Equal(t, int64(0), c.Amount())
}

func TestLeadingZeroDoesNotAccumulate(t *testing.T) {
	c := New()
	press(c, d('0'), d('0'), d('7'))
	require.Equal(t, int64(7), c.Amount())
}

func TestFormula(t *testing.T) {
	c := New()
	press(c, d('3'), o(OpAdd), d('4'))
	require.Equal(t, "3 +", c.Formula())

	press(c, eval())
	require.Equal(t, "3 + 4 =", c.Formula())
}

func TestSyncFrom(t *testing.T) {
	c := New()
	press(c, d('3'), o(OpAdd))

	c.SyncFrom(250)
	require.Equal(t, int64(250), c.Amount())
	require.Equal(t, "", c.Formula())

	c.SyncFrom(-4)
	require.Equal(t, int64(0), c.Amount())
}
