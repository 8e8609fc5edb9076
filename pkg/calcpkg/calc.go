// Package calcpkg provides the finite-state arithmetic engine behind the
// amount entry keypad.
//
// The engine produces a quantized non-negative whole-unit amount. Expressions
// fold strictly left to right with no operator precedence, subtraction floors
// at zero and division by zero yields zero, so the resulting amount can never
// go negative or raise an error mid-entry.
package calcpkg

import (
	"strconv"
	"strings"
)

// Op is an arithmetic operator key.
type Op string

// Operator keys as they appear on the keypad.
const (
	OpAdd Op = "+"
	OpSub Op = "-"
	OpMul Op = "×"
	OpDiv Op = "÷"
)

// Calculator holds the state of one amount entry expression.
//
// It is not safe for concurrent use; each logical entry session owns its own
// Calculator.
type Calculator struct {
	current  string   // operand being typed, digits only
	tokens   []string // alternating operand/operator sequence
	result   int64
	formula  string
	finished bool
}

// New returns a Calculator holding the zero expression.
func New() *Calculator {
	return &Calculator{current: "0"}
}

// toAmount coerces a token to a non-negative whole amount. Anything that
// fails to parse counts as zero.
func toAmount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0
	}

	return n
}

// fold evaluates a token sequence strictly left to right.
func fold(tokens []string) int64 {
	if len(tokens) == 0 {
		return 0
	}

	acc := toAmount(tokens[0])

	for i := 1; i+1 < len(tokens); i += 2 {
		b := toAmount(tokens[i+1])

		switch Op(tokens[i]) {
		case OpAdd:
			acc += b
		case OpSub:
			acc -= b
			if acc < 0 {
				acc = 0
			}
		case OpMul:
			acc *= b
		case OpDiv:
			if b == 0 {
				acc = 0
			} else {
				acc /= b
			}
		}
	}

	return acc
}

func (c *Calculator) resetIfFinished() {
	if c.finished {
		c.tokens = nil
		c.current = "0"
		c.finished = false
	}
}

// Digit appends one digit to the current operand. Right after an evaluation
// it starts a fresh expression instead of extending the prior result.
func (c *Calculator) Digit(d byte) {
	if d < '0' || d > '9' {
		return
	}

	c.resetIfFinished()

	if c.current == "0" {
		c.current = string(d)
	} else {
		c.current += string(d)
	}
}

// Operator pushes the current operand and the operator onto the expression.
// Right after an evaluation the prior result seeds the new expression.
func (c *Calculator) Operator(op Op) {
	if c.finished {
		c.tokens = []string{strconv.FormatInt(c.result, 10)}
		c.finished = false
	} else {
		c.tokens = append(c.tokens, strconv.FormatInt(toAmount(c.current), 10))
	}

	c.tokens = append(c.tokens, string(op))
	c.current = "0"
}

// Clear resets the engine to the zero expression.
func (c *Calculator) Clear() {
	c.current = "0"
	c.tokens = nil
	c.result = 0
	c.formula = ""
	c.finished = false
}

// Backspace removes the last typed digit, flooring the operand at "0".
func (c *Calculator) Backspace() {
	c.resetIfFinished()

	c.current = c.current[:len(c.current)-1]
	if c.current == "" {
		c.current = "0"
	}
}

// Evaluate folds the pending expression, records the result as the current
// operand and marks the expression finished.
func (c *Calculator) Evaluate() int64 {
	c.tokens = append(c.tokens, strconv.FormatInt(toAmount(c.current), 10))
	c.result = fold(c.tokens)
	c.formula = strings.Join(c.tokens, " ") + " ="
	c.current = strconv.FormatInt(c.result, 10)
	c.finished = true
	c.tokens = nil

	return c.result
}

// Amount returns the externally visible amount: the current operand coerced
// to a non-negative whole number.
func (c *Calculator) Amount() int64 {
	return toAmount(c.current)
}

// Formula returns the display form of the expression entered so far, or the
// folded expression terminated by "=" right after an evaluation.
func (c *Calculator) Formula() string {
	if c.finished {
		return c.formula
	}

	return strings.Join(c.tokens, " ")
}

// SyncFrom reseeds the engine from an externally edited amount, discarding
// any pending expression. Negative amounts clamp to zero.
func (c *Calculator) SyncFrom(amount int64) {
	if amount < 0 {
		amount = 0
	}

	c.current = strconv.FormatInt(amount, 10)
	c.tokens = nil
	c.result = 0
	c.formula = ""
	c.finished = false
}
