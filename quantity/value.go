// Package quantity holds the value model for recipe amounts and the unit
// conversion engine. Values are numbers, ranges, or opaque text; text
// never participates in scaling or conversion.
package quantity

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueKind discriminates the Value union.
type ValueKind int

const (
	KindNumber ValueKind = iota
	KindRange
	KindText
)

// Value is a tagged union: a single number, a closed numeric range, or
// verbatim text.
type Value struct {
	kind       ValueKind
	num        float64
	start, end float64
	text       string
}

func NumberValue(v float64) Value { return Value{kind: KindNumber, num: v} }

func RangeValue(start, end float64) Value {
	return Value{kind: KindRange, start: start, end: end}
}

func TextValue(s string) Value { return Value{kind: KindText, text: s} }

func (v Value) Kind() ValueKind { return v.kind }

// Number returns the numeric value. For ranges it returns the start bound.
func (v Value) Number() float64 {
	if v.kind == KindRange {
		return v.start
	}
	return v.num
}

func (v Value) Range() (start, end float64) { return v.start, v.end }

func (v Value) Text() string { return v.text }

// IsNumeric reports whether the value can be scaled or converted.
func (v Value) IsNumeric() bool { return v.kind != KindText }

// Scale multiplies numeric values by factor. Text is returned unchanged.
func (v Value) Scale(factor float64) Value {
	switch v.kind {
	case KindNumber:
		return NumberValue(v.num * factor)
	case KindRange:
		return RangeValue(v.start*factor, v.end*factor)
	}
	return v
}

func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return formatNumber(v.num)
	case KindRange:
		return formatNumber(v.start) + "-" + formatNumber(v.end)
	}
	return v.text
}

func formatNumber(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// ParseValue interprets raw quantity text. Accepted numeric forms are
// plain numbers, simple fractions (a/b) and ranges (a-b); anything else
// becomes a Text value verbatim, which is never an error by itself.
func ParseValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return TextValue(raw)
	}

	if n, ok := parseNumber(trimmed); ok {
		return NumberValue(n)
	}

	if num, den, ok := splitPair(trimmed, '/'); ok {
		a, aok := parseNumber(num)
		b, bok := parseNumber(den)
		if aok && bok && b != 0 {
			return NumberValue(a / b)
		}
	}

	if lo, hi, ok := splitPair(trimmed, '-'); ok {
		a, aok := parseNumber(lo)
		b, bok := parseNumber(hi)
		if aok && bok {
			return RangeValue(a, b)
		}
	}

	return TextValue(trimmed)
}

func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0, false
	}
	return f, true
}

func splitPair(s string, sep byte) (string, string, bool) {
	idx := strings.IndexByte(s, sep)
	if idx <= 0 || idx == len(s)-1 {
		return "", "", false
	}
	return s[:idx], s[idx+1:], true
}

// Quantity pairs a value with optional unit text. The unit stays opaque
// until conversion time.
type Quantity struct {
	Value Value
	Unit  string
}

func (q Quantity) String() string {
	if q.Unit == "" {
		return q.Value.String()
	}
	return fmt.Sprintf("%s %s", q.Value, q.Unit)
}
