package quantity

import (
	"errors"
	"fmt"
)

// UnitKind is the physical dimension of a unit.
type UnitKind int

const (
	KindCount UnitKind = iota
	KindMass
	KindVolume
	KindTime
	KindTemperature
)

func (k UnitKind) String() string {
	switch k {
	case KindMass:
		return "mass"
	case KindVolume:
		return "volume"
	case KindTime:
		return "time"
	case KindTemperature:
		return "temperature"
	}
	return "count"
}

// System is the measurement system a unit belongs to.
type System int

const (
	SystemNone System = iota
	SystemMetric
	SystemImperial
)

func (s System) String() string {
	switch s {
	case SystemMetric:
		return "metric"
	case SystemImperial:
		return "imperial"
	}
	return "none"
}

// ParseSystem maps user-facing system names to a System.
func ParseSystem(name string) (System, bool) {
	switch name {
	case "metric":
		return SystemMetric, true
	case "imperial":
		return SystemImperial, true
	}
	return SystemNone, false
}

// UnitDef defines one unit: its canonical name, accepted spellings, kind,
// system and the factor (plus offset, for temperature) that maps a value
// into the kind's base unit.
type UnitDef struct {
	Name    string
	Aliases []string
	Kind    UnitKind
	System  System
	Factor  float64
	Offset  float64
}

// ErrTextValue marks a conversion attempt on a non-numeric value. Callers
// downgrade it to a warning and keep the original value.
var ErrTextValue = errors.New("cannot convert non-numeric quantity")

// UnknownUnitError reports unit text with no table entry.
type UnknownUnitError struct {
	Unit string
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit: %q", e.Unit)
}

// IncompatibleKindError reports a conversion between different physical
// kinds.
type IncompatibleKindError struct {
	From, To         string
	FromKind, ToKind UnitKind
}

func (e *IncompatibleKindError) Error() string {
	return fmt.Sprintf("cannot convert %s (%s) to %s (%s)", e.From, e.FromKind, e.To, e.ToKind)
}

// Converter is an immutable unit table. It is safe for concurrent readers
// once built.
type Converter struct {
	units []UnitDef
	index map[string]int
}

// NewConverter builds a converter from unit definitions. Declaration
// order is kept; it breaks ties in best-unit selection. Later duplicate
// spellings are ignored.
func NewConverter(defs []UnitDef) *Converter {
	c := &Converter{
		units: make([]UnitDef, len(defs)),
		index: make(map[string]int, len(defs)*2),
	}
	copy(c.units, defs)
	for i, u := range c.units {
		if _, dup := c.index[u.Name]; !dup {
			c.index[u.Name] = i
		}
		for _, a := range u.Aliases {
			if _, dup := c.index[a]; !dup {
				c.index[a] = i
			}
		}
	}
	return c
}

// Lookup finds a unit by exact text, checking aliases too.
func (c *Converter) Lookup(name string) (UnitDef, bool) {
	i, ok := c.index[name]
	if !ok {
		return UnitDef{}, false
	}
	return c.units[i], true
}

// Units returns the table in declaration order.
func (c *Converter) Units() []UnitDef { return c.units }

// ConvertUnit converts q into the named target unit.
func (c *Converter) ConvertUnit(q Quantity, target string) (Quantity, error) {
	if !q.Value.IsNumeric() {
		return q, ErrTextValue
	}
	from, ok := c.Lookup(q.Unit)
	if !ok {
		return q, &UnknownUnitError{Unit: q.Unit}
	}
	to, ok := c.Lookup(target)
	if !ok {
		return q, &UnknownUnitError{Unit: target}
	}
	if from.Kind != to.Kind {
		return q, &IncompatibleKindError{
			From: from.Name, To: to.Name,
			FromKind: from.Kind, ToKind: to.Kind,
		}
	}
	return Quantity{Value: convertValue(q.Value, from, to), Unit: to.Name}, nil
}

// ConvertSystem converts q into the target system, picking the nicest
// unit of the same kind: the largest unit whose converted magnitude is at
// least 1, or the smallest available unit when none qualifies. The start
// bound decides for ranges.
func (c *Converter) ConvertSystem(q Quantity, target System) (Quantity, error) {
	if !q.Value.IsNumeric() {
		return q, ErrTextValue
	}
	from, ok := c.Lookup(q.Unit)
	if !ok {
		return q, &UnknownUnitError{Unit: q.Unit}
	}
	base := toBase(q.Value.Number(), from)
	to, ok := c.bestUnit(from.Kind, target, base)
	if !ok {
		// No unit of this kind in the target system; keep as is.
		return q, nil
	}
	return Quantity{Value: convertValue(q.Value, from, to), Unit: to.Name}, nil
}

// Add sums two quantities, converting b into a's unit first. The result
// stays in a's unit.
func (c *Converter) Add(a, b Quantity) (Quantity, error) {
	if !a.Value.IsNumeric() || !b.Value.IsNumeric() {
		return a, ErrTextValue
	}
	if a.Unit == b.Unit {
		return Quantity{Value: addValues(a.Value, b.Value), Unit: a.Unit}, nil
	}
	conv, err := c.ConvertUnit(b, a.Unit)
	if err != nil {
		return a, err
	}
	return Quantity{Value: addValues(a.Value, conv.Value), Unit: a.Unit}, nil
}

// Fit re-selects the nicest unit for q inside its own system. Quantities
// with unknown units are returned unchanged.
func (c *Converter) Fit(q Quantity) Quantity {
	if !q.Value.IsNumeric() {
		return q
	}
	from, ok := c.Lookup(q.Unit)
	if !ok || from.System == SystemNone {
		return q
	}
	fitted, err := c.ConvertSystem(q, from.System)
	if err != nil {
		return q
	}
	return fitted
}

func (c *Converter) bestUnit(kind UnitKind, sys System, base float64) (UnitDef, bool) {
	var best UnitDef
	var smallest UnitDef
	found := false
	haveSmallest := false
	for _, u := range c.units {
		if u.Kind != kind || u.System != sys || u.Factor == 0 {
			continue
		}
		if !haveSmallest || u.Factor < smallest.Factor {
			smallest = u
			haveSmallest = true
		}
		if fromBase(base, u) >= 1 {
			if !found || u.Factor > best.Factor {
				best = u
				found = true
			}
		}
	}
	if found {
		return best, true
	}
	return smallest, haveSmallest
}

func convertValue(v Value, from, to UnitDef) Value {
	if v.Kind() == KindRange {
		start, end := v.Range()
		return RangeValue(fromBase(toBase(start, from), to), fromBase(toBase(end, from), to))
	}
	return NumberValue(fromBase(toBase(v.Number(), from), to))
}

func addValues(a, b Value) Value {
	if a.Kind() == KindRange || b.Kind() == KindRange {
		as, ae := rangeOf(a)
		bs, be := rangeOf(b)
		return RangeValue(as+bs, ae+be)
	}
	return NumberValue(a.Number() + b.Number())
}

func rangeOf(v Value) (float64, float64) {
	if v.Kind() == KindRange {
		return v.Range()
	}
	return v.Number(), v.Number()
}

func toBase(v float64, u UnitDef) float64   { return v*u.Factor + u.Offset }
func fromBase(v float64, u UnitDef) float64 { return (v - u.Offset) / u.Factor }
