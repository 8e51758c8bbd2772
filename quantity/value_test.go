package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue_Number(t *testing.T) {
	v := ParseValue("200")
	assert.Equal(t, KindNumber, v.Kind())
	assert.Equal(t, 200.0, v.Number())

	v = ParseValue("0.5")
	assert.Equal(t, KindNumber, v.Kind())
	assert.Equal(t, 0.5, v.Number())
}

func TestParseValue_Fraction(t *testing.T) {
	v := ParseValue("1/2")
	assert.Equal(t, KindNumber, v.Kind())
	assert.Equal(t, 0.5, v.Number())

	v = ParseValue("3/4")
	assert.Equal(t, 0.75, v.Number())
}

func TestParseValue_Range(t *testing.T) {
	v := ParseValue("2-3")
	assert.Equal(t, KindRange, v.Kind())
	start, end := v.Range()
	assert.Equal(t, 2.0, start)
	assert.Equal(t, 3.0, end)
}

func TestParseValue_TextFallback(t *testing.T) {
	for _, raw := range []string{"a pinch", "some", "2 to 3", "1/0"} {
		v := ParseValue(raw)
		assert.Equal(t, KindText, v.Kind(), raw)
		assert.Equal(t, raw, v.Text())
	}
}

func TestValue_Scale(t *testing.T) {
	assert.Equal(t, 400.0, NumberValue(200).Scale(2).Number())

	r := RangeValue(1, 2).Scale(3)
	start, end := r.Range()
	assert.Equal(t, 3.0, start)
	assert.Equal(t, 6.0, end)

	txt := TextValue("a pinch").Scale(10)
	assert.Equal(t, KindText, txt.Kind())
	assert.Equal(t, "a pinch", txt.Text())
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "200", NumberValue(200).String())
	assert.Equal(t, "0.5", NumberValue(0.5).String())
	assert.Equal(t, "0.333", ParseValue("1/3").String())
	assert.Equal(t, "2-3", RangeValue(2, 3).String())
	assert.Equal(t, "a pinch", TextValue("a pinch").String())
}

func TestQuantity_String(t *testing.T) {
	q := Quantity{Value: NumberValue(200), Unit: "g"}
	assert.Equal(t, "200 g", q.String())

	q = Quantity{Value: NumberValue(3)}
	assert.Equal(t, "3", q.String())
}
