package messages

import (
	"github.com/linkedin/goavro/v2"

	"github.com/bardasz/etp/pkg/etperr"
)

// DataValue is the ETP polymorphic value: one of NullValue, BooleanValue,
// IntValue, LongValue, FloatValue, DoubleValue, StringValue, the ArrayOf*
// types, BytesValue or AnySparseArray.
type DataValue interface {
	isDataValue()
}

// IndexValue is a channel index: NullValue, LongValue, DoubleValue or
// PassIndexedDepth.
type IndexValue interface {
	isIndexValue()
}

// AnyArray is a homogeneous array: ArrayOfBoolean, ArrayOfInt, ArrayOfLong,
// ArrayOfFloat, ArrayOfDouble, ArrayOfString or BytesValue.
type AnyArray interface {
	isAnyArray()
}

type (
	NullValue    struct{}
	BooleanValue bool
	IntValue     int32
	LongValue    int64
	FloatValue   float32
	DoubleValue  float64
	StringValue  string
	BytesValue   []byte

	ArrayOfBoolean         []bool
	ArrayOfNullableBoolean []*bool
	ArrayOfInt             []int32
	ArrayOfNullableInt     []*int32
	ArrayOfLong            []int64
	ArrayOfNullableLong    []*int64
	ArrayOfFloat           []float32
	ArrayOfDouble          []float64
	ArrayOfString          []string
	ArrayOfBytes           [][]byte

	// AnySparseArray is a list of slices placed at explicit offsets.
	AnySparseArray []AnySubarray
)

// AnySubarray is one slice of an AnySparseArray.
type AnySubarray struct {
	Start int64
	Slice AnyArray
}

// PassDirection is the logging direction of a pass.
type PassDirection string

const (
	PassUp            PassDirection = "Up"
	PassHoldingSteady PassDirection = "HoldingSteady"
	PassDown          PassDirection = "Down"
)

// PassIndexedDepth is a depth index qualified by pass number and direction.
type PassIndexedDepth struct {
	Pass      int64
	Direction PassDirection
	Depth     float64
}

func (NullValue) isDataValue()              {}
func (BooleanValue) isDataValue()           {}
func (IntValue) isDataValue()               {}
func (LongValue) isDataValue()              {}
func (FloatValue) isDataValue()             {}
func (DoubleValue) isDataValue()            {}
func (StringValue) isDataValue()            {}
func (BytesValue) isDataValue()             {}
func (ArrayOfBoolean) isDataValue()         {}
func (ArrayOfNullableBoolean) isDataValue() {}
func (ArrayOfInt) isDataValue()             {}
func (ArrayOfNullableInt) isDataValue()     {}
func (ArrayOfLong) isDataValue()            {}
func (ArrayOfNullableLong) isDataValue()    {}
func (ArrayOfFloat) isDataValue()           {}
func (ArrayOfDouble) isDataValue()          {}
func (ArrayOfString) isDataValue()          {}
func (ArrayOfBytes) isDataValue()           {}
func (AnySparseArray) isDataValue()         {}

func (NullValue) isIndexValue()        {}
func (LongValue) isIndexValue()        {}
func (DoubleValue) isIndexValue()      {}
func (PassIndexedDepth) isIndexValue() {}

func (ArrayOfBoolean) isAnyArray() {}
func (ArrayOfInt) isAnyArray()     {}
func (ArrayOfLong) isAnyArray()    {}
func (ArrayOfFloat) isAnyArray()   {}
func (ArrayOfDouble) isAnyArray()  {}
func (ArrayOfString) isAnyArray()  {}
func (BytesValue) isAnyArray()     {}

// Branch names of the union members, as goavro reports them.
const (
	branchNull                   = "null"
	branchBoolean                = "boolean"
	branchInt                    = "int"
	branchLong                   = "long"
	branchFloat                  = "float"
	branchDouble                 = "double"
	branchString                 = "string"
	branchBytes                  = "bytes"
	branchArrayOfBoolean         = nsDatatypes + "ArrayOfBoolean"
	branchArrayOfNullableBoolean = nsDatatypes + "ArrayOfNullableBoolean"
	branchArrayOfInt             = nsDatatypes + "ArrayOfInt"
	branchArrayOfNullableInt     = nsDatatypes + "ArrayOfNullableInt"
	branchArrayOfLong            = nsDatatypes + "ArrayOfLong"
	branchArrayOfNullableLong    = nsDatatypes + "ArrayOfNullableLong"
	branchArrayOfFloat           = nsDatatypes + "ArrayOfFloat"
	branchArrayOfDouble          = nsDatatypes + "ArrayOfDouble"
	branchArrayOfString          = nsDatatypes + "ArrayOfString"
	branchArrayOfBytes           = nsDatatypes + "ArrayOfBytes"
	branchAnySparseArray         = nsDatatypes + "AnySparseArray"
)

func values(items []any) map[string]any {
	return map[string]any{"values": items}
}

func nullable[T any](p *T, branch string) any {
	if p == nil {
		return nil
	}
	return goavro.Union(branch, *p)
}

// dataValueUnion returns the union member for v without the DataValue record wrapper.
func dataValueUnion(v DataValue) any {
	switch x := v.(type) {
	case nil, NullValue:
		return nil
	case BooleanValue:
		return goavro.Union(branchBoolean, bool(x))
	case IntValue:
		return goavro.Union(branchInt, int32(x))
	case LongValue:
		return goavro.Union(branchLong, int64(x))
	case FloatValue:
		return goavro.Union(branchFloat, float32(x))
	case DoubleValue:
		return goavro.Union(branchDouble, float64(x))
	case StringValue:
		return goavro.Union(branchString, string(x))
	case BytesValue:
		return goavro.Union(branchBytes, []byte(x))
	case ArrayOfNullableBoolean:
		items := make([]any, len(x))
		for i, p := range x {
			items[i] = nullable(p, branchBoolean)
		}
		return goavro.Union(branchArrayOfNullableBoolean, values(items))
	case ArrayOfNullableInt:
		items := make([]any, len(x))
		for i, p := range x {
			items[i] = nullable(p, branchInt)
		}
		return goavro.Union(branchArrayOfNullableInt, values(items))
	case ArrayOfNullableLong:
		items := make([]any, len(x))
		for i, p := range x {
			items[i] = nullable(p, branchLong)
		}
		return goavro.Union(branchArrayOfNullableLong, values(items))
	case ArrayOfBytes:
		items := make([]any, len(x))
		for i, b := range x {
			items[i] = b
		}
		return goavro.Union(branchArrayOfBytes, values(items))
	case AnySparseArray:
		slices := make([]any, len(x))
		for i, s := range x {
			slices[i] = map[string]any{
				"start": s.Start,
				"slice": AnyArrayNative(s.Slice),
			}
		}
		return goavro.Union(branchAnySparseArray, map[string]any{"slices": slices})
	case AnyArray:
		return anyArrayUnion(x)
	}
	return nil
}

// anyArrayUnion encodes the members DataValue shares with AnyArray.
func anyArrayUnion(a AnyArray) any {
	switch x := a.(type) {
	case ArrayOfBoolean:
		items := make([]any, len(x))
		for i, v := range x {
			items[i] = v
		}
		return goavro.Union(branchArrayOfBoolean, values(items))
	case ArrayOfInt:
		items := make([]any, len(x))
		for i, v := range x {
			items[i] = v
		}
		return goavro.Union(branchArrayOfInt, values(items))
	case ArrayOfLong:
		return goavro.Union(branchArrayOfLong, values(longsNative(x)))
	case ArrayOfFloat:
		items := make([]any, len(x))
		for i, v := range x {
			items[i] = v
		}
		return goavro.Union(branchArrayOfFloat, values(items))
	case ArrayOfDouble:
		items := make([]any, len(x))
		for i, v := range x {
			items[i] = v
		}
		return goavro.Union(branchArrayOfDouble, values(items))
	case ArrayOfString:
		return goavro.Union(branchArrayOfString, values(stringsNative(x)))
	case BytesValue:
		return goavro.Union(branchBytes, []byte(x))
	}
	return nil
}

// DataValueNative returns the native DataValue record for v.
func DataValueNative(v DataValue) map[string]any {
	return map[string]any{"item": dataValueUnion(v)}
}

// AnyArrayNative returns the native AnyArray record for a.
func AnyArrayNative(a AnyArray) map[string]any {
	return map[string]any{"item": anyArrayUnion(a)}
}

// IndexValueNative returns the native IndexValue record for v.
func IndexValueNative(v IndexValue) map[string]any {
	var item any
	switch x := v.(type) {
	case LongValue:
		item = goavro.Union(branchLong, int64(x))
	case DoubleValue:
		item = goavro.Union(branchDouble, float64(x))
	case PassIndexedDepth:
		item = goavro.Union(typePassIndexedDepth, x.Native())
	}
	return map[string]any{"item": item}
}

// Native returns the native PassIndexedDepth record.
func (p PassIndexedDepth) Native() map[string]any {
	return map[string]any{
		"pass":      p.Pass,
		"direction": string(p.Direction),
		"depth":     p.Depth,
	}
}

// PassIndexedDepthFromNative converts a decoded PassIndexedDepth record.
func PassIndexedDepthFromNative(v any) (PassIndexedDepth, error) {
	r := newReader("PassIndexedDepth", v)
	p := PassIndexedDepth{
		Pass:      r.Int64("pass"),
		Direction: PassDirection(r.Str("direction")),
		Depth:     r.Float64("depth"),
	}
	return p, r.err
}

func unionError(typ, branch string) error {
	return etperr.New("E102").WithDetailf("%s: unexpected union branch %q", typ, branch)
}

// valuesOf unwraps an ArrayOf* record.
func valuesOf(typ string, v any) ([]any, error) {
	r := newReader(typ, v)
	items := r.Array("values")
	return items, r.err
}

// DataValueFromNative converts a decoded DataValue record. The variant is
// chosen by the wire branch.
func DataValueFromNative(v any) (DataValue, error) {
	r := newReader("DataValue", v)
	branch, x := r.Union("item")
	if r.err != nil {
		return nil, r.err
	}
	return dataValueFromUnion(branch, x)
}

func dataValueFromUnion(branch string, x any) (DataValue, error) {
	switch branch {
	case branchNull:
		return NullValue{}, nil
	case branchBoolean:
		b, ok := x.(bool)
		if !ok {
			return nil, unionError("DataValue", branch)
		}
		return BooleanValue(b), nil
	case branchInt:
		n, ok := toInt32(x)
		if !ok {
			return nil, unionError("DataValue", branch)
		}
		return IntValue(n), nil
	case branchLong:
		n, ok := toInt64(x)
		if !ok {
			return nil, unionError("DataValue", branch)
		}
		return LongValue(n), nil
	case branchFloat:
		f, ok := x.(float32)
		if !ok {
			return nil, unionError("DataValue", branch)
		}
		return FloatValue(f), nil
	case branchDouble:
		f, ok := x.(float64)
		if !ok {
			return nil, unionError("DataValue", branch)
		}
		return DoubleValue(f), nil
	case branchString:
		s, ok := x.(string)
		if !ok {
			return nil, unionError("DataValue", branch)
		}
		return StringValue(s), nil
	case branchArrayOfNullableBoolean:
		items, err := valuesOf("ArrayOfNullableBoolean", x)
		if err != nil {
			return nil, err
		}
		out := make(ArrayOfNullableBoolean, len(items))
		for i, it := range items {
			b, val, ok := unionValue(it)
			if !ok {
				return nil, unionError("ArrayOfNullableBoolean", b)
			}
			if b == branchNull {
				continue
			}
			bv, ok := val.(bool)
			if !ok {
				return nil, unionError("ArrayOfNullableBoolean", b)
			}
			out[i] = &bv
		}
		return out, nil
	case branchArrayOfNullableInt:
		items, err := valuesOf("ArrayOfNullableInt", x)
		if err != nil {
			return nil, err
		}
		out := make(ArrayOfNullableInt, len(items))
		for i, it := range items {
			b, val, ok := unionValue(it)
			if !ok {
				return nil, unionError("ArrayOfNullableInt", b)
			}
			if b == branchNull {
				continue
			}
			n, ok := toInt32(val)
			if !ok {
				return nil, unionError("ArrayOfNullableInt", b)
			}
			out[i] = &n
		}
		return out, nil
	case branchArrayOfNullableLong:
		items, err := valuesOf("ArrayOfNullableLong", x)
		if err != nil {
			return nil, err
		}
		out := make(ArrayOfNullableLong, len(items))
		for i, it := range items {
			b, val, ok := unionValue(it)
			if !ok {
				return nil, unionError("ArrayOfNullableLong", b)
			}
			if b == branchNull {
				continue
			}
			n, ok := toInt64(val)
			if !ok {
				return nil, unionError("ArrayOfNullableLong", b)
			}
			out[i] = &n
		}
		return out, nil
	case branchArrayOfBytes:
		items, err := valuesOf("ArrayOfBytes", x)
		if err != nil {
			return nil, err
		}
		out := make(ArrayOfBytes, len(items))
		for i, it := range items {
			b, ok := it.([]byte)
			if !ok {
				return nil, unionError("ArrayOfBytes", branch)
			}
			out[i] = b
		}
		return out, nil
	case branchAnySparseArray:
		r := newReader("AnySparseArray", x)
		slices := r.Array("slices")
		if r.err != nil {
			return nil, r.err
		}
		out := make(AnySparseArray, 0, len(slices))
		for _, s := range slices {
			sr := newReader("AnySubarray", s)
			start := sr.Int64("start")
			slice, err := AnyArrayFromNative(sr.Record("slice"))
			if sr.err != nil {
				return nil, sr.err
			}
			if err != nil {
				return nil, err
			}
			out = append(out, AnySubarray{Start: start, Slice: slice})
		}
		return out, nil
	}

	a, err := anyArrayFromUnion(branch, x)
	if err != nil {
		return nil, unionError("DataValue", branch)
	}
	return a.(DataValue), nil
}

// AnyArrayFromNative converts a decoded AnyArray record.
func AnyArrayFromNative(v any) (AnyArray, error) {
	r := newReader("AnyArray", v)
	branch, x := r.Union("item")
	if r.err != nil {
		return nil, r.err
	}
	return anyArrayFromUnion(branch, x)
}

func anyArrayFromUnion(branch string, x any) (AnyArray, error) {
	if branch == branchBytes {
		b, ok := x.([]byte)
		if !ok {
			return nil, unionError("AnyArray", branch)
		}
		return BytesValue(b), nil
	}

	items, err := valuesOf(branch, x)
	if err != nil {
		return nil, err
	}
	switch branch {
	case branchArrayOfBoolean:
		out := make(ArrayOfBoolean, len(items))
		for i, it := range items {
			b, ok := it.(bool)
			if !ok {
				return nil, unionError("ArrayOfBoolean", branch)
			}
			out[i] = b
		}
		return out, nil
	case branchArrayOfInt:
		out := make(ArrayOfInt, len(items))
		for i, it := range items {
			n, ok := toInt32(it)
			if !ok {
				return nil, unionError("ArrayOfInt", branch)
			}
			out[i] = n
		}
		return out, nil
	case branchArrayOfLong:
		out := make(ArrayOfLong, len(items))
		for i, it := range items {
			n, ok := toInt64(it)
			if !ok {
				return nil, unionError("ArrayOfLong", branch)
			}
			out[i] = n
		}
		return out, nil
	case branchArrayOfFloat:
		out := make(ArrayOfFloat, len(items))
		for i, it := range items {
			f, ok := it.(float32)
			if !ok {
				return nil, unionError("ArrayOfFloat", branch)
			}
			out[i] = f
		}
		return out, nil
	case branchArrayOfDouble:
		out := make(ArrayOfDouble, len(items))
		for i, it := range items {
			f, ok := it.(float64)
			if !ok {
				return nil, unionError("ArrayOfDouble", branch)
			}
			out[i] = f
		}
		return out, nil
	case branchArrayOfString:
		out := make(ArrayOfString, len(items))
		for i, it := range items {
			s, ok := it.(string)
			if !ok {
				return nil, unionError("ArrayOfString", branch)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, unionError("AnyArray", branch)
}

// IndexValueFromNative converts a decoded IndexValue record.
func IndexValueFromNative(v any) (IndexValue, error) {
	r := newReader("IndexValue", v)
	branch, x := r.Union("item")
	if r.err != nil {
		return nil, r.err
	}
	switch branch {
	case branchNull:
		return NullValue{}, nil
	case branchLong:
		n, ok := toInt64(x)
		if !ok {
			return nil, unionError("IndexValue", branch)
		}
		return LongValue(n), nil
	case branchDouble:
		f, ok := x.(float64)
		if !ok {
			return nil, unionError("IndexValue", branch)
		}
		return DoubleValue(f), nil
	case typePassIndexedDepth:
		return PassIndexedDepthFromNative(x)
	}
	return nil, unionError("IndexValue", branch)
}

// DataAttribute is an extra value attached to a data point.
type DataAttribute struct {
	AttributeID    int32
	AttributeValue DataValue
}

// Native returns the native DataAttribute record.
func (a DataAttribute) Native() map[string]any {
	return map[string]any{
		"attributeId":    a.AttributeID,
		"attributeValue": DataValueNative(a.AttributeValue),
	}
}

// DataAttributeFromNative converts a decoded DataAttribute record.
func DataAttributeFromNative(v any) (DataAttribute, error) {
	r := newReader("DataAttribute", v)
	a := DataAttribute{AttributeID: r.Int32("attributeId")}
	value := r.Record("attributeValue")
	if r.err != nil {
		return DataAttribute{}, r.err
	}
	dv, err := DataValueFromNative(value)
	if err != nil {
		return DataAttribute{}, err
	}
	a.AttributeValue = dv
	return a, nil
}
