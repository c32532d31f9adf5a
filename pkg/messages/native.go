package messages

import (
	"github.com/linkedin/goavro/v2"

	"github.com/bardasz/etp/pkg/etperr"
)

// Avro full names referenced by the model.
const (
	nsDatatypes   = "Energistics.Etp.v12.Datatypes."
	nsChannelData = nsDatatypes + "ChannelData."
	nsObject      = nsDatatypes + "Object."

	typeErrorInfo        = nsDatatypes + "ErrorInfo"
	typeUuid             = nsDatatypes + "Uuid"
	typePassIndexedDepth = nsChannelData + "PassIndexedDepth"
	typeActiveStatusKind = nsObject + "ActiveStatusKind"
)

// unionValue splits a decoded union into its branch name and value.
// The null branch reports ("null", nil).
func unionValue(v any) (string, any, bool) {
	if v == nil {
		return "null", nil, true
	}
	m, ok := v.(map[string]any)
	if !ok || len(m) != 1 {
		return "", nil, false
	}
	for k, x := range m {
		return k, x, true
	}
	return "", nil, false
}

// fieldReader pulls typed fields out of a decoded record. The first shape
// mismatch is kept in err and later reads return zero values.
type fieldReader struct {
	name string
	rec  map[string]any
	err  error
}

func newReader(name string, v any) *fieldReader {
	r := &fieldReader{name: name}
	m, ok := v.(map[string]any)
	if !ok {
		r.err = etperr.New("E102").WithDetailf("%s: expected record, got %T", name, v)
		return r
	}
	r.rec = m
	return r
}

func (r *fieldReader) fail(field, want string, got any) {
	if r.err == nil {
		r.err = etperr.New("E102").WithDetailf("%s.%s: expected %s, got %T", r.name, field, want, got)
	}
}

func (r *fieldReader) setErr(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *fieldReader) get(field string) (any, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.rec[field]
	return v, ok
}

func (r *fieldReader) Str(field string) string {
	return r.StrOr(field, "")
}

func (r *fieldReader) StrOr(field, def string) string {
	v, ok := r.get(field)
	if !ok {
		return def
	}
	s, ok := v.(string)
	if !ok {
		r.fail(field, "string", v)
	}
	return s
}

func (r *fieldReader) Bool(field string) bool {
	return r.BoolOr(field, false)
}

func (r *fieldReader) BoolOr(field string, def bool) bool {
	v, ok := r.get(field)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		r.fail(field, "boolean", v)
	}
	return b
}

func (r *fieldReader) Int32(field string) int32 {
	v, ok := r.get(field)
	if !ok {
		return 0
	}
	n, ok := toInt32(v)
	if !ok {
		r.fail(field, "int", v)
	}
	return n
}

func (r *fieldReader) Int64(field string) int64 {
	v, ok := r.get(field)
	if !ok {
		return 0
	}
	n, ok := toInt64(v)
	if !ok {
		r.fail(field, "long", v)
	}
	return n
}

func (r *fieldReader) Float64(field string) float64 {
	v, ok := r.get(field)
	if !ok {
		return 0
	}
	switch f := v.(type) {
	case float64:
		return f
	case float32:
		return float64(f)
	}
	r.fail(field, "double", v)
	return 0
}

func (r *fieldReader) Bytes(field string) []byte {
	v, ok := r.get(field)
	if !ok || v == nil {
		return nil
	}
	b, ok := v.([]byte)
	if !ok {
		r.fail(field, "bytes", v)
	}
	return b
}

func (r *fieldReader) Uuid(field string) Uuid {
	v, ok := r.get(field)
	if !ok {
		return Uuid{}
	}
	u, err := UuidFromNative(v)
	if err != nil {
		r.fail(field, "Uuid", v)
	}
	return u
}

// OptionalInt32 reads a ["null","int"] field.
func (r *fieldReader) OptionalInt32(field string) *int32 {
	v, ok := r.get(field)
	if !ok {
		return nil
	}
	branch, x, ok := unionValue(v)
	if !ok {
		r.fail(field, "union", v)
		return nil
	}
	if branch == "null" {
		return nil
	}
	n, ok := toInt32(x)
	if !ok {
		r.fail(field, "int", x)
		return nil
	}
	return &n
}

// OptionalInt64 reads a ["null","long"] field.
func (r *fieldReader) OptionalInt64(field string) *int64 {
	v, ok := r.get(field)
	if !ok {
		return nil
	}
	branch, x, ok := unionValue(v)
	if !ok {
		r.fail(field, "union", v)
		return nil
	}
	if branch == "null" {
		return nil
	}
	n, ok := toInt64(x)
	if !ok {
		r.fail(field, "long", x)
		return nil
	}
	return &n
}

// Union reads a union field as (branch, value).
func (r *fieldReader) Union(field string) (string, any) {
	v, ok := r.get(field)
	if !ok {
		return "null", nil
	}
	branch, x, ok := unionValue(v)
	if !ok {
		r.fail(field, "union", v)
		return "", nil
	}
	return branch, x
}

func (r *fieldReader) Array(field string) []any {
	v, ok := r.get(field)
	if !ok || v == nil {
		return nil
	}
	a, ok := v.([]any)
	if !ok {
		r.fail(field, "array", v)
	}
	return a
}

func (r *fieldReader) Map(field string) map[string]any {
	v, ok := r.get(field)
	if !ok || v == nil {
		return nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		r.fail(field, "map", v)
	}
	return m
}

func (r *fieldReader) Record(field string) any {
	v, _ := r.get(field)
	return v
}

func (r *fieldReader) Strings(field string) []string {
	a := r.Array(field)
	if a == nil {
		return nil
	}
	out := make([]string, 0, len(a))
	for _, x := range a {
		s, ok := x.(string)
		if !ok {
			r.fail(field, "string", x)
			return nil
		}
		out = append(out, s)
	}
	return out
}

func (r *fieldReader) Longs(field string) []int64 {
	a := r.Array(field)
	if a == nil {
		return nil
	}
	out := make([]int64, 0, len(a))
	for _, x := range a {
		n, ok := toInt64(x)
		if !ok {
			r.fail(field, "long", x)
			return nil
		}
		out = append(out, n)
	}
	return out
}

func (r *fieldReader) StringMap(field string) map[string]string {
	m := r.Map(field)
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, x := range m {
		s, ok := x.(string)
		if !ok {
			r.fail(field, "string", x)
			return nil
		}
		out[k] = s
	}
	return out
}

func (r *fieldReader) DataValueMap(field string) map[string]DataValue {
	m := r.Map(field)
	if m == nil {
		return nil
	}
	out := make(map[string]DataValue, len(m))
	for k, x := range m {
		dv, err := DataValueFromNative(x)
		if err != nil {
			r.setErr(err)
			return nil
		}
		out[k] = dv
	}
	return out
}

func toInt32(v any) (int32, bool) {
	switch n := v.(type) {
	case int32:
		return n, true
	case int:
		return int32(n), true
	case int64:
		return int32(n), true
	}
	return 0, false
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int:
		return int64(n), true
	}
	return 0, false
}

func stringsNative(s []string) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func longsNative(s []int64) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}

func stringMapNative(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func dataValueMapNative(m map[string]DataValue) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = DataValueNative(v)
	}
	return out
}

func optionalInt32Native(p *int32) any {
	if p == nil {
		return nil
	}
	return goavro.Union("int", *p)
}

func optionalInt64Native(p *int64) any {
	if p == nil {
		return nil
	}
	return goavro.Union("long", *p)
}
