package literals

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/diwise/case-mapping/pkg/caseuco/errors"
	"github.com/diwise/case-mapping/pkg/caseuco/types"
)

// Kind is the declared kind of a literal valued field
type Kind int

const (
	String Kind = iota
	DateTime
	Boolean
	Integer
	NonNegativeInteger
	Decimal
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case DateTime:
		return "datetime"
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	case NonNegativeInteger:
		return "nonnegative_integer"
	case Decimal:
		return "decimal"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

const (
	XSDString             string = "xsd:string"
	XSDDateTime           string = "xsd:dateTime"
	XSDBoolean            string = "xsd:boolean"
	XSDInteger            string = "xsd:integer"
	XSDLong               string = "xsd:long"
	XSDNonNegativeInteger string = "xsd:nonNegativeInteger"
	XSDDecimal            string = "xsd:decimal"
)

// Width selects the datatype used for the Integer kind
type Width int

const (
	DefaultWidth Width = iota
	LongWidth
)

// ParseIntegerWidth accepts the configuration values "default" and "long".
// An empty string selects the default width.
func ParseIntegerWidth(value string) (Width, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "default":
		return DefaultWidth, nil
	case "long":
		return LongWidth, nil
	}
	return DefaultWidth, errors.NewConfigurationError(fmt.Sprintf("unknown integer width %q, expected \"default\" or \"long\"", value))
}

type Coercer struct {
	width Width
}

type CoercerOption func(c *Coercer)

func IntegerWidth(width Width) CoercerOption {
	return func(c *Coercer) {
		c.width = width
	}
}

func New(options ...CoercerOption) *Coercer {
	c := &Coercer{width: DefaultWidth}
	for _, option := range options {
		option(c)
	}
	return c
}

var defaultCoercer = New()

// Default returns a Coercer using the default integer width
func Default() *Coercer {
	return defaultCoercer
}

// Datatype returns the ontology datatype tag used for kind. For String this is
// xsd:string even though string literals are emitted without a tag.
func (c *Coercer) Datatype(kind Kind) string {
	switch kind {
	case String:
		return XSDString
	case DateTime:
		return XSDDateTime
	case Boolean:
		return XSDBoolean
	case Integer:
		if c.width == LongWidth {
			return XSDLong
		}
		return XSDInteger
	case NonNegativeInteger:
		return XSDNonNegativeInteger
	case Decimal:
		return XSDDecimal
	}
	return ""
}

// KindOf maps a datatype tag back to the kind that produces it
func (c *Coercer) KindOf(datatype string) (Kind, bool) {
	switch datatype {
	case XSDString:
		return String, true
	case XSDDateTime:
		return DateTime, true
	case XSDBoolean:
		return Boolean, true
	case XSDInteger, XSDLong:
		return Integer, true
	case XSDNonNegativeInteger:
		return NonNegativeInteger, true
	case XSDDecimal:
		return Decimal, true
	}
	return String, false
}

// Literal is a typed scalar value. The zero value is an empty string literal.
type Literal struct {
	kind     Kind
	datatype string
	val      any
	lexical  string
}

func (l Literal) Kind() Kind {
	return l.kind
}

func (l Literal) Datatype() string {
	return l.datatype
}

// Value returns the native value: string, time.Time, bool, int64 or float64
func (l Literal) Value() any {
	return l.val
}

// Lexical returns the form used as the literal's @value
func (l Literal) Lexical() string {
	return l.lexical
}

// Equal reports value equality. Two literals are equal when they share kind,
// datatype and lexical form.
func (l Literal) Equal(other Literal) bool {
	return l.kind == other.kind && l.datatype == other.datatype && l.lexical == other.lexical
}

func (l Literal) MarshalJSON() ([]byte, error) {
	if l.kind == String {
		return json.Marshal(l.lexical)
	}

	val := struct {
		Type  string `json:"@type"`
		Value string `json:"@value"`
	}{
		Type:  l.datatype,
		Value: l.lexical,
	}

	return json.Marshal(&val)
}

var _ types.Literal = Literal{}

// Coerce converts raw into a literal of the given kind. field is only used to
// name the offending field in returned errors.
func (c *Coercer) Coerce(kind Kind, field string, raw any) (Literal, error) {
	if types.IsAbsent(raw) {
		return Literal{}, errors.NewShapeError(field, "a value is required")
	}

	raw = deref(raw)

	switch kind {
	case String:
		s, ok := stringOf(raw)
		if !ok {
			return Literal{}, errors.NewShapeError(field, fmt.Sprintf("values of type %T have no string form", raw))
		}
		return Literal{kind: String, datatype: XSDString, val: s, lexical: s}, nil

	case DateTime:
		t, err := timeOf(field, raw)
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: DateTime, datatype: XSDDateTime, val: t, lexical: t.Format(time.RFC3339Nano)}, nil

	case Boolean:
		b, err := boolOf(field, raw)
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: Boolean, datatype: XSDBoolean, val: b, lexical: strconv.FormatBool(b)}, nil

	case Integer, NonNegativeInteger:
		i, err := intOf(field, raw)
		if err != nil {
			return Literal{}, err
		}
		if kind == NonNegativeInteger && i < 0 {
			return Literal{}, errors.NewRangeError(field, fmt.Sprintf("value %d is negative", i))
		}
		return Literal{kind: kind, datatype: c.Datatype(kind), val: i, lexical: strconv.FormatInt(i, 10)}, nil

	case Decimal:
		f, err := floatOf(field, raw)
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: Decimal, datatype: XSDDecimal, val: f, lexical: FormatDecimal(f)}, nil
	}

	return Literal{}, errors.NewShapeError(field, fmt.Sprintf("unsupported literal kind %s", kind))
}

// CoerceMany coerces every element of the slice or array raws, preserving
// order. Absent elements are dropped. The first failing element fails the call.
func (c *Coercer) CoerceMany(kind Kind, field string, raws any) ([]Literal, error) {
	if types.IsAbsent(raws) {
		return nil, nil
	}

	rv := reflect.ValueOf(raws)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, errors.NewShapeError(field, fmt.Sprintf("expected a list of values, got %T", raws))
	}

	result := make([]Literal, 0, rv.Len())

	for idx := range rv.Len() {
		element := rv.Index(idx).Interface()
		if types.IsAbsent(element) {
			continue
		}

		l, err := c.Coerce(kind, fmt.Sprintf("%s[%d]", field, idx), element)
		if err != nil {
			return nil, err
		}

		result = append(result, l)
	}

	return result, nil
}

// Unmarshal rebuilds a literal of the given kind from its serialized form, i.e.
// a {"@type", "@value"} object. String literals may also be a bare string.
func (c *Coercer) Unmarshal(kind Kind, field string, body any) (Literal, error) {
	if kind == String {
		if s, ok := body.(string); ok {
			return c.Coerce(String, field, s)
		}
	}

	object, ok := body.(map[string]any)
	if !ok {
		return Literal{}, errors.NewShapeError(field, fmt.Sprintf("literal objects must be maps, got %T", body))
	}

	objectValue, ok := object["@value"]
	if !ok {
		return Literal{}, errors.NewShapeError(field, "literal objects without a @value attribute are not supported")
	}

	if objectType, ok := object["@type"]; ok {
		objectTypeStr, ok := objectType.(string)
		if !ok {
			return Literal{}, errors.NewShapeError(field, "literal object @type not convertible to string")
		}

		if objectTypeStr != c.Datatype(kind) {
			return Literal{}, errors.NewShapeError(field, fmt.Sprintf("literal of type %s can not be read as %s", objectTypeStr, kind))
		}
	} else if kind != String {
		return Literal{}, errors.NewShapeError(field, "literal objects without a @type attribute are not supported")
	}

	return c.Coerce(kind, field, objectValue)
}

// FormatDecimal renders f as the shortest decimal that reads back as f,
// without an exponent.
func FormatDecimal(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv.Interface()
}

func stringOf(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case time.Time:
		return v.Format(time.RFC3339Nano), true
	case float64:
		return FormatDecimal(v), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case bool:
		return strconv.FormatBool(v), true
	case fmt.Stringer:
		return v.String(), true
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	}

	return "", false
}

func timeOf(field string, raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := parseTimestamp(v)
		if err != nil {
			return time.Time{}, errors.NewShapeError(field, fmt.Sprintf("%q is not a recognized timestamp", v))
		}
		return t, nil
	}

	return time.Time{}, errors.NewShapeError(field, fmt.Sprintf("values of type %T can not be interpreted as a timestamp", raw))
}

func parseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	// bare numbers are read by dateparse as epoch offsets, which we do not accept
	if _, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Time{}, fmt.Errorf("numeric timestamps are not supported")
	}

	t, err := dateparse.ParseStrict(value)
	if err != nil {
		return time.Time{}, err
	}

	// unknown zone abbreviations are parsed as a zero offset in a fabricated zone
	if name, offset := t.Zone(); offset == 0 && name != "" && !utcZoneNames[name] {
		return time.Time{}, fmt.Errorf("time zone %q has no known offset", name)
	}

	return t, nil
}

var utcZoneNames = map[string]bool{"UTC": true, "GMT": true, "UT": true, "Z": true}

func boolOf(field string, raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, errors.NewShapeError(field, fmt.Sprintf("%q is not a boolean", v))
		}
		return b, nil
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0, nil
	}

	return false, errors.NewShapeError(field, fmt.Sprintf("values of type %T can not be interpreted as a boolean", raw))
}

func intOf(field string, raw any) (int64, error) {
	switch v := raw.(type) {
	case json.Number:
		return parseInt(field, v.String())
	case string:
		return parseInt(field, v)
	case float64:
		return integralFloat(field, v)
	case float32:
		return integralFloat(field, float64(v))
	}

	rv := reflect.ValueOf(raw)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, errors.NewRangeError(field, fmt.Sprintf("value %d exceeds the 64 bit integer range", u))
		}
		return int64(u), nil
	case reflect.String:
		return parseInt(field, rv.String())
	}

	return 0, errors.NewShapeError(field, fmt.Sprintf("values of type %T can not be interpreted as an integer", raw))
}

func parseInt(field, value string) (int64, error) {
	i, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, errors.NewRangeError(field, fmt.Sprintf("%q exceeds the 64 bit integer range", value))
		}
		return 0, errors.NewShapeError(field, fmt.Sprintf("%q is not an integer", value))
	}
	return i, nil
}

func integralFloat(field string, f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.NewRangeError(field, fmt.Sprintf("%v is not a finite number", f))
	}
	if f != math.Trunc(f) {
		return 0, errors.NewShapeError(field, fmt.Sprintf("%v is not an integral value", f))
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errors.NewRangeError(field, fmt.Sprintf("%v exceeds the 64 bit integer range", f))
	}
	return int64(f), nil
}

func floatOf(field string, raw any) (float64, error) {
	var f float64

	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		// go through the 32 bit shortest form so that 0.1 stays 0.1
		f, _ = strconv.ParseFloat(strconv.FormatFloat(float64(v), 'f', -1, 32), 64)
	case json.Number:
		parsed, err := parseFloat(field, v.String())
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		parsed, err := parseFloat(field, v)
		if err != nil {
			return 0, err
		}
		f = parsed
	default:
		rv := reflect.ValueOf(raw)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		default:
			return 0, errors.NewShapeError(field, fmt.Sprintf("values of type %T can not be interpreted as a decimal", raw))
		}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.NewRangeError(field, fmt.Sprintf("%v is not a finite decimal", f))
	}

	return f, nil
}

func parseFloat(field, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return 0, errors.NewRangeError(field, fmt.Sprintf("%q is out of range", value))
		}
		return 0, errors.NewShapeError(field, fmt.Sprintf("%q is not a decimal", value))
	}
	return f, nil
}
