// Package textconv converts scalar property values to and from their
// text representation. Conversion is kind-based: named types (device
// enums such as a motor state) are normalized to their underlying
// integer kind before formatting or parsing.
//
// Both directions work against caller-provided fixed-size buffers and
// report failure as a boolean, never as a partial write.
// See docs/ARCHITECTURE.md § Text Conversion.
package textconv

import (
	"reflect"
	"strconv"
)

// Options carries formatting options. The zero value selects the
// defaults (base 10, shortest float representation) and is what every
// caller passes today.
type Options struct {
	// Precision is the number of digits after the decimal point for
	// floating point values. Zero or negative means shortest
	// representation.
	Precision int
}

// scratchSize bounds the formatted length of any supported scalar.
// The longest is a float64 at full shortest-form precision (24 bytes).
const scratchSize = 32

// Format writes the text form of v into dst and returns the number of
// bytes written. It returns (0, false) if v's kind is unsupported or if
// dst is too small; dst contents are unspecified on failure.
func Format(dst []byte, v any, opts Options) (int, bool) {
	rv := reflect.ValueOf(v)
	var scratch [scratchSize]byte
	var out []byte

	switch rv.Kind() {
	case reflect.Bool:
		out = strconv.AppendBool(scratch[:0], rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		out = strconv.AppendInt(scratch[:0], rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		out = strconv.AppendUint(scratch[:0], rv.Uint(), 10)
	case reflect.Float32:
		out = strconv.AppendFloat(scratch[:0], rv.Float(), 'g', precisionOf(opts), 32)
	case reflect.Float64:
		out = strconv.AppendFloat(scratch[:0], rv.Float(), 'g', precisionOf(opts), 64)
	default:
		return 0, false
	}

	if len(out) > len(dst) {
		return 0, false
	}
	copy(dst, out)
	return len(out), true
}

// Parse reads the text in src into the scalar pointed to by out. It
// returns false on malformed text, on range overflow for the target
// kind, or if out is not a non-nil pointer to a supported scalar. The
// target is not modified on failure.
func Parse(src []byte, out any, opts Options) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return false
	}
	elem := rv.Elem()
	s := string(src)

	switch elem.Kind() {
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false
		}
		elem.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(s, 10, elem.Type().Bits())
		if err != nil {
			return false
		}
		elem.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(s, 10, elem.Type().Bits())
		if err != nil {
			return false
		}
		elem.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, elem.Type().Bits())
		if err != nil {
			return false
		}
		elem.SetFloat(f)
	default:
		return false
	}
	return true
}

func precisionOf(opts Options) int {
	if opts.Precision <= 0 {
		return -1
	}
	return opts.Precision
}
