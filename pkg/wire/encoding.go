package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Message is implemented by every request and response type. Encoding is
// protobuf binary, proto3 semantics: zero values are omitted and unknown
// fields are skipped on decode.
type Message interface {
	AppendWire(b []byte) []byte
	UnmarshalWire(b []byte) error
}

// Marshal encodes m into a fresh buffer.
func Marshal(m Message) []byte {
	return m.AppendWire(nil)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// int32 fields are sign extended like protoc-generated code does.
func appendInt32(b []byte, num protowire.Number, v int32) []byte {
	return appendVarint(b, num, uint64(int64(v)))
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	return appendVarint(b, num, uint64(v))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	return appendVarint(b, num, protowire.EncodeBool(v))
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendMessage(b []byte, num protowire.Number, m Message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.AppendWire(nil))
}

// field is one decoded (number, value) pair. Accessors check the wire type
// and record the first mismatch in the sink shared by a walk.
type field struct {
	num  protowire.Number
	typ  protowire.Type
	v    uint64
	raw  []byte
	sink *error
}

func (f field) fail(format string, args ...interface{}) {
	if *f.sink == nil {
		*f.sink = fmt.Errorf("field %d: "+format, append([]interface{}{f.num}, args...)...)
	}
}

func (f field) asUint64() uint64 {
	if f.typ != protowire.VarintType {
		f.fail("want varint, got wire type %d", f.typ)
		return 0
	}
	return f.v
}

func (f field) asUint32() uint32 { return uint32(f.asUint64()) }
func (f field) asInt64() int64   { return int64(f.asUint64()) }
func (f field) asInt32() int32   { return int32(f.asUint64()) }
func (f field) asBool() bool     { return protowire.DecodeBool(f.asUint64()) }
func (f field) asMode() Mode     { return Mode(f.asUint32()) }

func (f field) asErrno() Errno {
	e, err := ParseErrno(f.asInt32())
	if err != nil {
		f.fail("%v", err)
	}
	return e
}

func (f field) asBytes() []byte {
	if f.typ != protowire.BytesType {
		f.fail("want bytes, got wire type %d", f.typ)
		return nil
	}
	// the transport may recycle its receive buffer once decoding returns
	return append([]byte(nil), f.raw...)
}

func (f field) asString() string {
	if f.typ != protowire.BytesType {
		f.fail("want bytes, got wire type %d", f.typ)
		return ""
	}
	return string(f.raw)
}

func (f field) asMessage(m Message) {
	if f.typ != protowire.BytesType {
		f.fail("want message, got wire type %d", f.typ)
		return
	}
	if err := m.UnmarshalWire(f.raw); err != nil {
		f.fail("%v", err)
	}
}

// walk calls fn for every varint or length-delimited field in b. Other wire
// types are skipped.
func walk(b []byte, fn func(f field)) error {
	var sink error
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num, typ: typ, sink: &sink}
		switch typ {
		case protowire.VarintType:
			f.v, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.raw, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		fn(f)
		if sink != nil {
			return sink
		}
	}
	return nil
}
