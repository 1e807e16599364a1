// Package primitive provides Primitive, the tagged-union value type that
// is the sole data-bearing vocabulary passed between application code
// (through the Encodable/Decodable interfaces) and the rex codec engines.
package primitive

import "github.com/rexcodec/rex/schema"

// Kind identifies which variant a Primitive holds. It mirrors the
// non-Record members of schema.Type one-to-one.
type Kind int

const (
	KindUInt8 Kind = iota
	KindUInt16
	KindUInt32
	KindUInt64
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFixed32
	KindFixed64
	KindFloat32
	KindFloat64
	KindBool
	KindBytes
	KindString
	KindEnum
)

// Primitive is a closed tagged union exactly mirroring the non-Record
// schema.Type variants. Only the field(s) matching Kind are meaningful.
type Primitive struct {
	kind  Kind
	u     uint64
	i     int64
	f32   float32
	f64   float64
	bytes []byte
	str   string
	b     bool
}

func (p Primitive) Kind() Kind { return p.kind }

// Constructors, one per variant.

func UInt8(x uint8) Primitive   { return Primitive{kind: KindUInt8, u: uint64(x)} }
func UInt16(x uint16) Primitive { return Primitive{kind: KindUInt16, u: uint64(x)} }
func UInt32(x uint32) Primitive { return Primitive{kind: KindUInt32, u: uint64(x)} }
func UInt64(x uint64) Primitive { return Primitive{kind: KindUInt64, u: x} }

func Int8(x int8) Primitive   { return Primitive{kind: KindInt8, i: int64(x)} }
func Int16(x int16) Primitive { return Primitive{kind: KindInt16, i: int64(x)} }
func Int32(x int32) Primitive { return Primitive{kind: KindInt32, i: int64(x)} }
func Int64(x int64) Primitive { return Primitive{kind: KindInt64, i: x} }

func Fixed32(x uint32) Primitive { return Primitive{kind: KindFixed32, u: uint64(x)} }
func Fixed64(x uint64) Primitive { return Primitive{kind: KindFixed64, u: x} }

func Float32(x float32) Primitive { return Primitive{kind: KindFloat32, f32: x} }
func Float64(x float64) Primitive { return Primitive{kind: KindFloat64, f64: x} }

func Bool(x bool) Primitive { return Primitive{kind: KindBool, b: x} }

func Bytes(x []byte) Primitive  { return Primitive{kind: KindBytes, bytes: x} }
func String(x string) Primitive { return Primitive{kind: KindString, str: x} }

// Enum is carried as a plain i64; the schema provides no enumerator
// list, so validating the value against a set of legal enumerators is
// the application's responsibility, not the codec's.
func Enum(x int64) Primitive { return Primitive{kind: KindEnum, i: x} }

// Accessors. Each panics if called against the wrong Kind — callers are
// expected to have already checked HasType (the Decodable/Encodable
// contract guarantees this before these are reached).

func (p Primitive) UInt8() uint8 { p.mustBe(KindUInt8); return uint8(p.u) }
func (p Primitive) UInt16() uint16 { p.mustBe(KindUInt16); return uint16(p.u) }
func (p Primitive) UInt32() uint32 { p.mustBe(KindUInt32); return uint32(p.u) }
func (p Primitive) UInt64() uint64 { p.mustBe(KindUInt64); return p.u }

func (p Primitive) Int8() int8 { p.mustBe(KindInt8); return int8(p.i) }
func (p Primitive) Int16() int16 { p.mustBe(KindInt16); return int16(p.i) }
func (p Primitive) Int32() int32 { p.mustBe(KindInt32); return int32(p.i) }
func (p Primitive) Int64() int64 { p.mustBe(KindInt64); return p.i }

func (p Primitive) Fixed32() uint32 { p.mustBe(KindFixed32); return uint32(p.u) }
func (p Primitive) Fixed64() uint64 { p.mustBe(KindFixed64); return p.u }

func (p Primitive) Float32() float32 { p.mustBe(KindFloat32); return p.f32 }
func (p Primitive) Float64() float64 { p.mustBe(KindFloat64); return p.f64 }

func (p Primitive) Bool() bool { p.mustBe(KindBool); return p.b }

func (p Primitive) Bytes() []byte { p.mustBe(KindBytes); return p.bytes }
func (p Primitive) String() string { p.mustBe(KindString); return p.str }

func (p Primitive) Enum() int64 { p.mustBe(KindEnum); return p.i }

func (p Primitive) mustBe(k Kind) {
	if p.kind != k {
		panic("primitive: wrong Kind accessed")
	}
}

// HasType reports whether p's variant matches t exactly, for primitive
// types only: schema.Type.Record never matches (a Record is not a
// Primitive variant).
//
// Note: this enforces strict one-to-one matching. The original Rust
// source this format was distilled from had a copy-paste bug where
// Primitive::UInt16 also matched Type::UInt8, and Primitive::Int16
// matched Type::Int8; that anomaly is intentionally not reproduced here.
func HasType(p Primitive, t schema.Type) bool {
	switch t {
	case schema.UInt8:
		return p.kind == KindUInt8
	case schema.UInt16:
		return p.kind == KindUInt16
	case schema.UInt32:
		return p.kind == KindUInt32
	case schema.UInt64:
		return p.kind == KindUInt64
	case schema.Int8:
		return p.kind == KindInt8
	case schema.Int16:
		return p.kind == KindInt16
	case schema.Int32:
		return p.kind == KindInt32
	case schema.Int64:
		return p.kind == KindInt64
	case schema.Fixed32:
		return p.kind == KindFixed32
	case schema.Fixed64:
		return p.kind == KindFixed64
	case schema.Float32:
		return p.kind == KindFloat32
	case schema.Float64:
		return p.kind == KindFloat64
	case schema.Bool:
		return p.kind == KindBool
	case schema.Bytes:
		return p.kind == KindBytes
	case schema.String:
		return p.kind == KindString
	case schema.Enum:
		return p.kind == KindEnum
	default:
		return false
	}
}
