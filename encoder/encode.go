package encoder

import (
	"bytes"
	"io"

	"github.com/rexcodec/rex/primitive"
	"github.com/rexcodec/rex/schema"
	"github.com/rexcodec/rex/wire"
)

// Encodable is the capability interface an application implements to
// drive the Encoder. All three methods are invoked by the engine while
// walking the CompleteEncoding it was given; the application never calls
// into the engine except through the Encoder handed to EncodeRecord.
type Encodable interface {
	// GetPrimitive supplies the value of a non-record field at the
	// given field id and (flattened) array index.
	GetPrimitive(id schema.FieldID, idx int) (primitive.Primitive, error)

	// EncodeRecord is invoked for a Record-typed field. Implementations
	// must call child.Encode(nested) and return its result directly;
	// nested is the Encodable for the record value living at (id, idx).
	EncodeRecord(child *Encoder, id schema.FieldID, idx int) (int, error)

	// CountField reports how many elements an Optional (0 or 1) or
	// Repeated (0 or more) field has, for Encoder.Encode to decide
	// whether and how many times to visit it.
	CountField(id schema.FieldID) (int, error)
}

// Encoder knows how to encode a particular record type. An Encoder
// should only be used from inside the EncodeRecord method of an
// Encodable; top-level callers use the package-level Encode function.
type Encoder struct {
	rec     *schema.RecordEncoding
	depends []schema.RecordEncoding
	buf     *bytes.Buffer
}

// Encode writes one record of ce.Target's type to w, driving e through
// ce, and returns the exact number of bytes written.
func Encode(w io.Writer, ce schema.CompleteEncoding, e Encodable) (int, error) {
	var buf bytes.Buffer

	rec := ce.Target
	enc := &Encoder{rec: &rec, depends: ce.Depends, buf: &buf}

	total, err := enc.Encode(e)
	if err != nil {
		return 0, err
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return 0, wire.ErrIO(err)
	}
	return total, nil
}

// Encode writes enc.rec's fields — required fields in schema order, then
// optional/repeated fields in ascending id order — followed by the
// terminating zero id, driven by e. It returns the exact byte count,
// including the terminator.
func (enc *Encoder) Encode(e Encodable) (int, error) {
	total := 0

	for _, f := range enc.rec.ReqFields {
		if f.Quant != schema.Required {
			return 0, errEncodingInvalid(enc.rec.Name, f.Name, "required field list contains a non-Required field")
		}
		n, err := enc.encodeArray(e, f, 0)
		if err != nil {
			return 0, err
		}
		total += n
	}

	for _, f := range enc.rec.OptRepFields {
		var n int
		var err error

		switch f.Quant {
		case schema.Optional:
			n, err = enc.encodeOptional(e, f)
		case schema.Repeated:
			n, err = enc.encodeRepeated(e, f)
		default:
			return 0, errEncodingInvalid(enc.rec.Name, f.Name, "required field appears in the optional/repeated list")
		}
		if err != nil {
			return 0, err
		}
		total += n
	}

	n, err := wire.WriteUvarint(enc.buf, 0)
	if err != nil {
		return 0, err
	}
	total += n

	return total, nil
}

// scratch returns a sibling Encoder that shares rec/depends but writes
// into its own fresh buffer, so its payload length can be measured
// before it is folded into enc's buffer behind an id+size prefix. This
// is strategy (a) from the specification's design notes: serialize into
// a temporary buffer and prepend the length, rather than reserving
// worst-case space and patching it afterward.
func (enc *Encoder) scratch() (*Encoder, *bytes.Buffer) {
	var buf bytes.Buffer
	return &Encoder{rec: enc.rec, depends: enc.depends, buf: &buf}, &buf
}

func (enc *Encoder) encodeOptional(e Encodable, f schema.FieldEncoding) (int, error) {
	count, err := e.CountField(f.ID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	scratch, payload := enc.scratch()
	if _, err := scratch.encodeArray(e, f, 0); err != nil {
		return 0, err
	}

	idN, err := wire.WriteUvarint(enc.buf, uint64(f.ID))
	if err != nil {
		return 0, err
	}
	sizeN, err := wire.WriteUvarint(enc.buf, uint64(payload.Len()))
	if err != nil {
		return 0, err
	}
	if _, err := enc.buf.Write(payload.Bytes()); err != nil {
		return 0, wire.ErrIO(err)
	}

	return idN + sizeN + payload.Len(), nil
}

func (enc *Encoder) encodeRepeated(e Encodable, f schema.FieldEncoding) (int, error) {
	count, err := e.CountField(f.ID)
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	scratch, payload := enc.scratch()
	for idx := 0; idx < count; idx++ {
		if _, err := scratch.encodeArray(e, f, idx); err != nil {
			return 0, err
		}
	}

	var countBuf bytes.Buffer
	if _, err := wire.WriteUvarint(&countBuf, uint64(count)); err != nil {
		return 0, err
	}

	payloadLen := countBuf.Len() + payload.Len()

	idN, err := wire.WriteUvarint(enc.buf, uint64(f.ID))
	if err != nil {
		return 0, err
	}
	sizeN, err := wire.WriteUvarint(enc.buf, uint64(payloadLen))
	if err != nil {
		return 0, err
	}
	if _, err := enc.buf.Write(countBuf.Bytes()); err != nil {
		return 0, wire.ErrIO(err)
	}
	if _, err := enc.buf.Write(payload.Bytes()); err != nil {
		return 0, wire.ErrIO(err)
	}

	return idN + sizeN + payloadLen, nil
}

func (enc *Encoder) encodeArray(e Encodable, f schema.FieldEncoding, idx int) (int, error) {
	if !f.HasBounds() {
		return enc.encodeField(e, f, idx)
	}

	total := 0
	for arrIdx := 0; arrIdx < f.Bounds; arrIdx++ {
		n, err := enc.encodeField(e, f, idx*f.Bounds+arrIdx)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (enc *Encoder) encodeField(e Encodable, f schema.FieldEncoding, idx int) (int, error) {
	if depIndex, isRecord := f.Typ.IsRecord(); isRecord {
		dep, ok := enc.dependAt(depIndex)
		if !ok {
			return 0, errEncodingInvalid(enc.rec.Name, f.Name, "field references an out-of-range record dependency")
		}
		child := &Encoder{rec: &dep, depends: enc.depends, buf: enc.buf}
		return e.EncodeRecord(child, f.ID, idx)
	}

	prim, err := e.GetPrimitive(f.ID, idx)
	if err != nil {
		return 0, err
	}
	if !primitive.HasType(prim, f.Typ) {
		return 0, errFieldTypeMismatch(enc.rec.Name, f, kindName(prim))
	}

	return enc.encodePrimitive(prim)
}

func (enc *Encoder) dependAt(index int) (schema.RecordEncoding, bool) {
	if index < 0 || index >= len(enc.depends) {
		return schema.RecordEncoding{}, false
	}
	return enc.depends[index], true
}

func (enc *Encoder) encodePrimitive(prim primitive.Primitive) (int, error) {
	switch prim.Kind() {
	case primitive.KindUInt8:
		return 1, wire.WriteU8(enc.buf, prim.UInt8())
	case primitive.KindInt8:
		return 1, wire.WriteI8(enc.buf, prim.Int8())
	case primitive.KindBool:
		return 1, wire.WriteBool(enc.buf, prim.Bool())

	case primitive.KindUInt16:
		return 2, wire.WriteLEU16(enc.buf, prim.UInt16())
	case primitive.KindInt16:
		return 2, wire.WriteLEI16(enc.buf, prim.Int16())

	case primitive.KindUInt32:
		return wire.WriteUvarint(enc.buf, uint64(prim.UInt32()))
	case primitive.KindUInt64:
		return wire.WriteUvarint(enc.buf, prim.UInt64())

	case primitive.KindInt32:
		return wire.WriteVarint(enc.buf, int64(prim.Int32()))
	case primitive.KindInt64:
		return wire.WriteVarint(enc.buf, prim.Int64())
	case primitive.KindEnum:
		return wire.WriteVarint(enc.buf, prim.Enum())

	case primitive.KindFixed32:
		return 4, wire.WriteLEU32(enc.buf, prim.Fixed32())
	case primitive.KindFloat32:
		return 4, wire.WriteLEF32(enc.buf, prim.Float32())

	case primitive.KindFixed64:
		return 8, wire.WriteLEU64(enc.buf, prim.Fixed64())
	case primitive.KindFloat64:
		return 8, wire.WriteLEF64(enc.buf, prim.Float64())

	case primitive.KindBytes:
		return wire.WriteBytes(enc.buf, prim.Bytes())
	case primitive.KindString:
		return wire.WriteString(enc.buf, prim.String())

	default:
		return 0, errEncodingInvalid(enc.rec.Name, "", "primitive carries an unknown kind")
	}
}

func kindName(p primitive.Primitive) string {
	switch p.Kind() {
	case primitive.KindUInt8:
		return "UInt8"
	case primitive.KindUInt16:
		return "UInt16"
	case primitive.KindUInt32:
		return "UInt32"
	case primitive.KindUInt64:
		return "UInt64"
	case primitive.KindInt8:
		return "Int8"
	case primitive.KindInt16:
		return "Int16"
	case primitive.KindInt32:
		return "Int32"
	case primitive.KindInt64:
		return "Int64"
	case primitive.KindFixed32:
		return "Fixed32"
	case primitive.KindFixed64:
		return "Fixed64"
	case primitive.KindFloat32:
		return "Float32"
	case primitive.KindFloat64:
		return "Float64"
	case primitive.KindBool:
		return "Bool"
	case primitive.KindBytes:
		return "Bytes"
	case primitive.KindString:
		return "String"
	case primitive.KindEnum:
		return "Enum"
	default:
		return "unknown"
	}
}
