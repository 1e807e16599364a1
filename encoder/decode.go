package encoder

import (
	"io"

	"github.com/rexcodec/rex/primitive"
	"github.com/rexcodec/rex/schema"
	"github.com/rexcodec/rex/wire"
)

// Decodable is the capability interface an application implements to be
// driven by the Decoder.
type Decodable interface {
	// SetPrimitive delivers one decoded primitive element for field id
	// at array index idx. Implementations should return
	// ErrCodeFieldTypeMismatch if they expected a different type at
	// (id, idx) than prim carries.
	SetPrimitive(id schema.FieldID, idx int, prim primitive.Primitive) error

	// DecodeRecord is invoked for a Record-typed field. Implementations
	// must call child.Decode(nested), where nested is the Decodable for
	// the record value living at (id, idx); returning without doing so
	// leaves the source mid-stream.
	DecodeRecord(child *Decoder, id schema.FieldID, idx int) error

	// AllocField is signaled before a Repeated field of known count, or
	// an Optional field with count 1, so the Decodable can reserve
	// space. Returning false tells the decoder to discard the field as
	// if it were unknown to the schema.
	AllocField(id schema.FieldID, count int) bool
}

// Decoder knows how to decode a particular record type. A Decoder
// should only be used from inside the DecodeRecord method of a
// Decodable; top-level callers use the package-level Decode function.
type Decoder struct {
	rec     *schema.RecordEncoding
	depends []schema.RecordEncoding
	r       io.Reader
}

// Decode reads exactly one record of ce.Target's type from r, driving d,
// and leaves r positioned immediately after the record's terminating
// 0-id uvarint.
func Decode(r io.Reader, ce schema.CompleteEncoding, d Decodable) error {
	rec := ce.Target
	dec := &Decoder{rec: &rec, depends: ce.Depends, r: r}
	return dec.Decode(d)
}

// Decode reads dec.rec's fields from dec's source: required fields in
// schema order, then an id-merge scan against opt_rep_fields (sorted by
// id) that matches known fields and skips unknown ones, stopping at the
// terminating zero id.
func (dec *Decoder) Decode(d Decodable) error {
	for _, f := range dec.rec.ReqFields {
		if f.Quant != schema.Required {
			return errEncodingInvalid(dec.rec.Name, f.Name, "required field list contains a non-Required field")
		}
		if err := dec.decodeArray(d, f, 0); err != nil {
			return err
		}
	}

	schemaFields := dec.rec.OptRepFields
	si := 0

	nextID, err := wire.ReadUvarint(dec.r)
	if err != nil {
		return err
	}

	for nextID != 0 {
		for si < len(schemaFields) && uint64(schemaFields[si].ID) < nextID {
			si++
		}

		if si < len(schemaFields) && uint64(schemaFields[si].ID) == nextID {
			f := schemaFields[si]
			si++

			switch f.Quant {
			case schema.Optional:
				err = dec.decodeOptional(d, f)
			case schema.Repeated:
				err = dec.decodeRepeated(d, f)
			default:
				err = errEncodingInvalid(dec.rec.Name, f.Name, "optional/repeated field list contains a Required field")
			}
			if err != nil {
				return err
			}
		} else {
			if err := dec.skipField(); err != nil {
				return err
			}
		}

		nextID, err = wire.ReadUvarint(dec.r)
		if err != nil {
			return err
		}
	}

	return nil
}

func (dec *Decoder) decodeOptional(d Decodable, f schema.FieldEncoding) error {
	size, err := wire.ReadUvarint(dec.r)
	if err != nil {
		return err
	}

	if !d.AllocField(f.ID, 1) {
		return wire.Skip(dec.r, size)
	}

	return dec.decodeArray(d, f, 0)
}

func (dec *Decoder) decodeRepeated(d Decodable, f schema.FieldEncoding) error {
	size, err := wire.ReadUvarint(dec.r)
	if err != nil {
		return err
	}

	countU, err := wire.ReadUvarint(dec.r)
	if err != nil {
		return err
	}
	count := int(countU)

	if !d.AllocField(f.ID, count) {
		remaining := size - uint64(wire.UvarintSize(countU))
		return wire.Skip(dec.r, remaining)
	}

	for idx := 0; idx < count; idx++ {
		if err := dec.decodeArray(d, f, idx); err != nil {
			return err
		}
	}
	return nil
}

// skipField discards an unknown tagged field: a uvarint byte length
// followed by exactly that many bytes.
func (dec *Decoder) skipField() error {
	length, err := wire.ReadUvarint(dec.r)
	if err != nil {
		return err
	}
	return wire.Skip(dec.r, length)
}

func (dec *Decoder) decodeArray(d Decodable, f schema.FieldEncoding, idx int) error {
	if !f.HasBounds() {
		return dec.decodeField(d, f, idx)
	}

	for arrIdx := 0; arrIdx < f.Bounds; arrIdx++ {
		if err := dec.decodeField(d, f, idx*f.Bounds+arrIdx); err != nil {
			return err
		}
	}
	return nil
}

func (dec *Decoder) decodeField(d Decodable, f schema.FieldEncoding, idx int) error {
	if depIndex, isRecord := f.Typ.IsRecord(); isRecord {
		dep, ok := dec.dependAt(depIndex)
		if !ok {
			return errEncodingInvalid(dec.rec.Name, f.Name, "field references an out-of-range record dependency")
		}
		child := &Decoder{rec: &dep, depends: dec.depends, r: dec.r}
		return d.DecodeRecord(child, f.ID, idx)
	}

	prim, err := dec.decodePrimitive(f.Typ)
	if err != nil {
		return err
	}
	return d.SetPrimitive(f.ID, idx, prim)
}

func (dec *Decoder) dependAt(index int) (schema.RecordEncoding, bool) {
	if index < 0 || index >= len(dec.depends) {
		return schema.RecordEncoding{}, false
	}
	return dec.depends[index], true
}

func (dec *Decoder) decodePrimitive(t schema.Type) (primitive.Primitive, error) {
	switch t {
	case schema.UInt8:
		x, err := wire.ReadU8(dec.r)
		return primitive.UInt8(x), err
	case schema.Int8:
		x, err := wire.ReadI8(dec.r)
		return primitive.Int8(x), err
	case schema.Bool:
		x, err := wire.ReadBool(dec.r)
		return primitive.Bool(x), err

	case schema.UInt16:
		x, err := wire.ReadLEU16(dec.r)
		return primitive.UInt16(x), err
	case schema.Int16:
		x, err := wire.ReadLEI16(dec.r)
		return primitive.Int16(x), err

	case schema.UInt32:
		x, err := wire.ReadUvarint(dec.r)
		return primitive.UInt32(uint32(x)), err
	case schema.UInt64:
		x, err := wire.ReadUvarint(dec.r)
		return primitive.UInt64(x), err

	case schema.Int32:
		x, err := wire.ReadVarint(dec.r)
		return primitive.Int32(int32(x)), err
	case schema.Int64:
		x, err := wire.ReadVarint(dec.r)
		return primitive.Int64(x), err
	case schema.Enum:
		x, err := wire.ReadVarint(dec.r)
		return primitive.Enum(x), err

	case schema.Fixed32:
		x, err := wire.ReadLEU32(dec.r)
		return primitive.Fixed32(x), err
	case schema.Float32:
		x, err := wire.ReadLEF32(dec.r)
		return primitive.Float32(x), err

	case schema.Fixed64:
		x, err := wire.ReadLEU64(dec.r)
		return primitive.Fixed64(x), err
	case schema.Float64:
		x, err := wire.ReadLEF64(dec.r)
		return primitive.Float64(x), err

	case schema.Bytes:
		x, err := wire.ReadBytes(dec.r)
		return primitive.Bytes(x), err
	case schema.String:
		x, err := wire.ReadString(dec.r)
		return primitive.String(x), err

	default:
		return primitive.Primitive{}, errEncodingInvalid(dec.rec.Name, "", "field declares an unknown primitive type")
	}
}
