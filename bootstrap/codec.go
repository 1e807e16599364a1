package bootstrap

import (
	"io"

	"github.com/rexcodec/rex/encoder"
	"github.com/rexcodec/rex/primitive"
	"github.com/rexcodec/rex/schema"
)

// EncodeSchema serializes ce using CompleteEncoding as its own schema —
// the self-description this package exists to make possible.
func EncodeSchema(w io.Writer, ce schema.CompleteEncoding) (int, error) {
	return encoder.Encode(w, CompleteEncoding, &encodableCompleteEncoding{ce: &ce})
}

// DecodeSchema deserializes a CompleteEncoding value previously written
// by EncodeSchema.
func DecodeSchema(r io.Reader) (schema.CompleteEncoding, error) {
	cb := &completeBuilder{}
	if err := encoder.Decode(r, CompleteEncoding, cb); err != nil {
		return schema.CompleteEncoding{}, err
	}
	return cb.build()
}

// encodableFieldEncoding adapts a schema.FieldEncoding to Encodable. All
// five of its fields are Required primitives; it has no record or
// optional/repeated fields.
type encodableFieldEncoding struct {
	f *schema.FieldEncoding
}

func (e *encodableFieldEncoding) GetPrimitive(id schema.FieldID, idx int) (primitive.Primitive, error) {
	switch id {
	case 1:
		return primitive.UInt64(uint64(e.f.ID)), nil
	case 2:
		return primitive.String(e.f.Name), nil
	case 3:
		return primitive.Enum(int64(e.f.Quant)), nil
	case 4:
		return primitive.Enum(int64(e.f.Typ.Code())), nil
	case 5:
		return primitive.UInt64(uint64(e.f.Bounds)), nil
	default:
		panic("bootstrap: FieldEncoding has no such field")
	}
}

func (e *encodableFieldEncoding) EncodeRecord(*encoder.Encoder, schema.FieldID, int) (int, error) {
	panic("bootstrap: FieldEncoding has no record fields")
}

func (e *encodableFieldEncoding) CountField(schema.FieldID) (int, error) {
	panic("bootstrap: FieldEncoding has no optional/repeated fields")
}

// encodableRecordEncoding adapts a schema.RecordEncoding to Encodable.
type encodableRecordEncoding struct {
	r *schema.RecordEncoding
}

func (e *encodableRecordEncoding) GetPrimitive(id schema.FieldID, idx int) (primitive.Primitive, error) {
	if id != 1 {
		panic("bootstrap: RecordEncoding has no such primitive field")
	}
	return primitive.String(e.r.Name), nil
}

func (e *encodableRecordEncoding) EncodeRecord(child *encoder.Encoder, id schema.FieldID, idx int) (int, error) {
	switch id {
	case 2:
		return child.Encode(&encodableFieldEncoding{f: &e.r.ReqFields[idx]})
	case 3:
		return child.Encode(&encodableFieldEncoding{f: &e.r.OptRepFields[idx]})
	default:
		panic("bootstrap: RecordEncoding has no such record field")
	}
}

func (e *encodableRecordEncoding) CountField(id schema.FieldID) (int, error) {
	switch id {
	case 2:
		return len(e.r.ReqFields), nil
	case 3:
		return len(e.r.OptRepFields), nil
	default:
		panic("bootstrap: RecordEncoding has no such field")
	}
}

// encodableCompleteEncoding adapts a schema.CompleteEncoding to Encodable.
type encodableCompleteEncoding struct {
	ce *schema.CompleteEncoding
}

func (e *encodableCompleteEncoding) GetPrimitive(schema.FieldID, int) (primitive.Primitive, error) {
	panic("bootstrap: CompleteEncoding has no primitive fields")
}

func (e *encodableCompleteEncoding) EncodeRecord(child *encoder.Encoder, id schema.FieldID, idx int) (int, error) {
	switch id {
	case 1:
		return child.Encode(&encodableRecordEncoding{r: &e.ce.Target})
	case 2:
		return child.Encode(&encodableRecordEncoding{r: &e.ce.Depends[idx]})
	default:
		panic("bootstrap: CompleteEncoding has no such record field")
	}
}

func (e *encodableCompleteEncoding) CountField(id schema.FieldID) (int, error) {
	if id != 2 {
		panic("bootstrap: CompleteEncoding has no such field")
	}
	return len(e.ce.Depends), nil
}

// fieldBuilder accumulates a decoded FieldEncoding field by field.
type fieldBuilder struct {
	id      schema.FieldID
	name    string
	quant   schema.Quantifier
	typCode int
	bounds  uint64
}

func (b *fieldBuilder) SetPrimitive(id schema.FieldID, idx int, prim primitive.Primitive) error {
	switch id {
	case 1:
		b.id = schema.FieldID(prim.UInt64())
	case 2:
		b.name = prim.String()
	case 3:
		b.quant = schema.Quantifier(prim.Enum())
	case 4:
		b.typCode = int(prim.Enum())
	case 5:
		b.bounds = prim.UInt64()
	default:
		panic("bootstrap: FieldEncoding has no such field")
	}
	return nil
}

func (b *fieldBuilder) DecodeRecord(*encoder.Decoder, schema.FieldID, int) error {
	panic("bootstrap: FieldEncoding has no record fields")
}

func (b *fieldBuilder) AllocField(schema.FieldID, int) bool {
	panic("bootstrap: FieldEncoding has no optional/repeated fields")
}

func (b *fieldBuilder) build() schema.FieldEncoding {
	typ := schema.TypeFromCode(b.typCode)
	if b.bounds == 0 {
		return schema.FieldEncoding{ID: b.id, Name: b.name, Quant: b.quant, Typ: typ}
	}
	return schema.NewArrayField(b.id, b.name, b.quant, typ, int(b.bounds))
}

// recordBuilder accumulates a decoded RecordEncoding field by field.
type recordBuilder struct {
	name         string
	reqFields    []schema.FieldEncoding
	optRepFields []schema.FieldEncoding
}

func (b *recordBuilder) SetPrimitive(id schema.FieldID, idx int, prim primitive.Primitive) error {
	if id != 1 {
		panic("bootstrap: RecordEncoding has no such primitive field")
	}
	b.name = prim.String()
	return nil
}

func (b *recordBuilder) DecodeRecord(child *encoder.Decoder, id schema.FieldID, idx int) error {
	fb := &fieldBuilder{}
	if err := child.Decode(fb); err != nil {
		return err
	}
	switch id {
	case 2:
		b.reqFields[idx] = fb.build()
	case 3:
		b.optRepFields[idx] = fb.build()
	default:
		panic("bootstrap: RecordEncoding has no such record field")
	}
	return nil
}

func (b *recordBuilder) AllocField(id schema.FieldID, count int) bool {
	switch id {
	case 2:
		b.reqFields = make([]schema.FieldEncoding, count)
	case 3:
		b.optRepFields = make([]schema.FieldEncoding, count)
	default:
		panic("bootstrap: RecordEncoding has no such field")
	}
	return true
}

func (b *recordBuilder) build() (schema.RecordEncoding, error) {
	return schema.NewRecordEncoding(b.name, b.reqFields, b.optRepFields)
}

// completeBuilder accumulates a decoded CompleteEncoding field by field.
type completeBuilder struct {
	target  schema.RecordEncoding
	depends []schema.RecordEncoding
}

func (b *completeBuilder) SetPrimitive(schema.FieldID, int, primitive.Primitive) error {
	panic("bootstrap: CompleteEncoding has no primitive fields")
}

func (b *completeBuilder) DecodeRecord(child *encoder.Decoder, id schema.FieldID, idx int) error {
	rb := &recordBuilder{}
	if err := child.Decode(rb); err != nil {
		return err
	}
	rec, err := rb.build()
	if err != nil {
		return err
	}
	switch id {
	case 1:
		b.target = rec
	case 2:
		b.depends[idx] = rec
	default:
		panic("bootstrap: CompleteEncoding has no such record field")
	}
	return nil
}

func (b *completeBuilder) AllocField(id schema.FieldID, count int) bool {
	if id != 2 {
		panic("bootstrap: CompleteEncoding has no such field")
	}
	b.depends = make([]schema.RecordEncoding, count)
	return true
}

func (b *completeBuilder) build() (schema.CompleteEncoding, error) {
	return schema.NewCompleteEncoding(b.target, b.depends)
}
