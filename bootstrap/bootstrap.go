// Package bootstrap provides a hardcoded CompleteEncoding describing
// CompleteEncoding itself, so that schema values produced by an external
// .rex schema compiler can be serialized and deserialized using the very
// codec they describe. This solves the chicken-and-egg problem of
// encoding an encoding: depends[0] describes FieldEncoding, depends[1]
// describes RecordEncoding, and the target record describes
// CompleteEncoding, matching §4.5 of the specification exactly.
package bootstrap

import "github.com/rexcodec/rex/schema"

// These are indices into CompleteEncoding.Depends, below.
const (
	fieldEncodingDepIndex  = 0
	recordEncodingDepIndex = 1
)

var (
	fieldEncodingType  = schema.Record(fieldEncodingDepIndex)
	recordEncodingType = schema.Record(recordEncodingDepIndex)
)

// CompleteEncoding is the bootstrap schema: a CompleteEncoding whose
// target is "CompleteEncoding" and whose Depends contains "FieldEncoding"
// (index 0) and "RecordEncoding" (index 1).
var CompleteEncoding = mustBuild()

func mustBuild() schema.CompleteEncoding {
	fieldEncodingRec, err := schema.NewRecordEncoding("FieldEncoding",
		[]schema.FieldEncoding{
			{ID: 1, Name: "id", Quant: schema.Required, Typ: schema.UInt64},
			{ID: 2, Name: "name", Quant: schema.Required, Typ: schema.String},
			{ID: 3, Name: "quant", Quant: schema.Required, Typ: schema.Enum},
			{ID: 4, Name: "typ", Quant: schema.Required, Typ: schema.Enum},
			{ID: 5, Name: "bounds", Quant: schema.Required, Typ: schema.UInt64},
		},
		nil,
	)
	if err != nil {
		panic(err)
	}

	recordEncodingRec, err := schema.NewRecordEncoding("RecordEncoding",
		[]schema.FieldEncoding{
			{ID: 1, Name: "name", Quant: schema.Required, Typ: schema.String},
		},
		[]schema.FieldEncoding{
			{ID: 2, Name: "req_fields", Quant: schema.Repeated, Typ: fieldEncodingType},
			{ID: 3, Name: "opt_rep_fields", Quant: schema.Repeated, Typ: fieldEncodingType},
		},
	)
	if err != nil {
		panic(err)
	}

	target, err := schema.NewRecordEncoding("CompleteEncoding",
		[]schema.FieldEncoding{
			{ID: 1, Name: "target", Quant: schema.Required, Typ: recordEncodingType},
		},
		[]schema.FieldEncoding{
			{ID: 2, Name: "depends", Quant: schema.Repeated, Typ: recordEncodingType},
		},
	)
	if err != nil {
		panic(err)
	}

	ce, err := schema.NewCompleteEncoding(target, []schema.RecordEncoding{fieldEncodingRec, recordEncodingRec})
	if err != nil {
		panic(err)
	}

	return ce
}
