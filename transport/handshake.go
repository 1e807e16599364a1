package transport

import (
	"github.com/rexcodec/rex/encoder"
	"github.com/rexcodec/rex/primitive"
	"github.com/rexcodec/rex/schema"
)

// Reserved message type ids. 0 and 1 are internal; user registrations
// start at firstUserMessageID.
const (
	messageIDHello      uint32 = 0
	messageIDPing       uint32 = 1
	firstUserMessageID  uint32 = 16
)

// HelloMessage is the handshake a client sends immediately after
// connecting, and the lone required field a server checks before moving
// a Conn from ConnWaitHello to ConnEstablished.
type HelloMessage struct {
	ClientVersion string
}

func helloEncoding() schema.CompleteEncoding {
	rec, err := schema.NewRecordEncoding("Hello",
		[]schema.FieldEncoding{
			{ID: 1, Name: "client_version", Quant: schema.Required, Typ: schema.String},
		},
		nil,
	)
	if err != nil {
		panic(err)
	}
	ce, err := schema.NewCompleteEncoding(rec, nil)
	if err != nil {
		panic(err)
	}
	return ce
}

func (h *HelloMessage) GetPrimitive(id schema.FieldID, idx int) (primitive.Primitive, error) {
	return primitive.String(h.ClientVersion), nil
}

func (h *HelloMessage) EncodeRecord(*encoder.Encoder, schema.FieldID, int) (int, error) {
	panic("transport: Hello has no record fields")
}

func (h *HelloMessage) CountField(schema.FieldID) (int, error) {
	panic("transport: Hello has no optional/repeated fields")
}

func (h *HelloMessage) SetPrimitive(id schema.FieldID, idx int, prim primitive.Primitive) error {
	h.ClientVersion = prim.String()
	return nil
}

func (h *HelloMessage) DecodeRecord(*encoder.Decoder, schema.FieldID, int) error {
	panic("transport: Hello has no record fields")
}

func (h *HelloMessage) AllocField(schema.FieldID, int) bool {
	panic("transport: Hello has no optional/repeated fields")
}

// PingMessage is a liveness probe either side may send; Nonce is echoed
// back unchanged by the receiver's own PingMessage reply.
type PingMessage struct {
	Nonce uint64
}

func pingEncoding() schema.CompleteEncoding {
	rec, err := schema.NewRecordEncoding("Ping",
		[]schema.FieldEncoding{
			{ID: 1, Name: "nonce", Quant: schema.Required, Typ: schema.UInt64},
		},
		nil,
	)
	if err != nil {
		panic(err)
	}
	ce, err := schema.NewCompleteEncoding(rec, nil)
	if err != nil {
		panic(err)
	}
	return ce
}

func (p *PingMessage) GetPrimitive(id schema.FieldID, idx int) (primitive.Primitive, error) {
	return primitive.UInt64(p.Nonce), nil
}

func (p *PingMessage) EncodeRecord(*encoder.Encoder, schema.FieldID, int) (int, error) {
	panic("transport: Ping has no record fields")
}

func (p *PingMessage) CountField(schema.FieldID) (int, error) {
	panic("transport: Ping has no optional/repeated fields")
}

func (p *PingMessage) SetPrimitive(id schema.FieldID, idx int, prim primitive.Primitive) error {
	p.Nonce = prim.UInt64()
	return nil
}

func (p *PingMessage) DecodeRecord(*encoder.Decoder, schema.FieldID, int) error {
	panic("transport: Ping has no record fields")
}

func (p *PingMessage) AllocField(schema.FieldID, int) bool {
	panic("transport: Ping has no optional/repeated fields")
}
