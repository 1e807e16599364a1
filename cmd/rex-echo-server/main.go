// Command rex-echo-server is a minimal demonstration of the transport
// package: it registers one user message type, Echo, and replies with
// the same text it received.
package main

import (
	"log"

	"github.com/rexcodec/rex/encoder"
	"github.com/rexcodec/rex/primitive"
	"github.com/rexcodec/rex/schema"
	"github.com/rexcodec/rex/transport"
)

const messageIDEcho uint32 = 16

type echoMessage struct {
	text string
}

func echoEncoding() schema.CompleteEncoding {
	rec, err := schema.NewRecordEncoding("Echo",
		[]schema.FieldEncoding{
			{ID: 1, Name: "text", Quant: schema.Required, Typ: schema.String},
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

func (e *echoMessage) GetPrimitive(id schema.FieldID, idx int) (primitive.Primitive, error) {
	return primitive.String(e.text), nil
}
func (e *echoMessage) EncodeRecord(*encoder.Encoder, schema.FieldID, int) (int, error) {
	panic("echo has no record fields")
}
func (e *echoMessage) CountField(schema.FieldID) (int, error) {
	panic("echo has no optional/repeated fields")
}
func (e *echoMessage) SetPrimitive(id schema.FieldID, idx int, prim primitive.Primitive) error {
	e.text = prim.String()
	return nil
}
func (e *echoMessage) DecodeRecord(*encoder.Decoder, schema.FieldID, int) error {
	panic("echo has no record fields")
}
func (e *echoMessage) AllocField(schema.FieldID, int) bool {
	panic("echo has no optional/repeated fields")
}

func handleEcho(c *transport.Conn, d encoder.Decodable) error {
	msg, ok := d.(*echoMessage)
	if !ok {
		return nil
	}
	return c.Send(messageIDEcho, echoEncoding(), msg)
}

func main() {
	registry := transport.NewRegistry()
	if err := registry.Register(messageIDEcho, transport.MessageDescriptor{
		Name:       "Echo",
		Encoding:   echoEncoding(),
		Direction:  transport.DirectionBidirectional,
		Handler:    handleEcho,
		NewPayload: func() encoder.Decodable { return &echoMessage{} },
	}); err != nil {
		log.Fatal(err)
	}

	server := &transport.Server{
		MessageOverflowPolicy: transport.MessageOverflowDiscard,
		MaxMessageSize:        1 << 20,
		Registry:              registry,
	}
	server.Init()

	if err := server.ListenAndServe("tcp", ":6000"); err != nil {
		log.Fatal(err)
	}
}
