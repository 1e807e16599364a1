package transport

import (
	"io"

	"github.com/agilira/go-errors"

	"github.com/rexcodec/rex/encoder"
	"github.com/rexcodec/rex/schema"
)

// Handler reacts to one inbound message, already decoded into the
// Decodable that the descriptor's NewPayload returned. NewPayload must
// return a fresh encoder.Decodable each call, since a single
// MessageDescriptor is reused across every frame of that type.
type Handler func(c *Conn, d encoder.Decodable) error

// MessageDescriptor binds a wire message type id to the CompleteEncoding
// that describes its payload, the direction it may legally travel, and
// (optionally) the handler invoked when one arrives.
type MessageDescriptor struct {
	// Name is descriptive only.
	Name string

	// Encoding describes the payload's record layout.
	Encoding schema.CompleteEncoding

	// Direction restricts which side may send this message type.
	Direction Direction

	// Internal marks a message as part of the handshake, exempting it
	// from the "connection must be Established" check.
	Internal bool

	// Handler is invoked with a freshly-allocated Decodable (via
	// NewPayload) once a frame of this type has been read and its payload
	// decoded.
	// A nil Handler causes the frame to be read and discarded.
	Handler Handler

	// NewPayload allocates the Decodable that Decode delivers payload
	// fields into before Handler is invoked. Required whenever Handler
	// is non-nil.
	NewPayload func() encoder.Decodable
}

// MessageDescriptorRegistry maps wire message type ids to descriptors.
// Id 0 is reserved for the internal handshake Hello message.
type MessageDescriptorRegistry struct {
	descriptors map[uint32]MessageDescriptor
}

// NewRegistry returns a registry pre-populated with the internal
// handshake messages.
func NewRegistry() *MessageDescriptorRegistry {
	reg := &MessageDescriptorRegistry{descriptors: make(map[uint32]MessageDescriptor)}
	reg.registerInternal()
	return reg
}

// Register adds a user-defined message type. Registering over the
// reserved internal ids, or re-registering an id already in use, is
// rejected.
func (reg *MessageDescriptorRegistry) Register(id uint32, desc MessageDescriptor) error {
	if id < firstUserMessageID {
		return errors.New(ErrCodeUnknownMessage, "message type id is reserved for internal use").
			WithContext("id", id)
	}
	if _, exists := reg.descriptors[id]; exists {
		return errors.New(ErrCodeUnknownMessage, "message type id already registered").
			WithContext("id", id)
	}
	reg.descriptors[id] = desc
	return nil
}

func (reg *MessageDescriptorRegistry) registerInternal() {
	reg.descriptors[messageIDHello] = MessageDescriptor{
		Name:      "Hello",
		Encoding:  helloEncoding(),
		Direction: DirectionBidirectional,
		Internal:  true,
	}
	reg.descriptors[messageIDPing] = MessageDescriptor{
		Name:      "Ping",
		Encoding:  pingEncoding(),
		Direction: DirectionBidirectional,
		Internal:  true,
		Handler: func(c *Conn, d encoder.Decodable) error {
			return c.SendPing(d.(*PingMessage).Nonce)
		},
		NewPayload: func() encoder.Decodable { return &PingMessage{} },
	}
}

func (reg *MessageDescriptorRegistry) lookup(id uint32) (MessageDescriptor, bool) {
	desc, ok := reg.descriptors[id]
	return desc, ok
}

// decodePayload reads exactly one record described by desc.Encoding from
// r into a freshly allocated Decodable, returning it for Handler to use.
func decodePayload(r io.Reader, desc MessageDescriptor) (encoder.Decodable, error) {
	payload := desc.NewPayload()
	if err := encoder.Decode(r, desc.Encoding, payload); err != nil {
		return nil, err
	}
	return payload, nil
}
