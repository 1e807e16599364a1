package transport

import (
	"bytes"
	"encoding/binary"
	"io"
	"net"

	"github.com/agilira/go-errors"

	"github.com/rexcodec/rex/encoder"
	"github.com/rexcodec/rex/schema"
	"github.com/rexcodec/rex/wire"
)

// ProtocolHeader is the 8-byte frame prefix: a little-endian payload
// length followed by a little-endian message type id.
type ProtocolHeader struct {
	PacketLength uint32
	MessageType  uint32
}

var nullHeader = ProtocolHeader{}

// Conn wraps one accepted connection, tracking handshake state and
// dispatching frames against its Server's registry.
type Conn struct {
	server *Server
	conn   net.Conn
	state  ConnState
}

func (c *Conn) readHeader() (ProtocolHeader, error) {
	var raw [headerSize]byte

	n, err := io.ReadFull(c.conn, raw[:])
	if err != nil {
		if err == io.EOF {
			return nullHeader, err
		}
		return nullHeader, errors.Wrap(err, ErrCodeHeader, "failed to read frame header")
	}
	if n != headerSize {
		return nullHeader, errors.New(ErrCodeHeader, "short frame header read")
	}

	return ProtocolHeader{
		PacketLength: binary.LittleEndian.Uint32(raw[:4]),
		MessageType:  binary.LittleEndian.Uint32(raw[4:]),
	}, nil
}

func (c *Conn) readPayload(length uint32) ([]byte, error) {
	payload := make([]byte, length)
	n, err := io.ReadFull(c.conn, payload)
	if err != nil {
		return nil, errors.Wrap(err, ErrCodeHeader, "failed to read frame payload")
	}
	if n != int(length) {
		return nil, errors.New(ErrCodeHeader, "short frame payload read")
	}
	return payload, nil
}

// nextMessage reads and dispatches exactly one frame. It returns a
// non-nil error only when the connection must be torn down.
func (c *Conn) nextMessage() error {
	header, err := c.readHeader()
	if err != nil {
		return err
	}

	if header.PacketLength > c.server.MaxMessageSize {
		switch c.server.MessageOverflowPolicy {
		case MessageOverflowDiscard:
			_, _ = io.CopyN(io.Discard, c.conn, int64(header.PacketLength))
			return nil
		case MessageOverflowTerminate:
			return errors.New(ErrCodeOverflow, "message exceeded configured size limit").
				WithContext("packetLength", header.PacketLength).
				WithContext("limit", c.server.MaxMessageSize)
		}
	}

	desc, exists := c.server.Registry.lookup(header.MessageType)
	if !exists {
		_, _ = io.CopyN(io.Discard, c.conn, int64(header.PacketLength))
		return errors.New(ErrCodeUnknownMessage, "client sent an unregistered message type").
			WithContext("messageType", header.MessageType)
	}

	if desc.Direction == DirectionOutbound {
		_, _ = io.CopyN(io.Discard, c.conn, int64(header.PacketLength))
		return errors.New(ErrCodeBadDirection, "client sent an outbound-only message").
			WithContext("messageType", header.MessageType)
	}

	if !desc.Internal && c.state == ConnWaitHello {
		_, _ = io.CopyN(io.Discard, c.conn, int64(header.PacketLength))
		return errors.New(ErrCodeNotEstablished, "client sent a user message before completing the handshake").
			WithContext("messageType", header.MessageType)
	}

	payload, err := c.readPayload(header.PacketLength)
	if err != nil {
		return err
	}

	if header.MessageType == messageIDHello {
		hello := &HelloMessage{}
		if err := encoder.Decode(bytes.NewReader(payload), desc.Encoding, hello); err != nil {
			return err
		}
		c.state = ConnEstablished
		return nil
	}

	if desc.Handler == nil {
		return nil
	}

	decoded, err := decodePayload(bytes.NewReader(payload), desc)
	if err != nil {
		return err
	}

	return desc.Handler(c, decoded)
}

// Send frames and writes v, a record described by ce, to the connection
// as a message of type id.
func (c *Conn) Send(id uint32, ce schema.CompleteEncoding, v encoder.Encodable) error {
	var body bytes.Buffer
	if _, err := encoder.Encode(&body, ce, v); err != nil {
		return err
	}

	var header [headerSize]byte
	binary.LittleEndian.PutUint32(header[:4], uint32(body.Len()))
	binary.LittleEndian.PutUint32(header[4:], id)

	if _, err := c.conn.Write(header[:]); err != nil {
		return wire.ErrIO(err)
	}
	if _, err := c.conn.Write(body.Bytes()); err != nil {
		return wire.ErrIO(err)
	}
	return nil
}

// SendHello sends this connection's handshake Hello message.
func (c *Conn) SendHello(clientVersion string) error {
	return c.Send(messageIDHello, helloEncoding(), &HelloMessage{ClientVersion: clientVersion})
}

// SendPing sends a liveness probe carrying nonce.
func (c *Conn) SendPing(nonce uint64) error {
	return c.Send(messageIDPing, pingEncoding(), &PingMessage{Nonce: nonce})
}
