// Package transport provides a length-prefixed, schema-tagged message
// framing atop net.Conn, built on top of the rex codec core. It is not
// part of the wire format the codec itself defines — it is one way to
// carry rex-encoded records over a stream, the way an RPC layer sits on
// top of a serialization library.
package transport

import "github.com/agilira/go-errors"

// MessageOverflowPolicy decides what happens when an inbound message's
// declared length exceeds Server.MaxMessageSize.
type MessageOverflowPolicy int

const (
	// MessageOverflowDiscard reads and drops the oversized payload,
	// keeping the connection open.
	MessageOverflowDiscard MessageOverflowPolicy = iota
	// MessageOverflowTerminate closes the connection.
	MessageOverflowTerminate
)

// ConnState tracks whether a connection has completed the internal
// handshake yet. User-registered messages are rejected until Established.
type ConnState int

const (
	ConnWaitHello ConnState = iota
	ConnEstablished
)

// Direction restricts which side of a connection may originate a given
// message type.
type Direction int

const (
	DirectionInbound Direction = iota
	DirectionOutbound
	DirectionBidirectional
)

// headerSize is the fixed 8-byte frame header: a uint32 payload length
// followed by a uint32 message type id, both little-endian.
const headerSize = 8

const (
	ErrCodeHeader          errors.ErrorCode = "REX_TRANSPORT_HEADER"
	ErrCodeOverflow        errors.ErrorCode = "REX_TRANSPORT_OVERFLOW"
	ErrCodeUnknownMessage  errors.ErrorCode = "REX_TRANSPORT_UNKNOWN_MESSAGE"
	ErrCodeBadDirection    errors.ErrorCode = "REX_TRANSPORT_BAD_DIRECTION"
	ErrCodeNotEstablished  errors.ErrorCode = "REX_TRANSPORT_NOT_ESTABLISHED"
	ErrCodeBadOverflowPolicy errors.ErrorCode = "REX_TRANSPORT_BAD_OVERFLOW_POLICY"
)
