package transport_test

import (
	"bytes"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rexcodec/rex/encoder"
	"github.com/rexcodec/rex/primitive"
	"github.com/rexcodec/rex/schema"
	"github.com/rexcodec/rex/transport"
)

const messageIDShout uint32 = 16

type shout struct {
	text string
}

func shoutEncoding() schema.CompleteEncoding {
	rec, err := schema.NewRecordEncoding("Shout",
		[]schema.FieldEncoding{{ID: 1, Name: "text", Quant: schema.Required, Typ: schema.String}},
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

func (s *shout) GetPrimitive(schema.FieldID, int) (primitive.Primitive, error) {
	return primitive.String(s.text), nil
}
func (s *shout) EncodeRecord(*encoder.Encoder, schema.FieldID, int) (int, error) {
	panic("no record fields")
}
func (s *shout) CountField(schema.FieldID) (int, error) { panic("no optional/repeated fields") }
func (s *shout) SetPrimitive(id schema.FieldID, idx int, prim primitive.Primitive) error {
	s.text = prim.String()
	return nil
}
func (s *shout) DecodeRecord(*encoder.Decoder, schema.FieldID, int) error {
	panic("no record fields")
}
func (s *shout) AllocField(schema.FieldID, int) bool { panic("no optional/repeated fields") }

type helloClient struct {
	clientVersion string
}

func (h *helloClient) GetPrimitive(schema.FieldID, int) (primitive.Primitive, error) {
	return primitive.String(h.clientVersion), nil
}
func (h *helloClient) EncodeRecord(*encoder.Encoder, schema.FieldID, int) (int, error) {
	panic("no record fields")
}
func (h *helloClient) CountField(schema.FieldID) (int, error) { panic("no optional/repeated fields") }

func helloEncodingForTest() schema.CompleteEncoding {
	rec, err := schema.NewRecordEncoding("Hello",
		[]schema.FieldEncoding{{ID: 1, Name: "client_version", Quant: schema.Required, Typ: schema.String}},
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

func writeFrame(t *testing.T, conn net.Conn, messageType uint32, ce schema.CompleteEncoding, v encoder.Encodable) {
	t.Helper()

	var body bytes.Buffer
	_, err := encoder.Encode(&body, ce, v)
	require.NoError(t, err)

	var header [8]byte
	binary.LittleEndian.PutUint32(header[:4], uint32(body.Len()))
	binary.LittleEndian.PutUint32(header[4:], messageType)

	_, err = conn.Write(header[:])
	require.NoError(t, err)
	_, err = conn.Write(body.Bytes())
	require.NoError(t, err)
}

func newTestServer(t *testing.T) (*transport.Server, net.Listener, chan string) {
	t.Helper()

	registry := transport.NewRegistry()
	received := make(chan string, 4)

	err := registry.Register(messageIDShout, transport.MessageDescriptor{
		Name:      "Shout",
		Encoding:  shoutEncoding(),
		Direction: transport.DirectionInbound,
		Handler: func(c *transport.Conn, d encoder.Decodable) error {
			received <- d.(*shout).text
			return nil
		},
		NewPayload: func() encoder.Decodable { return &shout{} },
	})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := &transport.Server{
		MessageOverflowPolicy: transport.MessageOverflowDiscard,
		MaxMessageSize:        1 << 16,
		Registry:              registry,
	}
	server.Init()

	go server.Serve(ln)
	t.Cleanup(func() { server.Close() })

	return server, ln, received
}

func TestShoutBeforeHandshakeIsIgnored(t *testing.T) {
	_, ln, received := newTestServer(t)
	time.Sleep(20 * time.Millisecond)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	writeFrame(t, conn, messageIDShout, shoutEncoding(), &shout{text: "too early"})

	select {
	case <-received:
		t.Fatal("handler fired before the handshake completed")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestShoutAfterHandshakeReachesHandler(t *testing.T) {
	_, ln, received := newTestServer(t)
	time.Sleep(20 * time.Millisecond)

	conn, err := net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	writeFrame(t, conn, 0, helloEncodingForTest(), &helloClient{clientVersion: "test-client/1"})
	writeFrame(t, conn, messageIDShout, shoutEncoding(), &shout{text: "hello transport"})

	select {
	case text := <-received:
		assert.Equal(t, "hello transport", text)
	case <-time.After(time.Second):
		t.Fatal("handler never fired after handshake")
	}
}
