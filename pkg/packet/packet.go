package packet

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"linearmath.dev/pkg/assert"
	prettylog "linearmath.dev/pkg/pretty-log"
	quickmath "linearmath.dev/pkg/quick-math"
	"linearmath.dev/pkg/utils"
)

const VERSION uint8 = 1

const HEADER_SIZE = 4
const TYPE_ENC_INDEX = 1
const MAX_TYPE_SIZE = 0x3F
const HEADER_LENGTH_OFFSET = 2
const PACKET_MAX_SIZE = 1024
const PACKET_PAYLOAD_SIZE = PACKET_MAX_SIZE - HEADER_SIZE

var PacketMaxSizeExceeded = fmt.Errorf("Packet length has exceeded allowed size of %d", PACKET_PAYLOAD_SIZE-1)
var PacketVersionMismatch = fmt.Errorf("Expected packet version to equal %d", VERSION)
var PacketBufferNotBigEnough = fmt.Errorf("Buffer could not fit the entire packet")
var PacketNotVector2 = errors.New("packet does not carry a vector record")
var PacketUnknownType = fmt.Errorf("Packet type exceeds the largest known type %d", PacketCloseConnection)

// Encoding uses the top two bits of the type byte. For vector packets it
// names the record width of the payload.
type Encoding uint8

const (
	EncodingString Encoding = iota
	EncodingBytes
	EncodingFloat32
	EncodingFloat64
)

type PacketType uint8

const (
	PacketError PacketType = iota
	PacketVector2
	PacketCloseConnection
)

type Packet struct {
	data []byte
	len  int
}

type PacketEncoder interface {
	io.Reader
	Type() uint8
	Encoding() Encoding
}

func TypeToString(t PacketType) string {
	switch t {
	case PacketError:
		return "Error"
	case PacketVector2:
		return "Vector2"
	case PacketCloseConnection:
		return "CloseConnection"
	}
	return fmt.Sprintf("Unknown(%d)", t)
}

func EncodingForWidth(width int) Encoding {
	switch width {
	case 32:
		return EncodingFloat32
	case 64:
		return EncodingFloat64
	default:
		assert.Never("no encoding for record width", "width", width)
	}
	return EncodingBytes
}

func CreateTypeAndEncodingByte(t PacketType, enc Encoding) byte {
	return uint8(enc<<6) | uint8(t)
}

func PacketFromParts(t PacketType, enc Encoding, data []byte) Packet {
	assert.Assert(len(data) < PACKET_PAYLOAD_SIZE, "packet size is too large", "MAX", PACKET_MAX_SIZE-1, "received", len(data))
	assert.Assert(t < MAX_TYPE_SIZE, "max type size exceeded", "MAX", MAX_TYPE_SIZE-1, "received", t)

	buf := append([]byte{
		VERSION,
		CreateTypeAndEncodingByte(t, enc),
		0,
		0,
	}, data...)

	binary.BigEndian.PutUint16(buf[HEADER_LENGTH_OFFSET:], uint16(len(data)))

	return Packet{
		data: buf,
		len:  len(buf),
	}
}

func CreateErrorPacket(err error) Packet {
	return PacketFromParts(PacketError, EncodingString, []byte(err.Error()))
}

func CreateCloseConnection() Packet {
	return PacketFromParts(PacketCloseConnection, EncodingBytes, []byte{})
}

func CreateFloat2(data quickmath.Float2Data) Packet {
	return NewPacket(&RecordEncoder{record: data, enc: EncodingFloat32})
}

func CreateDouble2(data quickmath.Double2Data) Packet {
	return NewPacket(&RecordEncoder{record: data, enc: EncodingFloat64})
}

// CreateVector2 serializes v at width (32 or 64) into a vector packet.
func CreateVector2(v quickmath.Vector2, width int) Packet {
	if EncodingForWidth(width) == EncodingFloat32 {
		return CreateFloat2(v.SerializeFloat())
	}
	return CreateDouble2(v.SerializeDouble())
}

func getPacketLength(data []byte) uint16 {
	return binary.BigEndian.Uint16(data[HEADER_LENGTH_OFFSET:])
}

func PacketFromBytes(data []byte) Packet {
	assert.Assert(data[0] == VERSION, "version mismatch: this should be handled by the framer before packet is created", "VERSION", VERSION, "provided", data[0])

	dataLen := len(data) - HEADER_SIZE
	assert.Assert(dataLen >= 0, "packets must contain some sort of data")

	encodedLen := getPacketLength(data)
	assert.Assert(dataLen == int(encodedLen), "the data buffer provided has a length mismatch", "expected length", dataLen, "encoded length", encodedLen)

	return Packet{
		data: data,
		len:  len(data),
	}
}

func NewPacket(encoder PacketEncoder) Packet {
	b := make([]byte, PACKET_MAX_SIZE, PACKET_MAX_SIZE)

	enc := b[HEADER_SIZE:]
	n, err := encoder.Read(enc)
	assert.NoError(err, "i should never fail on encoding a packet")
	assert.Assert(n != PACKET_PAYLOAD_SIZE, "max packet size exceeded", "MAX_SIZE", PACKET_PAYLOAD_SIZE)

	t := encoder.Type()
	assert.Assert(t <= (0x40-1), "type has exceeded allowed size", "type", t)

	b[0] = VERSION
	b[1] = uint8(encoder.Encoding()<<6) | encoder.Type()

	binary.BigEndian.PutUint16(b[2:], uint16(n))

	return Packet{data: b, len: n + HEADER_SIZE}
}

func (p *Packet) Into(writer io.Writer) (int, error) {
	return writer.Write(p.data[:p.len])
}

func (p *Packet) Bytes() []byte {
	return p.data[:p.len]
}

func (p *Packet) Len() uint16 {
	return binary.BigEndian.Uint16(p.data[2:])
}

func (p *Packet) Data() []byte {
	return p.data[HEADER_SIZE:p.len]
}

func (p *Packet) Type() PacketType {
	return PacketType(p.data[TYPE_ENC_INDEX] & 0x3F)
}

func (p *Packet) Encoding() Encoding {
	return Encoding((p.data[TYPE_ENC_INDEX] >> 6) & 0x3)
}

func (p *Packet) Read(data []byte) (int, error) {
	if len(data) < p.len {
		return 0, PacketBufferNotBigEnough
	}
	copy(data, p.data[0:p.len])
	return p.len, nil
}

func (p *Packet) String() string {
	prettyData := utils.PrettyPrintBytes(p.Data(), 16)
	return fmt.Sprintf("Packet(v=%d, t=%s, enc=%d, len=%d) -> \"%s\"", p.data[0], TypeToString(p.Type()), p.Encoding(), p.Len(), prettyData)
}

// Width is the record width of a vector packet, 0 for anything else.
func (p *Packet) Width() int {
	if p.Type() != PacketVector2 {
		return 0
	}
	switch p.Encoding() {
	case EncodingFloat32:
		return 32
	case EncodingFloat64:
		return 64
	}
	return 0
}

// Vector2 decodes the record carried by a vector packet.
func (p *Packet) Vector2() (quickmath.Vector2, error) {
	width := p.Width()
	if width == 0 {
		return quickmath.Vector2{}, errors.Join(
			PacketNotVector2,
			fmt.Errorf("received type %d encoding %d", p.Type(), p.Encoding()))
	}
	return quickmath.DecodeVector2(p.Data(), width)
}

type PacketFramer struct {
	buf []byte
	idx int
	C   chan *Packet
}

func NewPacketFramer() PacketFramer {
	return PacketFramer{
		buf: make([]byte, PACKET_PAYLOAD_SIZE, PACKET_PAYLOAD_SIZE),
		C:   make(chan *Packet, 10),
	}
}

// Pending is the number of buffered bytes that do not yet form a packet.
func (p *PacketFramer) Pending() int {
	return p.idx
}

func (p *PacketFramer) Push(data []byte) error {
	n := copy(p.buf[p.idx:], data)

	if n < len(data) {
		p.buf = append(p.buf, data[n:]...)
	}

	p.idx += len(data)

	prettylog.Trace(slog.Default(), "PacketFramer received bytes", "len", p.idx, "pretty bytes", utils.PrettyPrintBytes(p.buf, p.idx))

	for {
		pkt, err := p.pull()
		if err != nil || pkt == nil {
			return err
		}

		p.C <- pkt
	}
}

func (p *PacketFramer) pull() (*Packet, error) {
	if p.idx < HEADER_SIZE {
		return nil, nil
	}

	if p.buf[0] != VERSION {
		return nil, errors.Join(
			PacketVersionMismatch,
			fmt.Errorf("received version: %d", p.buf[0]))
	}

	if t := PacketType(p.buf[TYPE_ENC_INDEX] & 0x3F); t > PacketCloseConnection {
		return nil, errors.Join(
			PacketUnknownType,
			fmt.Errorf("received type: %d", t))
	}

	packetLen := getPacketLength(p.buf)
	fullLen := int(packetLen) + HEADER_SIZE
	if packetLen >= PACKET_PAYLOAD_SIZE {
		return nil, PacketMaxSizeExceeded
	}

	if fullLen <= p.idx {
		out := make([]byte, fullLen, fullLen)
		copy(out, p.buf[:fullLen])
		copy(p.buf, p.buf[fullLen:p.idx])
		p.idx = p.idx - fullLen

		pkt := PacketFromBytes(out)
		return &pkt, nil
	}

	return nil, nil
}

// FrameWithReader pushes everything read from reader into framer until EOF
// or ctx is done. A partial packet left at EOF is io.ErrUnexpectedEOF.
func FrameWithReader(ctx context.Context, framer *PacketFramer, reader io.Reader) error {
	chunks := utils.NewContextReader(ctx)
	chunks.Read(reader)

	for {
		select {
		case chunk, ok := <-chunks.Out:
			if !ok {
				if err := <-chunks.Err; err != nil {
					return err
				}
				if pending := framer.Pending(); pending > 0 {
					return errors.Join(
						io.ErrUnexpectedEOF,
						fmt.Errorf("%d bytes of a partial packet", pending))
				}
				return nil
			}
			if err := framer.Push(chunk); err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func IsCloseConnection(p *Packet) bool {
	return p.Type() == PacketCloseConnection
}

func IsVector2(p *Packet) bool {
	return p.Type() == PacketVector2
}
