package packet

import "encoding"

// RecordEncoder feeds a serialized vector record into NewPacket.
type RecordEncoder struct {
	record encoding.BinaryMarshaler
	enc    Encoding
}

func (r *RecordEncoder) Type() uint8 {
	return uint8(PacketVector2)
}

func (r *RecordEncoder) Encoding() Encoding {
	return r.enc
}

func (r *RecordEncoder) Read(data []byte) (int, error) {
	b, err := r.record.MarshalBinary()
	if err != nil {
		return 0, err
	}
	if len(data) < len(b) {
		return 0, PacketBufferNotBigEnough
	}
	return copy(data, b), nil
}
