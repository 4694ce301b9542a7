package wire

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// CodecName is reported as the content subtype, so peers see ordinary
// application/grpc+proto traffic.
const CodecName = "proto"

// Codec marshals Message values. It is installed per connection with
// grpc.ForceCodec and per server with grpc.ForceServerCodec; it is never
// registered globally so other gRPC users in the process keep the stock
// protobuf codec.
type Codec struct{}

var _ encoding.Codec = Codec{}

func (Codec) Marshal(v interface{}) ([]byte, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("wire: cannot marshal %T", v)
	}
	return m.AppendWire(nil), nil
}

func (Codec) Unmarshal(data []byte, v interface{}) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("wire: cannot unmarshal into %T", v)
	}
	if err := m.UnmarshalWire(data); err != nil {
		return fmt.Errorf("wire: decode %T: %w", v, err)
	}
	return nil
}

func (Codec) Name() string {
	return CodecName
}
