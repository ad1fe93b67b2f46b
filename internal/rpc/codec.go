package rpc

import (
	"encoding/json"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// CodecName is the gRPC content-subtype used by the bridge.
const CodecName = "json"

func init() {
	encoding.RegisterCodec(Codec{})
}

// Codec marshals bridge messages as JSON. Only top-level proto messages
// (emptypb.Empty for the argument-less calls) go through protojson. Every other
// message is a plain struct and goes through encoding/json, including its
// nested *timestamppb.Timestamp fields, which therefore travel as
// {"seconds":..,"nanos":..} rather than RFC 3339 strings.
type Codec struct{}

// Marshal implements encoding.Codec.
func (Codec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

// Unmarshal implements encoding.Codec.
func (Codec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

// Name implements encoding.Codec.
func (Codec) Name() string {
	return CodecName
}
