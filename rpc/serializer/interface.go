package serializer

// IRPCSerializer is the interface for the serializers of the HTTP api bodies
type IRPCSerializer interface {
	// Serialize serializes one of the common wire types into a byte array
	Serialize(v any) ([]byte, error)
	// Deserialize deserializes a byte array into the value pointed to by v
	Deserialize(b []byte, v any) error
	// ContentType is the media type sent with serialized bodies
	ContentType() string
}
