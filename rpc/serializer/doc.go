// Package serializer encodes and decodes the bodies of the HTTP api.
//
// Key Components:
//
//   - IRPCSerializer: interface shared by server adapter and client, so both
//     sides agree on encoding and content type.
//
//   - jsonSerializerImpl: JSON encoding of the common wire types. HTML
//     escaping is disabled, document content is transported unchanged.
//
// Thread Safety:
//
//	Serializers are stateless and safe for concurrent use.
package serializer
