package schema_registry

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/segmentio/kafka-go"
)

const (
	// magicByte opens every framed payload.
	magicByte byte = 0x0

	// headerSize is the magic byte plus the 4-byte schema id.
	headerSize = 5

	// SchemaIDHeader is the Kafka header NewKafkaMessage sets to the decimal
	// schema id, for consumers that route on headers.
	SchemaIDHeader = "schema_id"
)

// EncodeSchemaID encodes a schema ID in the registry wire format
// Format: [magic_byte][schema_id]
// - magic_byte: 0x0 (1 byte)
// - schema_id: 4 bytes (big-endian)
func EncodeSchemaID(schemaID int) ([]byte, error) {
	if schemaID < 0 || int64(schemaID) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: schema id %d does not fit in 4 bytes", ErrInvalidArgument, schemaID)
	}

	buf := make([]byte, headerSize)
	buf[0] = magicByte
	binary.BigEndian.PutUint32(buf[1:], uint32(schemaID))
	return buf, nil
}

// DecodeSchemaID decodes a schema ID from the registry wire format.
// Returns the schema ID and the remaining payload (after the 5-byte header).
func DecodeSchemaID(data []byte) (int, []byte, error) {
	if len(data) < headerSize {
		return 0, nil, fmt.Errorf("%w: data too short: expected at least %d bytes, got %d", ErrInvalidArgument, headerSize, len(data))
	}

	if data[0] != magicByte {
		return 0, nil, fmt.Errorf("%w: invalid magic byte: expected 0x0, got 0x%x", ErrInvalidArgument, data[0])
	}

	return int(binary.BigEndian.Uint32(data[1:headerSize])), data[headerSize:], nil
}

// NewKafkaMessage frames payload with schemaID and wraps it in a kafka.Message
// ready for a kafka.Writer.
func NewKafkaMessage(key []byte, schemaID int, payload []byte) (kafka.Message, error) {
	header, err := EncodeSchemaID(schemaID)
	if err != nil {
		return kafka.Message{}, err
	}

	value := make([]byte, 0, len(header)+len(payload))
	value = append(value, header...)
	value = append(value, payload...)

	return kafka.Message{
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: SchemaIDHeader, Value: []byte(strconv.Itoa(schemaID))},
		},
	}, nil
}

// SchemaIDFromMessage returns the schema id and the unframed payload of a
// message produced with NewKafkaMessage or any other registry-aware producer.
func SchemaIDFromMessage(msg kafka.Message) (int, []byte, error) {
	return DecodeSchemaID(msg.Value)
}
