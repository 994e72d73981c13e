// Package codec converts binary document payloads to and from the tagged
// textual transport form used for transit and storage. Producers across the
// system's history emit inconsistent tag formats, so decoding degrades
// gracefully across the historical variants instead of rejecting them.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"docvault/internal/models"
)

// ErrCorruptPayload reports encoded bytes that are not valid for the
// detected encoding. A mismatched tag is tolerated; a corrupt body is not.
var ErrCorruptPayload = errors.New("corrupt payload")

const (
	tagPrefix     = "data:"
	bodyDelimiter = ";base64,"
)

// TagMatch reports which acceptance tier produced a decode.
type TagMatch string

const (
	// TagExact is a fully-qualified tag matching the expected media type.
	TagExact TagMatch = "exact"
	// TagUntyped is a tag with an empty media-type marker.
	TagUntyped TagMatch = "untyped"
	// TagForeign is a recognizable tag whose media type differs from the
	// expected one. Decoding proceeds; the discrepancy is logged.
	TagForeign TagMatch = "foreign"
	// TagNone means no delimiter was found and the input was treated as raw
	// untagged encoded bytes.
	TagNone TagMatch = "none"
)

// Result is a successful decode.
type Result struct {
	Bytes     []byte
	MediaType string
	Match     TagMatch
}

// Codec encodes and decodes transport payloads.
type Codec struct {
	logger *slog.Logger
}

// New constructs a Codec. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Codec {
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{logger: logger}
}

// Encode produces the self-describing textual form of a document blob:
// a media-type tag followed by the base64 body.
func (c *Codec) Encode(blob models.DocumentBlob) string {
	return tagPrefix + blob.ContentType + bodyDelimiter + base64.StdEncoding.EncodeToString(blob.Bytes)
}

// Decode reconstructs payload bytes from transport text. Acceptance order:
// an exact tag for the expected media type, an untyped tag, any recognizable
// tag regardless of declared media type, and finally raw untagged base64.
// The declared media type never causes a rejection on its own; invalid
// base64 for the detected body fails with ErrCorruptPayload.
func (c *Codec) Decode(payload, expectedMediaType string) (Result, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return Result{}, fmt.Errorf("%w: empty payload", ErrCorruptPayload)
	}

	body := payload
	mediaType := ""
	match := TagNone

	if delim := strings.Index(payload, bodyDelimiter); delim >= 0 {
		header := payload[:delim]
		body = payload[delim+len(bodyDelimiter):]
		mediaType = mediaTypeFromHeader(header)

		switch {
		case mediaType != "" && strings.EqualFold(mediaType, expectedMediaType):
			match = TagExact
		case mediaType == "":
			match = TagUntyped
		default:
			match = TagForeign
			c.logger.Warn("transport tag media type does not match expected kind",
				"declared", mediaType, "expected", expectedMediaType)
		}
	}

	decoded, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrCorruptPayload, err)
	}
	return Result{Bytes: decoded, MediaType: mediaType, Match: match}, nil
}

// mediaTypeFromHeader extracts the declared media type from the text before
// the body delimiter. Headers may carry parameters between the media type
// and the delimiter (jsPDF emits data:application/pdf;filename=...;base64,)
// and may or may not start with the data: scheme.
func mediaTypeFromHeader(header string) string {
	header = strings.TrimPrefix(header, tagPrefix)
	if i := strings.Index(header, ";"); i >= 0 {
		header = header[:i]
	}
	return strings.ToLower(strings.TrimSpace(header))
}
