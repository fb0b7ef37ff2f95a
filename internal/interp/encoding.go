package interp

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeHandleBytes converts raw bytes read from a handle (file or URL
// body) to a UTF-8 string, auto-detecting a UTF-8 or UTF-16 byte-order
// mark. Content without a recognized BOM passes through unchanged,
// which also covers plain ASCII/UTF-8 with no mark.
func decodeHandleBytes(data []byte) string {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:])
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(data, unicode.LittleEndian)
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(data, unicode.BigEndian)
	default:
		return string(data)
	}
}

func decodeUTF16(data []byte, endianness unicode.Endianness) string {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	out, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return string(bytes.TrimPrefix(out, []byte("﻿")))
}
