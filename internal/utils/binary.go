package utils

import (
	"net/http"
	"unicode/utf8"
)

// mimeSniffLength caps the number of bytes handed to content-type detection.
const mimeSniffLength = 512

// IsBinary reports whether the provided byte slice appears to contain binary data.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}
	if !utf8.Valid(data) {
		return true
	}
	for _, byteValue := range data {
		if byteValue == 0 {
			return true
		}
	}
	return false
}

// DetectMimeType returns the MIME type guessed from the leading bytes of data.
func DetectMimeType(data []byte) string {
	if len(data) > mimeSniffLength {
		data = data[:mimeSniffLength]
	}
	return http.DetectContentType(data)
}
