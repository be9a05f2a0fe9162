// Package validation checks client-supplied uploads and file names before they
// reach the artifact directory.
package validation

import (
	"errors"
	"io"
	"net/http"

	"github.com/bnema/vcomp/internal/domain"
)

// sniffLen matches the window http.DetectContentType looks at.
const sniffLen = 512

// ValidateMagicBytes sniffs the media type of reader from its first bytes and
// reports whether that type may be uploaded. The reader is rewound before
// returning so the caller can store the full content.
func ValidateMagicBytes(reader io.ReadSeeker) (mime string, allowed bool, err error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(reader, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", false, err
	}

	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return "", false, err
	}

	if n == 0 {
		return "application/octet-stream", false, nil
	}
	buf = buf[:n]

	mime = detectContainer(buf)
	if mime == "" {
		mime = http.DetectContentType(buf)
	}

	return mime, domain.IsMediaTypeAllowed(mime), nil
}

// detectContainer recognises video containers that http.DetectContentType
// either misses or reports too loosely.
func detectContainer(buf []byte) string {
	if len(buf) < 4 {
		return ""
	}

	// EBML header
	if buf[0] == 0x1A && buf[1] == 0x45 && buf[2] == 0xDF && buf[3] == 0xA3 {
		return "video/webm"
	}

	// ISO base media: [size]["ftyp"][major brand]
	if len(buf) >= 12 && string(buf[4:8]) == "ftyp" {
		switch string(buf[8:12]) {
		case "qt  ":
			return "video/quicktime"
		case "M4A ", "M4B ", "M4P ":
			return "audio/mp4"
		default:
			return domain.MediaTypeMP4
		}
	}

	return ""
}
