package source

import (
	"bytes"
	"encoding/binary"
)

// EXIF orientation values that carry a rotation. Flip/transpose values
// (2, 4, 5, 7) are treated as upright by the layout stage.
const (
	orientationUpright  = 1
	orientationDown     = 3
	orientationRight    = 6
	orientationLeft     = 8
	orientationTagID    = 0x0112
	ifdEntrySize        = 12
	exifSignatureLength = 6
)

var exifSignature = []byte("Exif\x00\x00")

// Orientation scans raw image bytes for an EXIF orientation tag and
// returns its value (1-8), or 0 when the file carries none. JPEG files
// are walked marker by marker up to the image data; TIFF files are
// parsed from their header directly. Corrupt or truncated metadata is
// never an error: it simply yields 0.
func Orientation(data []byte) int {
	switch {
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xD8:
		return jpegOrientation(data)
	case len(data) >= 4 && (bytes.HasPrefix(data, []byte("II")) || bytes.HasPrefix(data, []byte("MM"))):
		return tiffOrientation(data)
	}
	return 0
}

// jpegOrientation walks the JPEG marker stream looking for an APP1
// segment with an Exif payload.
func jpegOrientation(data []byte) int {
	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return 0
		}
		marker := data[pos+1]
		pos += 2

		switch {
		case marker == 0xD8 || (marker >= 0xD0 && marker <= 0xD7):
			// Standalone markers carry no payload.
			continue
		case marker == 0xDA || marker == 0xD9:
			// Start of scan or end of image: no metadata past here.
			return 0
		}

		if pos+2 > len(data) {
			return 0
		}
		length := int(binary.BigEndian.Uint16(data[pos:])) // includes the 2 length bytes
		if length < 2 || pos+length > len(data) {
			return 0
		}
		payload := data[pos+2 : pos+length]
		pos += length

		if marker == 0xE1 && bytes.HasPrefix(payload, exifSignature) {
			return tiffOrientation(payload[exifSignatureLength:])
		}
	}
	return 0
}

// tiffOrientation parses a TIFF header and its first IFD for the
// orientation tag (0x0112, SHORT, count 1).
func tiffOrientation(tiff []byte) int {
	if len(tiff) < 8 {
		return 0
	}

	var order binary.ByteOrder
	switch {
	case tiff[0] == 'I' && tiff[1] == 'I':
		order = binary.LittleEndian
	case tiff[0] == 'M' && tiff[1] == 'M':
		order = binary.BigEndian
	default:
		return 0
	}
	if order.Uint16(tiff[2:]) != 42 {
		return 0
	}

	ifdOffset := int(order.Uint32(tiff[4:]))
	if ifdOffset < 8 || ifdOffset+2 > len(tiff) {
		return 0
	}

	numEntries := int(order.Uint16(tiff[ifdOffset:]))
	entryOffset := ifdOffset + 2
	for i := 0; i < numEntries; i++ {
		if entryOffset+ifdEntrySize > len(tiff) {
			return 0
		}
		entry := tiff[entryOffset : entryOffset+ifdEntrySize]
		entryOffset += ifdEntrySize

		if order.Uint16(entry) != orientationTagID {
			continue
		}
		if order.Uint16(entry[2:]) != 3 { // SHORT
			return 0
		}
		if order.Uint32(entry[4:]) != 1 {
			return 0
		}
		v := int(order.Uint16(entry[8:]))
		if v >= 1 && v <= 8 {
			return v
		}
		return 0
	}
	return 0
}
