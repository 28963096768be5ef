package reparse

import (
	"encoding/binary"

	"github.com/Microsoft/go-winio/pkg/guid"
)

// DataBuffer is the Go form of REPARSE_GUID_DATA_BUFFER: the fixed
// header exchanged with the filesystem plus the tag owner's opaque
// payload. The on-disk structure has two mutually exclusive layouts
// sharing the first eight bytes: Microsoft tags place the payload
// directly after the reserved field, while vendor tags insert the
// reparse GUID first. GUID is only meaningful when the tag is not a
// Microsoft tag; for Microsoft tags Decode leaves it zero.
type DataBuffer struct {
	Tag        uint32
	DataLength uint16
	Reserved   uint16
	GUID       guid.GUID
	Data       []byte
}

// HeaderSize returns the size in bytes of the header portion of the
// buffer's on-disk layout, as selected by its tag.
func (b *DataBuffer) HeaderSize() int {
	if IsTagMicrosoft(b.Tag) {
		return DataBufferHeaderSize
	}
	return GUIDDataBufferHeaderSize
}

// Encode serializes the buffer in the GUID layout, the only layout this
// library writes: FSCTL_SET_REPARSE_POINT is issued solely for custom
// points, and FSCTL_DELETE_REPARSE_POINT takes a GUID-sized header for
// both of the deletion protocol's attempts.
func (b *DataBuffer) Encode() ([]byte, error) {
	if int(b.DataLength) != len(b.Data) {
		return nil, ErrDataLengthMismatch
	}
	size := GUIDDataBufferHeaderSize + len(b.Data)
	if size > MaximumReparseDataBufferSize {
		return nil, ErrInvalidPayload
	}
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:4], b.Tag)
	binary.LittleEndian.PutUint16(buf[4:6], b.DataLength)
	binary.LittleEndian.PutUint16(buf[6:8], b.Reserved)
	g := b.GUID.ToWindowsArray()
	copy(buf[8:24], g[:])
	copy(buf[24:], b.Data)
	return buf, nil
}

// Decode parses a raw buffer returned by FSCTL_GET_REPARSE_POINT,
// choosing the layout by the tag's high bit. The payload is copied out
// of raw, so the scratch buffer may be discarded afterwards.
func Decode(raw []byte) (*DataBuffer, error) {
	if len(raw) < DataBufferHeaderSize {
		return nil, ErrBufferTooSmall
	}
	b := &DataBuffer{
		Tag:        binary.LittleEndian.Uint32(raw[0:4]),
		DataLength: binary.LittleEndian.Uint16(raw[4:6]),
		Reserved:   binary.LittleEndian.Uint16(raw[6:8]),
	}
	header := DataBufferHeaderSize
	if !IsTagMicrosoft(b.Tag) {
		if len(raw) < GUIDDataBufferHeaderSize {
			return nil, ErrBufferTooSmall
		}
		var g [16]byte
		copy(g[:], raw[8:24])
		b.GUID = guid.FromWindowsArray(g)
		header = GUIDDataBufferHeaderSize
	}
	if len(raw) < header+int(b.DataLength) {
		return nil, ErrBufferTooSmall
	}
	b.Data = append([]byte(nil), raw[header:header+int(b.DataLength)]...)
	return b, nil
}
