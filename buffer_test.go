package reparse

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/Microsoft/go-winio/pkg/guid"
	"github.com/google/go-cmp/cmp"
)

func mustGUID(t *testing.T, s string) guid.GUID {
	t.Helper()
	g, err := guid.FromString(s)
	if err != nil {
		t.Fatalf("failed to parse GUID %s: %v", s, err)
	}
	return g
}

func TestEncodeDecodeCustomBuffer(t *testing.T) {
	in := &DataBuffer{
		Tag:        0x00000100,
		DataLength: 3,
		GUID:       mustGUID(t, "11111111-2222-3333-4444-555555555555"),
		Data:       []byte{0xAA, 0xBB, 0xCC},
	}
	raw, err := in.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(raw) != GUIDDataBufferHeaderSize+3 {
		t.Fatalf("expected %d encoded bytes, got %d", GUIDDataBufferHeaderSize+3, len(raw))
	}

	out, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("decoded buffer mismatch (-want +got):\n%s", diff)
	}
	if out.HeaderSize() != GUIDDataBufferHeaderSize {
		t.Fatalf("expected GUID layout header size, got %d", out.HeaderSize())
	}
}

func TestEncodeGUIDByteOrder(t *testing.T) {
	b := &DataBuffer{
		Tag:        0x00000100,
		DataLength: 1,
		GUID:       mustGUID(t, "01020304-0506-0708-090a-0b0c0d0e0f10"),
		Data:       []byte{0xFF},
	}
	raw, err := b.Encode()
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	// Data1..Data3 little endian, Data4 as-is, per the Windows GUID layout.
	want := []byte{
		0x04, 0x03, 0x02, 0x01,
		0x06, 0x05,
		0x08, 0x07,
		0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
	}
	if !bytes.Equal(raw[8:24], want) {
		t.Fatalf("expected GUID bytes %x, got %x", want, raw[8:24])
	}
}

func TestDecodeSystemLayout(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	raw := make([]byte, DataBufferHeaderSize+len(payload))
	binary.LittleEndian.PutUint32(raw[0:4], TagMountPoint)
	binary.LittleEndian.PutUint16(raw[4:6], uint16(len(payload)))
	copy(raw[8:], payload)

	b, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if b.Tag != TagMountPoint {
		t.Fatalf("expected tag %#x, got %#x", uint32(TagMountPoint), b.Tag)
	}
	if b.HeaderSize() != DataBufferHeaderSize {
		t.Fatalf("expected system layout header size, got %d", b.HeaderSize())
	}
	if (b.GUID != guid.GUID{}) {
		t.Fatalf("expected zero GUID for a Microsoft tag, got %s", b.GUID)
	}
	if !bytes.Equal(b.Data, payload) {
		t.Fatalf("expected payload %x, got %x", payload, b.Data)
	}
}

func TestEncodeRejectsLengthMismatch(t *testing.T) {
	b := &DataBuffer{Tag: 0x100, DataLength: 5, Data: []byte{0xAA}}
	if _, err := b.Encode(); !errors.Is(err, ErrDataLengthMismatch) {
		t.Fatalf("expected ErrDataLengthMismatch, got %v", err)
	}
}

func TestEncodeRejectsOversizedPayload(t *testing.T) {
	data := make([]byte, MaximumReparseDataLength+1)
	b := &DataBuffer{Tag: 0x100, DataLength: uint16(len(data)), Data: data}
	if _, err := b.Encode(); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected ErrInvalidPayload, got %v", err)
	}
}

func TestDecodeRejectsShortBuffers(t *testing.T) {
	// Shorter than the common header.
	if _, err := Decode([]byte{0x03, 0x00, 0x00}); !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall for truncated header, got %v", err)
	}

	// Custom tag with no room for the GUID.
	raw := make([]byte, DataBufferHeaderSize)
	binary.LittleEndian.PutUint32(raw[0:4], 0x00000100)
	if _, err := Decode(raw); !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall for missing GUID, got %v", err)
	}

	// Data length that overruns the buffer.
	raw = make([]byte, GUIDDataBufferHeaderSize+2)
	binary.LittleEndian.PutUint32(raw[0:4], 0x00000100)
	binary.LittleEndian.PutUint16(raw[4:6], 3)
	if _, err := Decode(raw); !errors.Is(err, ErrBufferTooSmall) {
		t.Fatalf("expected ErrBufferTooSmall for truncated payload, got %v", err)
	}
}

func TestTagClassification(t *testing.T) {
	for _, tt := range []struct {
		tag       uint32
		microsoft bool
		surrogate bool
	}{
		{TagMountPoint, true, true},
		{TagSymbolicLink, true, true},
		{TagDedup, true, false},
		{TagWCI, true, false},
		{0x00000100, false, false},
	} {
		if got := IsTagMicrosoft(tt.tag); got != tt.microsoft {
			t.Errorf("IsTagMicrosoft(%#x) = %v, expected %v", tt.tag, got, tt.microsoft)
		}
		if got := IsTagNameSurrogate(tt.tag); got != tt.surrogate {
			t.Errorf("IsTagNameSurrogate(%#x) = %v, expected %v", tt.tag, got, tt.surrogate)
		}
	}
}
