// Package reparse reads, creates, and removes NTFS reparse points. It
// exchanges raw REPARSE_GUID_DATA_BUFFER structures with the filesystem
// through the FSCTL_GET_REPARSE_POINT, FSCTL_SET_REPARSE_POINT and
// FSCTL_DELETE_REPARSE_POINT control codes, and leaves the semantic
// contents of the attached data to the owner of the reparse tag.
//
// Every operation is transactional: it opens its own handle with
// FILE_FLAG_OPEN_REPARSE_POINT (plus FILE_FLAG_BACKUP_SEMANTICS for
// directories), performs a single query or mutation, and releases the
// handle before returning. Nothing is cached between calls.
package reparse

import "errors"

const (
	// MaximumReparseDataBufferSize is the largest buffer the filesystem
	// accepts for a reparse point, header included
	// (MAXIMUM_REPARSE_DATA_BUFFER_SIZE from ntifs.h).
	MaximumReparseDataBufferSize = 16 * 1024

	// DataBufferHeaderSize is the size of the tag, data length and
	// reserved fields shared by both buffer layouts
	// (REPARSE_DATA_BUFFER_HEADER_SIZE).
	DataBufferHeaderSize = 8

	// GUIDDataBufferHeaderSize is DataBufferHeaderSize plus the reparse
	// GUID carried by non-Microsoft reparse points
	// (REPARSE_GUID_DATA_BUFFER_HEADER_SIZE).
	GUIDDataBufferHeaderSize = DataBufferHeaderSize + 16

	// MaximumReparseDataLength is the largest payload that fits in a
	// GUID-layout buffer within MaximumReparseDataBufferSize.
	MaximumReparseDataLength = MaximumReparseDataBufferSize - GUIDDataBufferHeaderSize
)

// Well-known reparse tags from ntifs.h. Tags with the high bit set are
// reserved by Microsoft; everything else is vendor defined.
const (
	TagMountPoint   = 0xA0000003
	TagSymbolicLink = 0xA000000C
	TagDedup        = 0x80000013
	TagWCI          = 0x80000018
	TagAFUnix       = 0x80000023
)

var (
	// ErrNotReparsePoint is returned when the target path does not carry
	// the reparse point attribute.
	ErrNotReparsePoint = errors.New("the path is not a reparse point")

	// ErrUnknownReparseTag is returned by Delete when the on-disk tag or
	// GUID cannot be read. FSCTL_DELETE_REPARSE_POINT rejects a request
	// whose tag does not match the stored one, so deletion cannot
	// proceed without it.
	ErrUnknownReparseTag = errors.New("the reparse tag could not be determined")

	// ErrInvalidPayload is returned by CreateCustom when the payload is
	// empty or larger than MaximumReparseDataLength.
	ErrInvalidPayload = errors.New("the reparse payload is empty or exceeds the maximum reparse data size")

	// ErrBufferTooSmall is returned when a buffer is shorter than the
	// header and payload it claims to contain.
	ErrBufferTooSmall = errors.New("the buffer is too small to hold a reparse data buffer")

	// ErrDataLengthMismatch is returned when a buffer's data length
	// field disagrees with its payload.
	ErrDataLengthMismatch = errors.New("the reparse data length does not match the payload size")
)

// IsTagMicrosoft reports whether tag is reserved by Microsoft, meaning
// the reparse buffer uses the GUID-less layout (IsReparseTagMicrosoft).
func IsTagMicrosoft(tag uint32) bool {
	return tag&0x80000000 != 0
}

// IsTagNameSurrogate reports whether the reparse point stands in for
// another named entity, such as a mount point or symbolic link
// (IsReparseTagNameSurrogate).
func IsTagNameSurrogate(tag uint32) bool {
	return tag&0x20000000 != 0
}
