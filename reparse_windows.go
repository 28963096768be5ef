//go:build windows

package reparse

import (
	"encoding/binary"
	"os"

	"github.com/Microsoft/go-winio/pkg/guid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	"github.com/Microsoft/go-reparse/internal/winapi"
)

// openForRead and openForWrite open path with reparse point semantics:
// FILE_FLAG_OPEN_REPARSE_POINT so the reparse metadata itself is
// addressed rather than the redirect target, and, for directories,
// FILE_FLAG_BACKUP_SEMANTICS so the open does not require directory
// listing rights.

func openForRead(path string) (windows.Handle, error) {
	return openReparseHandle(path, windows.GENERIC_READ, windows.FILE_SHARE_READ)
}

func openForWrite(path string) (windows.Handle, error) {
	return openReparseHandle(path, windows.GENERIC_WRITE, windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE)
}

func openReparseHandle(path string, access uint32, mode uint32) (windows.Handle, error) {
	flags := uint32(windows.FILE_FLAG_OPEN_REPARSE_POINT)
	if attrs, err := fs.GetFileAttributes(path); err == nil && attrs&windows.FILE_ATTRIBUTE_DIRECTORY != 0 {
		flags |= windows.FILE_FLAG_BACKUP_SEMANTICS
	}
	h, err := fs.OpenReparseHandle(path, access, mode, flags)
	if err != nil {
		return windows.InvalidHandle, &os.PathError{Op: "open", Path: path, Err: err}
	}
	return h, nil
}

// PointExists reports whether path carries the reparse point attribute.
// It only reads the file attributes; no handle is opened.
func PointExists(path string) bool {
	attrs, err := fs.GetFileAttributes(path)
	return err == nil && attrs&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0
}

// query issues FSCTL_GET_REPARSE_POINT against path and returns the
// filled portion of the scratch buffer.
func query(path string) ([]byte, error) {
	if !PointExists(path) {
		return nil, ErrNotReparsePoint
	}
	h, err := openForRead(path)
	if err != nil {
		return nil, err
	}
	defer fs.CloseHandle(h)

	out := make([]byte, MaximumReparseDataBufferSize)
	n, err := fs.DeviceIoControl(h, winapi.FSCTL_GET_REPARSE_POINT, nil, out)
	if err != nil {
		return nil, errors.Wrapf(err, "FSCTL_GET_REPARSE_POINT %s", path)
	}
	if n < DataBufferHeaderSize {
		return nil, ErrBufferTooSmall
	}
	return out[:n], nil
}

// GetTag returns the reparse tag attached to path. The tag occupies the
// first four bytes of both buffer layouts, so this is valid for system
// and custom reparse points alike.
func GetTag(path string) (uint32, error) {
	raw, err := query(path)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(raw[0:4]), nil
}

// GetGUID returns the sixteen bytes at the reparse GUID offset of
// path's reparse buffer. The value is only meaningful for custom
// (non-Microsoft) tags; for Microsoft tags that region is the start of
// the tag-specific data and the result is undefined. No attempt is made
// to detect or correct this.
func GetGUID(path string) (guid.GUID, error) {
	raw, err := query(path)
	if err != nil {
		return guid.GUID{}, err
	}
	// Short system buffers leave the tail of the GUID region zero.
	var g [16]byte
	copy(g[:], raw[DataBufferHeaderSize:])
	return guid.FromWindowsArray(g), nil
}

// GetBuffer reads and decodes path's full reparse buffer, including the
// tag owner's payload. Unlike GetGUID it decodes layout-aware: the GUID
// field is left zero for Microsoft tags.
func GetBuffer(path string) (*DataBuffer, error) {
	raw, err := query(path)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}

// Delete removes the reparse point attached to path, leaving the file
// or directory itself in place.
//
// FSCTL_DELETE_REPARSE_POINT demands a header whose shape matches the
// stored buffer's layout, and there is no query for which layout that
// is, so deletion probes: first a delete with the GUID region zeroed
// (the system layout), then, only if the driver rejects that, a second
// delete with the reparse GUID populated. Both requests pass the same
// GUID-sized header; there is no third attempt.
func Delete(path string) error {
	if !PointExists(path) {
		return ErrNotReparsePoint
	}
	g, gerr := GetGUID(path)
	tag, terr := GetTag(path)
	if gerr != nil || terr != nil {
		return ErrUnknownReparseTag
	}

	hdr := DataBuffer{Tag: tag}
	buf, err := hdr.Encode()
	if err != nil {
		return err
	}

	h, err := openForWrite(path)
	if err != nil {
		return err
	}
	defer fs.CloseHandle(h)

	_, derr := fs.DeviceIoControl(h, winapi.FSCTL_DELETE_REPARSE_POINT, buf, nil)
	if derr == nil {
		return nil
	}
	logrus.WithFields(logrus.Fields{
		"path":       path,
		"reparseTag": tag,
	}).WithError(derr).Debug("header-only reparse delete rejected, retrying with GUID")

	ga := g.ToWindowsArray()
	copy(buf[DataBufferHeaderSize:], ga[:])
	_, err = fs.DeviceIoControl(h, winapi.FSCTL_DELETE_REPARSE_POINT, buf, nil)
	return errors.Wrapf(err, "FSCTL_DELETE_REPARSE_POINT %s", path)
}

// CreateCustom attaches a custom reparse point to path with the given
// tag, GUID and payload. The target does not need to carry a reparse
// point already; this is how one is attached. The payload must be
// non-empty and no larger than MaximumReparseDataLength; the library
// never pads or truncates it.
func CreateCustom(path string, tag uint32, g guid.GUID, data []byte) error {
	if len(data) == 0 || len(data) > MaximumReparseDataLength {
		return ErrInvalidPayload
	}

	b := DataBuffer{
		Tag:        tag,
		DataLength: uint16(len(data)),
		GUID:       g,
		Data:       data,
	}
	buf, err := b.Encode()
	if err != nil {
		return err
	}

	h, err := openForWrite(path)
	if err != nil {
		return err
	}
	defer fs.CloseHandle(h)

	_, err = fs.DeviceIoControl(h, winapi.FSCTL_SET_REPARSE_POINT, buf, nil)
	return errors.Wrapf(err, "FSCTL_SET_REPARSE_POINT %s", path)
}
