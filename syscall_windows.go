//go:build windows

package reparse

import (
	"golang.org/x/sys/windows"

	"github.com/Microsoft/go-reparse/internal/winapi"
)

// filesystem is the slice of the Win32 surface the accessor functions
// touch: the attribute query, reparse-aware handle acquisition, and the
// reparse point FSCTLs. The production implementation is winFilesystem;
// tests substitute a fake to drive the FSCTL protocol without touching
// a volume.
type filesystem interface {
	GetFileAttributes(path string) (uint32, error)
	OpenReparseHandle(path string, access uint32, mode uint32, flags uint32) (windows.Handle, error)
	DeviceIoControl(h windows.Handle, code uint32, in []byte, out []byte) (uint32, error)
	CloseHandle(h windows.Handle)
}

var fs filesystem = winFilesystem{}

type winFilesystem struct{}

func (winFilesystem) GetFileAttributes(path string) (uint32, error) {
	return winapi.GetFileAttributes(path)
}

func (winFilesystem) OpenReparseHandle(path string, access uint32, mode uint32, flags uint32) (windows.Handle, error) {
	return winapi.CreateFile(path, access, mode, nil, windows.OPEN_EXISTING, flags, 0)
}

func (winFilesystem) DeviceIoControl(h windows.Handle, code uint32, in []byte, out []byte) (uint32, error) {
	var (
		inPtr, outPtr   *byte
		inSize, outSize uint32
		ret             uint32
	)
	if len(in) > 0 {
		inPtr, inSize = &in[0], uint32(len(in))
	}
	if len(out) > 0 {
		outPtr, outSize = &out[0], uint32(len(out))
	}
	err := winapi.DeviceIoControl(h, code, inPtr, inSize, outPtr, outSize, &ret, nil)
	return ret, err
}

func (winFilesystem) CloseHandle(h windows.Handle) {
	_ = windows.CloseHandle(h)
}
