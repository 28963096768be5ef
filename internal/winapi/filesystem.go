//go:build windows

package winapi

// Reparse point FSCTLs, from ntifs.h. FSCTL_SET_REPARSE_POINT and
// FSCTL_DELETE_REPARSE_POINT take a reparse data buffer as input and
// return nothing; FSCTL_GET_REPARSE_POINT takes no input and fills the
// output buffer with the stored reparse data.
const (
	FSCTL_SET_REPARSE_POINT    = 0x000900a4
	FSCTL_GET_REPARSE_POINT    = 0x000900a8
	FSCTL_DELETE_REPARSE_POINT = 0x000900ac
)

// HANDLE CreateFileW(
//   [in]           LPCWSTR               lpFileName,
//   [in]           DWORD                 dwDesiredAccess,
//   [in]           DWORD                 dwShareMode,
//   [in, optional] LPSECURITY_ATTRIBUTES lpSecurityAttributes,
//   [in]           DWORD                 dwCreationDisposition,
//   [in]           DWORD                 dwFlagsAndAttributes,
//   [in, optional] HANDLE                hTemplateFile
// );
//
//sys CreateFile(name string, access uint32, mode uint32, sa *windows.SecurityAttributes, createmode uint32, attrs uint32, templatefile windows.Handle) (handle windows.Handle, err error) [failretval==windows.InvalidHandle] = CreateFileW

// DWORD GetFileAttributesW(
//   [in] LPCWSTR lpFileName
// );
//
//sys GetFileAttributes(name string) (attrs uint32, err error) [failretval==windows.INVALID_FILE_ATTRIBUTES] = GetFileAttributesW

// BOOL DeviceIoControl(
//   [in]                HANDLE       hDevice,
//   [in]                DWORD        dwIoControlCode,
//   [in, optional]      LPVOID       lpInBuffer,
//   [in]                DWORD        nInBufferSize,
//   [out, optional]     LPVOID       lpOutBuffer,
//   [in]                DWORD        nOutBufferSize,
//   [out, optional]     LPDWORD      lpBytesReturned,
//   [in, out, optional] LPOVERLAPPED lpOverlapped
// );
//
//sys DeviceIoControl(handle windows.Handle, ioControlCode uint32, inBuffer *byte, inBufferSize uint32, outBuffer *byte, outBufferSize uint32, bytesReturned *uint32, overlapped *windows.Overlapped) (err error) = DeviceIoControl
