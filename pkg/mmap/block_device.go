package mmap

import (
	"errors"
	"io"
	"runtime/debug"
	"syscall"

	pkgErrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Region represents a read-only memory mapping of (part of) a file.
type Region struct {
	Data []byte
}

// NewRegion maps the first sizeBytes of the file referred to by the given
// descriptor into memory for reading.  The descriptor may be closed once the
// region has been created.
func NewRegion(fileDescriptor, sizeBytes int) (*Region, error) {
	data, err := unix.Mmap(fileDescriptor, 0, sizeBytes, syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		return nil, pkgErrors.Wrap(err, "failed to memory map region")
	}

	return &Region{Data: data}, nil
}

// Len returns the number of bytes in this region.
func (r *Region) Len() int {
	return len(r.Data)
}

// ReadAt reads through the memory map at a given offset.
func (r *Region) ReadAt(p []byte, off int64) (n int, err error) {
	if off < 0 {
		return 0, syscall.EINVAL
	}

	if off > int64(len(r.Data)) {
		return 0, io.EOF
	}
	// Install a page fault handler, so that I/O errors against the
	// memory map (e.g., the file being truncated underneath us) don't
	// cause us to crash.
	old := debug.SetPanicOnFault(true)
	defer func() {
		debug.SetPanicOnFault(old)

		if recover() != nil {
			err = errors.New("page fault occurred while reading from memory map")
		}
	}()

	n = copy(p, r.Data[off:])
	if n < len(p) {
		err = io.EOF
	}

	return
}

// Close unmaps this region.  The region must not be used afterwards.
func (r *Region) Close() error {
	if r.Data == nil {
		return nil
	}

	err := unix.Munmap(r.Data)
	r.Data = nil

	return err
}
