package mmap

import (
	pkgErrors "github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Open maps a given file into memory for reading.  Empty files produce an
// empty region, since they cannot be mapped.
func Open(path string) (*Region, error) {
	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, pkgErrors.Wrapf(err, "failed to open file %#v", path)
	}

	defer unix.Close(fd)

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return nil, pkgErrors.Wrapf(err, "failed to obtain size of file %#v", path)
	} else if stat.Size == 0 {
		return &Region{Data: []byte{}}, nil
	}

	return NewRegion(fd, int(stat.Size))
}

// ReadFile reads the entire contents of a given file through a memory map.
// The contents are copied out of the mapping, so the returned slice remains
// valid after the mapping is released.
func ReadFile(path string) ([]byte, error) {
	region, err := Open(path)
	if err != nil {
		return nil, err
	}

	defer region.Close()

	bytes := make([]byte, region.Len())

	if _, err := region.ReadAt(bytes, 0); err != nil && len(bytes) > 0 {
		return nil, pkgErrors.Wrapf(err, "failed to read file %#v", path)
	}

	return bytes, nil
}
