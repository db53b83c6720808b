// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package fileid

import (
	"io/fs"

	"golang.org/x/sys/unix"
)

// Get identifies a file by device, inode, size and modification time.
func Get(name string) (ID, error) {
	var st unix.Stat_t
	if err := unix.Stat(name, &st); err != nil {
		return 0, &fs.PathError{Op: "stat", Path: name, Err: err}
	}
	if st.Mode&unix.S_IFMT != unix.S_IFREG {
		return 0, &fs.PathError{Op: "fileid", Path: name, Err: ErrNotRegular}
	}
	sec, nsec := st.Mtim.Unix()
	return fromStat(uint64(st.Dev), uint64(st.Ino), st.Size, sec, nsec), nil
}
