package output

import (
	"io"
)

// fieldReader performs absolute seek-then-read access on a results file.
// Every read repositions the cursor, so no position is carried between calls.
type fieldReader struct {
	file File
}

func newFieldReader(file File) *fieldReader {
	return &fieldReader{file: file}
}

// readAt reads exactly n bytes at offset relative to whence
func (r *fieldReader) readAt(offset int64, whence int, n int) ([]byte, error) {
	if _, err := r.file.Seek(offset, whence); err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(r.file, buf); err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return buf, nil
}

// read reads n bytes at an absolute offset
func (r *fieldReader) read(offset int64, n int) ([]byte, error) {
	return r.readAt(offset, io.SeekStart, n)
}

// size returns the file length
func (r *fieldReader) size() (int64, error) {
	return r.file.Seek(0, io.SeekEnd)
}
