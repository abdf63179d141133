package cutelog

import "sync"

// buffer is a pooled byte slice for rendering lines.
type buffer struct{ b []byte }

var bufPool = sync.Pool{New: func() any { return &buffer{b: make([]byte, 0, 512)} }}

func getBuf() *buffer {
	buf := bufPool.Get().(*buffer)
	buf.b = buf.b[:0]
	return buf
}

func putBuf(buf *buffer) {
	// avoid retaining very large backing arrays
	if cap(buf.b) <= 64*1024 {
		bufPool.Put(buf)
	}
}
