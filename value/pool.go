package value

import (
	"strconv"
	"sync"
)

// pathBufPool recycles the byte buffers used to build dotted/indexed trace
// paths during validation, avoiding an allocation per nested field on the
// common case of a shallow shape graph.
var pathBufPool = sync.Pool{
	New: func() any {
		buf := make([]byte, 0, 64)
		return &buf
	},
}

func getPathBuf() *[]byte {
	return pathBufPool.Get().(*[]byte)
}

func putPathBuf(buf *[]byte) {
	*buf = (*buf)[:0]
	pathBufPool.Put(buf)
}

// appendPath appends ".name" to base (or just "name" when base is empty).
func appendPath(base, name string) string {
	bufp := getPathBuf()
	defer putPathBuf(bufp)
	buf := *bufp
	buf = append(buf, base...)
	if len(buf) > 0 {
		buf = append(buf, '.')
	}
	buf = append(buf, name...)
	return string(buf)
}

// appendIndex appends "[n]" to base.
func appendIndex(base string, n int) string {
	bufp := getPathBuf()
	defer putPathBuf(bufp)
	buf := *bufp
	buf = append(buf, base...)
	buf = append(buf, '[')
	buf = strconv.AppendInt(buf, int64(n), 10)
	buf = append(buf, ']')
	return string(buf)
}
