package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds scratch buffers for encoding events. Bytes read from a pooled buffer must be
// copied before the buffer is returned.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 64))
	},
}
