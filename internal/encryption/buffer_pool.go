package encryption

import (
	"sync"
)

const defaultBufferSize = 32 * 1024 // 32KB

// bufferPool provides a pool of reusable read buffers for file transforms.
//
//nolint:gochecknoglobals
var bufferPool = sync.Pool{
	New: func() any {
		return make([]byte, defaultBufferSize)
	},
}
