package encryption

import (
	"fmt"
	"io"
)

// streamingWriter wraps an io.Writer, XORing everything written through it.
// It tracks the stream offset so the output does not depend on how writes are chunked.
type streamingWriter struct {
	w      io.Writer
	cipher *Cipher
	buffer []byte
	offset int64
}

// newStreamingWriter creates a writer that transforms data with c before passing it to w.
func newStreamingWriter(w io.Writer, c *Cipher) *streamingWriter {
	return &streamingWriter{
		w:      w,
		cipher: c,
		buffer: make([]byte, defaultBufferSize),
	}
}

// Write implements io.Writer. The caller's slice is never modified.
func (sw *streamingWriter) Write(data []byte) (int, error) {
	written := 0

	for written < len(data) {
		chunk := data[written:]
		if len(chunk) > len(sw.buffer) {
			chunk = chunk[:len(sw.buffer)]
		}

		out := sw.buffer[:len(chunk)]
		sw.cipher.XORKeyStream(out, chunk, sw.offset)

		n, err := sw.w.Write(out)
		written += n
		sw.offset += int64(n)

		if err != nil {
			return written, fmt.Errorf("writing transformed chunk: %w", err)
		}

		if n < len(out) {
			return written, io.ErrShortWrite
		}
	}

	return written, nil
}

// transform streams reader through c into writer and returns the number of bytes written.
func transform(c *Cipher, reader io.Reader, writer io.Writer) (int64, error) {
	buf, ok := bufferPool.Get().([]byte)
	if !ok {
		buf = make([]byte, defaultBufferSize)
	}

	defer bufferPool.Put(buf) //nolint:staticcheck

	n, err := io.CopyBuffer(newStreamingWriter(writer, c), onlyReader{reader}, buf)
	if err != nil {
		return n, fmt.Errorf("transforming stream: %w", err)
	}

	return n, nil
}

// onlyReader hides any WriterTo implementation so io.CopyBuffer uses the pooled buffer.
type onlyReader struct {
	io.Reader
}
