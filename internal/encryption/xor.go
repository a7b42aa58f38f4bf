package encryption

// Cipher is a repeating-key XOR stream.
//
// Byte i of a stream is combined with key[i mod len(key)]. The transform is
// its own inverse, so the same Cipher both encrypts and decrypts.
type Cipher struct {
	key []byte
}

// NewCipher creates a Cipher over a copy of key.
func NewCipher(key []byte) (*Cipher, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &Cipher{key: k}, nil
}

// XORKeyStream XORs each byte of src with the key stream positioned at offset,
// storing the result in dst. dst must be at least as long as src; dst and src
// may overlap entirely.
func (c *Cipher) XORKeyStream(dst, src []byte, offset int64) {
	if len(dst) < len(src) {
		panic("encryption: output smaller than input")
	}

	size := int64(len(c.key))
	pos := int(offset % size)

	for i, b := range src {
		dst[i] = b ^ c.key[pos]

		pos++
		if pos == len(c.key) {
			pos = 0
		}
	}
}

// apply returns a new slice holding data transformed from the start of the key stream.
func (c *Cipher) apply(data []byte) []byte {
	out := make([]byte, len(data))
	c.XORKeyStream(out, data, 0)

	return out
}
