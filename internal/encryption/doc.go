// Package encryption obfuscates game text assets with a repeating-key XOR cipher.
//
// Encrypted files are written next to their source with a suffix appended
// (name.txt -> name.txt.enc) and are exactly as long as the source. The
// transform is self-inverse: running it again with the same key restores the
// original bytes, which is how the game reads its assets.
package encryption
