package common

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Plaintext buffers are wiped once they have been encrypted.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	if b == nil {
		return
	}
	for i := range b {
		b[i] = 0
	}
}
