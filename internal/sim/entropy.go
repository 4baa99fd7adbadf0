package sim

import crand "crypto/rand"

// cryptoRandRead fills buf with OS entropy, used only to seed the RNG when
// no explicit seed is configured. A failure here (practically impossible on
// any supported platform) leaves buf as all zeros, which is still a valid,
// if predictable, seed.
func cryptoRandRead(buf []byte) {
	_, _ = crand.Read(buf)
}
