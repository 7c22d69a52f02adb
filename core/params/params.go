package params

const (
	// SecParam is the security parameter in bits.
	SecParam = 256
	SecBytes = SecParam / 8

	// BitsSafePrime is the default size of each safe prime factor of N.
	BitsSafePrime = 512
	// MinBitsSafePrime is the smallest factor size GenerateKeypair accepts.
	// Anything this small is only useful in tests.
	MinBitsSafePrime = 16

	// MaxSamplingIterations bounds a single rejection sampling loop.
	MaxSamplingIterations = 256
	// SamplingRetries is the number of fresh sampling attempts made before
	// exhaustion is reported to the caller.
	SamplingRetries = 3

	// MaxSafePrimeCandidates bounds the Sophie Germain candidates tried per safe prime.
	MaxSafePrimeCandidates = 1 << 20
	// MaxDistinctPrimeAttempts bounds regeneration of q when it collides with p.
	MaxDistinctPrimeAttempts = 16
)
