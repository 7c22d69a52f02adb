package keyopts

// KeyOptsFactory creates empty KeyOpts instances.
type KeyOptsFactory interface {
	NewKeyOpts() KeyOpts
}
