package ports

// EncodingPolicyPort supplies the palettes categorical mappings cycle through
// and the range numeric sizes are rescaled into.
type EncodingPolicyPort interface {
	Colors() []string
	Sizes() []float64
	Symbols() []string
	SizeRange() (float64, float64)
}
