package profiles

import "math/rand/v2"

// Weight bounds, inclusive
const (
	MinWeight = 1
	MaxWeight = 10
)

// WeightSource supplies the weight assigned to each legacy resource.
type WeightSource interface {
	Weight() int
}

// WeightFunc adapts a function to WeightSource
type WeightFunc func() int

// Weight calls f
func (f WeightFunc) Weight() int {
	return f()
}

// RandomWeights draws weights uniformly from [MinWeight, MaxWeight].
type RandomWeights struct {
	rng *rand.Rand
}

// NewRandomWeights returns a RandomWeights. A zero seed gives a randomly seeded
// generator; any other seed produces the same sequence on every run.
func NewRandomWeights(seed int64) *RandomWeights {
	var src rand.Source
	if seed == 0 {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	} else {
		src = rand.NewPCG(uint64(seed), uint64(seed))
	}
	return &RandomWeights{rng: rand.New(src)}
}

// Weight returns the next weight
func (w *RandomWeights) Weight() int {
	return MinWeight + w.rng.IntN(MaxWeight-MinWeight+1)
}
