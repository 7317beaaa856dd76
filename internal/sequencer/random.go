package sequencer

import (
	"math/rand/v2"
	"time"
)

// RandomSource yields uniform integers in [0, max].
type RandomSource interface {
	Int(max int) int
}

type pcgSource struct {
	r *rand.Rand
}

// NewRandom returns a PCG backed source. A zero seed seeds from the clock.
func NewRandom(seed uint64) RandomSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &pcgSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgSource) Int(max int) int {
	if max <= 0 {
		return 0
	}
	return p.r.IntN(max + 1)
}
