// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package demand

import (
	"math/rand/v2"
	"time"
)

// UniformSource is a RandomSource backed by a PCG generator.
type UniformSource struct {
	rng *rand.Rand
}

// NewUniformSource returns a seeded source. A zero seed uses the current time, so runs are not
// reproducible unless a seed is configured.
func NewUniformSource(seed uint64) *UniformSource {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec
	}
	return &UniformSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (u *UniformSource) Uniform(lo, hi float64) float64 {
	return lo + u.rng.Float64()*(hi-lo)
}
