package env

import (
	"fmt"

	"sapientino/game"
)

// Encode packs the observation into a single integer using mixed-radix
// positional encoding over the given component sizes: the first component is
// least significant. The sizes must come from ObservationSpaceSizes of the
// environment that produced the observation.
func Encode(obs game.Observation, sizes []int) int {
	components := [5]int{obs.X, obs.Y, obs.Theta, obs.Beep, obs.Color}
	result := components[0]
	shift := sizes[0]
	for i := 1; i < len(components); i++ {
		result += components[i] * shift
		shift *= sizes[i]
	}
	return result
}

// Decode is the inverse of Encode.
func Decode(encoded int, sizes []int) (game.Observation, error) {
	if len(sizes) != 5 {
		return game.Observation{}, fmt.Errorf("observation space has 5 components, got %d sizes", len(sizes))
	}
	components := make([]int, len(sizes))
	for i, size := range sizes {
		components[i] = encoded % size
		encoded /= size
	}
	if encoded != 0 {
		return game.Observation{}, fmt.Errorf("encoded observation out of range by %d", encoded)
	}
	return game.Observation{
		X:     components[0],
		Y:     components[1],
		Theta: components[2],
		Beep:  components[3],
		Color: components[4],
	}, nil
}

// SpaceSize is the number of distinct encoded observations, i.e. the product
// of the component sizes.
func SpaceSize(sizes []int) int {
	n := 1
	for _, size := range sizes {
		n *= size
	}
	return n
}
