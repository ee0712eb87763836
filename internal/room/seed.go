package room

import (
	"hash/fnv"
	"io"
	"math/rand/v2"
	"slices"
	"strconv"
)

// randIntN is indirected for test determinism of join codes.
var randIntN = rand.IntN

// selectionSeed derives a 32-bit seed from the room identity. FNV-1a over
// the concatenation is order-sensitive, so swapping roomID and packID
// yields a different session.
func selectionSeed(roomID, packID string, version int) uint32 {
	h := fnv.New32a()
	io.WriteString(h, roomID+":"+packID+":"+strconv.Itoa(version))
	return h.Sum32()
}

// selectQuestions shuffles the pool with a PRNG seeded from seed and takes
// the first n ids. The same seed always yields the same order.
func selectQuestions(poolIDs []string, seed uint32, n int) []string {
	out := slices.Clone(poolIDs)
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out[:n]
}
