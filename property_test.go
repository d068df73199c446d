package parscan

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// How to run:
//   - Deterministic randomized property test:
//     go test . -run TestRandomizedRoundsProperty -count=1
//
// The test drives random batch sizes through the pipeline, completing all
// scheduled work each round, and checks the emissions against a reference
// model: a FIFO of admitted data items, popped one tree capacity at a
// time.

func TestRandomizedRoundsProperty(t *testing.T) {
	teardown := redirectTracing(t)
	defer teardown()
	for _, seed := range []int64{1, 7, 42} {
		r := rand.New(rand.NewSource(seed))
		s, err := Empty[uint64, uint64](8, 1)
		require.NoError(t, err)

		var admitted []uint64 // items not yet part of an emitted batch
		var next uint64
		capacity := s.Trees()[0].Capacity()
		for round := 1; round <= 250; round++ {
			free := s.Trees()[0].RequiredJobCount()
			n := r.Intn(free + 1)
			data := make([]uint64, n)
			for i := range data {
				next++
				data[i] = next
			}
			em, ns := driveRound(t, s, data)
			s = ns
			admitted = append(admitted, data...)

			require.EqualValues(t, round, s.CurrentJobSequenceNumber(), "seed %d", seed)
			require.LessOrEqual(t, len(s.Trees()), s.MaxTrees(), "seed %d round %d", seed, round)
			for i, tr := range s.Trees() {
				require.NoError(t, tr.Check(), "seed %d round %d tree %d", seed, round, i)
			}
			if em == nil {
				continue
			}
			require.GreaterOrEqual(t, len(admitted), capacity,
				"seed %d round %d: emission without enough admitted data", seed, round)
			expect := admitted[:capacity]
			admitted = admitted[capacity:]
			require.Equal(t, expect, em.Data, "seed %d round %d: emission out of admission order", seed, round)
			require.Equal(t, sum(expect), em.Result, "seed %d round %d", seed, round)
		}
	}
}
