package parscan

import (
	"testing"

	"github.com/npillmayer/parscan/scantree"
	"github.com/stretchr/testify/require"
)

// TestSchedulerSteadyStateJobCount checks the decimation rationale: at
// steady state exactly 2·maxBaseJobs - 1 jobs are due per round.
func TestSchedulerSteadyStateJobCount(t *testing.T) {
	teardown := redirectTracing(t)
	defer teardown()
	s, err := Empty[uint64, uint64](8, 2)
	require.NoError(t, err)
	for round := 1; round <= 40; round++ {
		_, s = driveRound(t, s, batch(uint64(round), 8))
		if round >= 13 {
			require.Len(t, s.JobsForNextUpdate(8), 2*8-1, "steady-state work per round")
		}
	}
}

// TestSchedulerExactSequence hand-checks the job list for maxBaseJobs=2,
// delay=0 over the first rounds.
func TestSchedulerExactSequence(t *testing.T) {
	teardown := redirectTracing(t)
	defer teardown()
	s, err := Empty[uint64, uint64](2, 0)
	require.NoError(t, err)

	require.Empty(t, s.WorkForCurrentTree(), "no tail, no due work")

	_, s = driveRound(t, s, []uint64{3, 5})
	jobs := s.WorkForCurrentTree()
	require.Len(t, jobs, 2)
	require.Equal(t, scantree.AvailableBase[uint64, uint64](3), jobs[0])
	require.Equal(t, scantree.AvailableBase[uint64, uint64](5), jobs[1])

	_, s = driveRound(t, s, []uint64{10, 20})
	jobs = s.WorkForCurrentTree()
	require.Len(t, jobs, 3)
	require.Equal(t, scantree.AvailableBase[uint64, uint64](10), jobs[0])
	require.Equal(t, scantree.AvailableBase[uint64, uint64](20), jobs[1])
	require.Equal(t, scantree.AvailableMerge[uint64, uint64](3, 5), jobs[2],
		"oldest tree's root merge is due last")
}

// TestNextJobsCountsAtDelayZero checks that the full pending list splits
// into the due tail work plus the head tree's base row.
func TestNextJobsCountsAtDelayZero(t *testing.T) {
	teardown := redirectTracing(t)
	defer teardown()
	s, err := Empty[uint64, uint64](4, 0)
	require.NoError(t, err)
	for round := 1; round <= 20; round++ {
		_, s = driveRound(t, s, batch(uint64(round), 4))
		require.Len(t, s.NextJobs(),
			len(s.WorkForCurrentTree())+len(s.BaseJobsOnLatestTree()),
			"round %d", round)
	}
}

func TestNextKJobs(t *testing.T) {
	teardown := redirectTracing(t)
	defer teardown()
	s, err := Empty[uint64, uint64](2, 0)
	require.NoError(t, err)
	_, s = driveRound(t, s, []uint64{3, 5})

	all := s.NextJobs()
	require.Len(t, all, 2, "two base jobs pending on the demoted tree")
	got, err := s.NextKJobs(1)
	require.NoError(t, err)
	require.Equal(t, all[:1], got)
	_, err = s.NextKJobs(len(all) + 1)
	require.ErrorIs(t, err, ErrInsufficientWork)
}

// TestJobsForNextUpdateOverflow checks that an overflowing batch extends
// the due work by the next tree's share.
func TestJobsForNextUpdateOverflow(t *testing.T) {
	teardown := redirectTracing(t)
	defer teardown()
	s, err := Empty[uint64, uint64](4, 0)
	require.NoError(t, err)
	_, s = driveRound(t, s, []uint64{1, 2, 3})

	require.Empty(t, s.JobsForNextUpdate(1), "a fitting batch adds no work")
	jobs := s.JobsForNextUpdate(3)
	require.Len(t, jobs, 3, "overflow exposes the head tree's pending bases")
	for i, j := range jobs {
		require.Equal(t, scantree.JobBase, j.Kind)
		require.EqualValues(t, i+1, j.Base)
	}
}
