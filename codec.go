package parscan

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/npillmayer/parscan/scantree"
)

// The forest serializes through an explicit wire representation so the
// internal layout can evolve without breaking stored states. Encoding is
// canonical CBOR, which makes serialization structural and deterministic:
// equal states encode to equal bytes.

type wireEmitted[A, D any] struct {
	Result A
	Data   []D
}

type wireState[A, D any] struct {
	Trees          []scantree.Snapshot[A, D]
	Acc            *wireEmitted[A, D]
	CurrJobSeqNo   uint64
	RecentTreeData []D
	OtherTreesData [][]D
	MaxBaseJobs    int
	Delay          int
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Encode serializes a state to canonical CBOR.
func Encode[A, D any](s *State[A, D]) ([]byte, error) {
	if s == nil {
		return nil, ErrIllegalArguments
	}
	w := wireState[A, D]{
		Trees:          make([]scantree.Snapshot[A, D], len(s.trees)),
		CurrJobSeqNo:   s.currJobSeqNo,
		RecentTreeData: s.recentTreeData,
		OtherTreesData: s.otherTreesData,
		MaxBaseJobs:    s.maxBaseJobs,
		Delay:          s.delay,
	}
	for i, tr := range s.trees {
		w.Trees[i] = tr.Snapshot()
	}
	if s.acc != nil {
		w.Acc = &wireEmitted[A, D]{Result: s.acc.Result, Data: s.acc.Data}
	}
	return encMode.Marshal(w)
}

// Decode reconstructs a state from its CBOR serialization, validating the
// forest shape.
func Decode[A, D any](data []byte) (*State[A, D], error) {
	var w wireState[A, D]
	if err := decMode.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIllegalArguments, err)
	}
	if len(w.Trees) == 0 || w.MaxBaseJobs < 1 || w.Delay < 0 {
		return nil, fmt.Errorf("%w: forest must carry at least one tree", ErrIllegalArguments)
	}
	depth := ceilLog2(w.MaxBaseJobs)
	if depth < 1 {
		depth = 1
	}
	s := &State[A, D]{
		trees:          make([]*scantree.Tree[A, D], len(w.Trees)),
		currJobSeqNo:   w.CurrJobSeqNo,
		recentTreeData: w.RecentTreeData,
		otherTreesData: w.OtherTreesData,
		maxBaseJobs:    w.MaxBaseJobs,
		delay:          w.Delay,
		depth:          depth,
	}
	for i, sn := range w.Trees {
		if sn.Depth != depth {
			return nil, fmt.Errorf("%w: tree %d depth %d, forest depth %d",
				scantree.ErrInvalidSnapshot, i, sn.Depth, depth)
		}
		tr, err := scantree.FromSnapshot(sn)
		if err != nil {
			return nil, err
		}
		s.trees[i] = tr
	}
	if w.Acc != nil {
		s.acc = &Emitted[A, D]{Result: w.Acc.Result, Data: w.Acc.Data}
	}
	return s, nil
}
