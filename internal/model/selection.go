package model

import "sort"

// JourneyFare is one leg's selection: the journey the user picked and the
// specific fare on it.
type JourneyFare struct {
	Journey Journey `json:"journey"`
	Fare    Fare    `json:"fare"`
}

// FareSelections maps leg index to the selection for that leg. Absence of an
// index means no selection has been made for that leg.
type FareSelections map[int]JourneyFare

// SortedIndexes returns the selected leg indexes in ascending order.
func (fs FareSelections) SortedIndexes() []int {
	idx := make([]int, 0, len(fs))
	for i := range fs {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}

// Clone returns a copy that can be mutated without affecting the original.
func (fs FareSelections) Clone() FareSelections {
	out := make(FareSelections, len(fs))
	for i, jf := range fs {
		out[i] = jf
	}
	return out
}

// LowFareView is the calendar view kind selected for a leg's low-fare strip.
type LowFareView string

const (
	LowFareViewDay   LowFareView = "day"
	LowFareViewMonth LowFareView = "month"
)

// LowFareViewSelections maps leg index to the active low-fare view.
type LowFareViewSelections map[int]LowFareView

// Clone returns a copy that can be mutated without affecting the original.
func (vs LowFareViewSelections) Clone() LowFareViewSelections {
	out := make(LowFareViewSelections, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}
