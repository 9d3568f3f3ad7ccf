package utils

// MaxRank is the largest rank a uint16 rank field can carry.
const MaxRank = 65535

// CreateRankList creates a slice of ranks based on position.
// The rank starts at 1 for the first item, for results that are already
// sorted best-first. Ranks saturate at MaxRank: the MaxRank-th item and
// every one after it share that rank, and callers order by slice position.
func CreateRankList(count int) []uint16 {
	if count <= 0 {
		return []uint16{}
	}
	ranks := make([]uint16, count)
	for i := range ranks {
		r := i + 1
		if r > MaxRank {
			r = MaxRank
		}
		ranks[i] = uint16(r)
	}
	return ranks
}
