// Package bitutil holds the bitmap helpers shared by the 32 way tries.
package bitutil

//POPCNT Implementation
// adapted from https://github.com/jddixon/xlUtil_go/blob/master/popCount.go
//  was MIT License

const (
	octoFives  = uint32(0x55555555)
	octoThrees = uint32(0x33333333)
	octoOnes   = uint32(0x01010101)
	octoFs     = uint32(0x0f0f0f0f)
)

// BitCount32 is a software based implementation of the POPCNT instruction.
// It returns the number of bits set in a uint32 word.
func BitCount32(n uint32) int {
	n = n - ((n >> 1) & octoFives)
	n = (n & octoThrees) + ((n >> 2) & octoThrees)
	return int((((n + (n >> 4)) & octoFs) * octoOnes) >> 24)
}

// RealIndex maps a single bit of a nodeMap to the position of its node in a
// compacted node slice; ie. the number of bits set in nodeMap below bit.
func RealIndex(nodeMap, bit uint32) int {
	return BitCount32(nodeMap & (bit - 1))
}

// NodeMapString renders a nodeMap as "bb bbbbbbbbbb bbbbbbbbbb bbbbbbbbbb",
// most significant bits first. This is only good for debug messages.
func NodeMapString(nodeMap uint32) string {
	var strs = make([]byte, 0, 35)

	for i := 31; i >= 0; i-- {
		if nodeMap&(1<<uint(i)) != 0 {
			strs = append(strs, '1')
		} else {
			strs = append(strs, '0')
		}
		if i == 30 || i == 20 || i == 10 {
			strs = append(strs, ' ')
		}
	}

	return string(strs)
}
