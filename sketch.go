// sketch.go: TinyLFU admission filter over a count-min sketch
//
// Copyright (c) 2026 evictlab
// SPDX-License-Identifier: MPL-2.0

package windsim

// tinyLFU estimates historical access frequency with a Count-Min Sketch of
// 4-bit counters packed sixteen to a word, and admits a candidate only when
// it is estimated to be more frequent than the victim it would displace.
//
// Policies replay a trace as a single sequential stream, so the sketch
// carries no synchronization.
type tinyLFU struct {
	// table stores 4-bit counters packed into uint64 values.
	// Each uint64 holds 16 counters.
	table []uint64

	// tableMask enables fast modulo (table size is a power of 2).
	tableMask uint64

	// seeds for the four hash functions
	seed1, seed2, seed3, seed4 uint64

	// samples counts recorded accesses since the last aging reset.
	samples int64

	// resetThreshold defines when counters are halved (aging).
	resetThreshold int64
}

// NewTinyLFU creates a TinyLFU admission filter sized for a policy holding
// up to maximumSize resident entries.
func NewTinyLFU(maximumSize int) Admittor {
	tableSize := nextPowerOf2(maximumSize / 4) // 16 counters per word
	if tableSize < 64 {
		tableSize = 64
	}

	return &tinyLFU{
		table:          make([]uint64, tableSize),
		tableMask:      uint64(tableSize - 1),
		seed1:          0x9e3779b97f4a7c15, // golden ratio hash seeds
		seed2:          0xbf58476d1ce4e5b9,
		seed3:          0x94d049bb133111eb,
		seed4:          0xbf58476d1ce4e5b7,
		resetThreshold: int64(maximumSize) * 10,
	}
}

// nextPowerOf2 returns the next power of 2 greater than or equal to n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}

// Record notes one access to key, aging the sketch periodically so stale
// long-term entries fade away.
func (s *tinyLFU) Record(key uint64) {
	s.samples++
	if s.samples >= s.resetThreshold {
		s.reset()
		s.samples = 0
	}

	s.bump(s.hash1(key)&s.tableMask, (key&0xF)*4)
	s.bump(s.hash2(key)&s.tableMask, ((key>>4)&0xF)*4)
	s.bump(s.hash3(key)&s.tableMask, ((key>>8)&0xF)*4)
	s.bump(s.hash4(key)&s.tableMask, ((key>>12)&0xF)*4)
}

// bump increments one 4-bit counter, saturating at 15.
func (s *tinyLFU) bump(tablePos, subPos uint64) {
	counter := (s.table[tablePos] >> subPos) & 0xF
	if counter >= 15 {
		return
	}
	mask := uint64(0xF) << subPos
	s.table[tablePos] = (s.table[tablePos] & ^mask) | ((counter + 1) << subPos)
}

// Admit reports whether candidate should displace victim. Ties keep the
// victim resident: a candidate must be strictly more frequent to be worth
// an eviction.
func (s *tinyLFU) Admit(candidate, victim uint64) bool {
	return s.estimate(candidate) > s.estimate(victim)
}

// estimate returns the minimum of the four counter positions, the usual
// Count-Min Sketch bound.
func (s *tinyLFU) estimate(key uint64) uint64 {
	count1 := (s.table[s.hash1(key)&s.tableMask] >> ((key & 0xF) * 4)) & 0xF
	count2 := (s.table[s.hash2(key)&s.tableMask] >> (((key >> 4) & 0xF) * 4)) & 0xF
	count3 := (s.table[s.hash3(key)&s.tableMask] >> (((key >> 8) & 0xF) * 4)) & 0xF
	count4 := (s.table[s.hash4(key)&s.tableMask] >> (((key >> 12) & 0xF) * 4)) & 0xF
	return min4(count1, count2, count3, count4)
}

// reset halves every counter so the sketch tracks recent history.
func (s *tinyLFU) reset() {
	for i, word := range s.table {
		halved := uint64(0)
		for j := 0; j < 16; j++ {
			shift := uint64(j * 4)
			counter := (word >> shift) & 0xF
			halved |= (counter >> 1) << shift
		}
		s.table[i] = halved
	}
}

// Hash functions using the multiplication method for good distribution.
func (s *tinyLFU) hash1(key uint64) uint64 { return (key * s.seed1) >> 32 }
func (s *tinyLFU) hash2(key uint64) uint64 { return (key * s.seed2) >> 32 }
func (s *tinyLFU) hash3(key uint64) uint64 { return (key * s.seed3) >> 32 }
func (s *tinyLFU) hash4(key uint64) uint64 { return (key * s.seed4) >> 32 }

// min4 returns the minimum of 4 uint64 values.
func min4(a, b, c, d uint64) uint64 {
	min := a
	if b < min {
		min = b
	}
	if c < min {
		min = c
	}
	if d < min {
		min = d
	}
	return min
}
