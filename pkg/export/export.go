// Package export formats snapshots for external sinks. The line formats
// are compatibility-sensitive: downstream text consumers parse them.
package export

import (
	"strconv"
	"strings"

	"ranger/pkg/registry"
)

// Distances renders the comma-separated distance line, meters at exactly
// three decimals, e.g. "0.343,0.512,0.000,1.204,0.087".
func Distances(s registry.Snapshot) string {
	var b strings.Builder
	for i, d := range s.DistancesM {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(d, 'f', 3, 64))
	}
	return b.String()
}

// FixedDistances renders the same line from the fixed-point micrometer
// path, for consumers that require integer-only determinism. The value
// is the last raw measurement, not the smoothed one.
func FixedDistances(s registry.Snapshot) string {
	var b strings.Builder
	for i, um := range s.DistancesUM {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(um/1_000_000, 10))
		b.WriteByte('.')
		frac := strconv.FormatUint((um/1_000)%1_000, 10)
		b.WriteString(strings.Repeat("0", 3-len(frac)))
		b.WriteString(frac)
	}
	return b.String()
}

// Stats renders the counter line:
// "seq=<n> pulses=<n0,...,nN-1> overruns=<n0,...,nN-1>".
func Stats(s registry.Snapshot) string {
	var b strings.Builder
	b.WriteString("seq=")
	b.WriteString(strconv.FormatUint(s.Sequence, 10))
	b.WriteString(" pulses=")
	writeCounts(&b, s.PulseCounts)
	b.WriteString(" overruns=")
	writeCounts(&b, s.OverrunCounts)
	return b.String()
}

func writeCounts(b *strings.Builder, counts []uint64) {
	for i, c := range counts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatUint(c, 10))
	}
}
