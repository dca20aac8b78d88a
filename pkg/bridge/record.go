// Package bridge serializes snapshots into the fixed binary record
// carried over the downstream point-to-point channel, and ships them.
package bridge

import (
	"encoding/binary"
	"fmt"
	"math"

	"ranger/pkg/registry"
)

// Record is the wire payload, little-endian:
//
//	uint32  seq
//	float32 dist_m[N]
//	uint32  status   (reserved, 0)
//
// 4 + 4N + 4 bytes total. N is fixed per deployment; both ends must
// agree on it.
type Record struct {
	Seq    uint32
	DistM  []float32
	Status uint32
}

// FromSnapshot builds the record for one snapshot. The 64-bit sequence
// is truncated to 32 bits; downstream treats it as a staleness signal,
// so wraparound is harmless.
func FromSnapshot(s registry.Snapshot) Record {
	dist := make([]float32, len(s.DistancesM))
	for i, d := range s.DistancesM {
		dist[i] = float32(d)
	}
	return Record{Seq: uint32(s.Sequence), DistM: dist}
}

// Size returns the encoded length for n channels.
func Size(n int) int { return 4 + 4*n + 4 }

// Marshal encodes the record into a fresh buffer.
func (r Record) Marshal() []byte {
	buf := make([]byte, Size(len(r.DistM)))
	binary.LittleEndian.PutUint32(buf[0:4], r.Seq)
	for i, d := range r.DistM {
		binary.LittleEndian.PutUint32(buf[4+4*i:], math.Float32bits(d))
	}
	binary.LittleEndian.PutUint32(buf[4+4*len(r.DistM):], r.Status)
	return buf
}

// Unmarshal decodes a record for the expected channel count.
func Unmarshal(buf []byte, channels int) (Record, error) {
	if len(buf) != Size(channels) {
		return Record{}, fmt.Errorf("record length %d, expected %d for %d channels",
			len(buf), Size(channels), channels)
	}
	r := Record{
		Seq:   binary.LittleEndian.Uint32(buf[0:4]),
		DistM: make([]float32, channels),
	}
	for i := range r.DistM {
		r.DistM[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4+4*i:]))
	}
	r.Status = binary.LittleEndian.Uint32(buf[4+4*channels:])
	return r, nil
}
