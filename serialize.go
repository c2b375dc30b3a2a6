package bloom

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync/atomic"
)

// Serialization constants and errors.
const (
	// serializeVersion is the current serialization format version.
	serializeVersion byte = 1

	// headerSize is the size of the serialization header in bytes.
	// Version (1) + K (4) + BitCount (8) + SetBits (8) = 21 bytes
	headerSize = 21

	// maxSnapshotBits bounds BitCount in snapshots to keep the length
	// arithmetic below free of overflow. ~1 petabyte of filter, far beyond
	// anything constructible.
	maxSnapshotBits = uint64(1) << 53

	// maxSnapshotK bounds K in snapshots. OptimalParams never produces more
	// than a few dozen hash functions; anything this large is corruption.
	maxSnapshotK = 1 << 16
)

var (
	// ErrInvalidData is returned when the serialized data is invalid or corrupted.
	ErrInvalidData = errors.New("bloom: invalid serialized data")

	// ErrUnsupportedVersion is returned when the serialization version is not supported.
	ErrUnsupportedVersion = errors.New("bloom: unsupported serialization version")
)

// MarshalBinary serializes the filter to a byte slice. The format is:
//   - Version (1 byte): serialization format version
//   - K (4 bytes): number of hash functions (little-endian uint32)
//   - BitCount (8 bytes): total bits (little-endian uint64)
//   - SetBits (8 bytes): advisory set-bit counter (little-endian uint64)
//   - Seeds (k * 8 bytes): the hash seeds (little-endian uint64s)
//   - Words (BitCount / 8 bytes): the bit array (little-endian uint64s)
//
// The seeds are part of the snapshot: they are random per construction, so
// unlike the sizing parameters they cannot be re-derived on load.
//
// The words are read one atomic load at a time. A snapshot taken while
// inserts are in flight is not a point-in-time image of the filter; callers
// wanting a consistent snapshot must quiesce writers first, as with Reset.
func (f *Filter) MarshalBinary() ([]byte, error) {
	seedSize := uint64(len(f.seeds)) * 8
	dataSize := uint64(len(f.words)) * 8

	buf := make([]byte, headerSize+seedSize+dataSize)

	buf[0] = serializeVersion
	binary.LittleEndian.PutUint32(buf[1:5], f.K())
	binary.LittleEndian.PutUint64(buf[5:13], f.bitCount)
	binary.LittleEndian.PutUint64(buf[13:21], f.SetBits())

	offset := headerSize
	for _, seed := range f.seeds {
		binary.LittleEndian.PutUint64(buf[offset:offset+8], seed)
		offset += 8
	}
	for i := range f.words {
		binary.LittleEndian.PutUint64(buf[offset:offset+8], f.words[i].Load())
		offset += 8
	}

	return buf, nil
}

// UnmarshalBinary deserializes a filter from a byte slice produced by
// MarshalBinary. Returns an error if the data is invalid or corrupted.
func UnmarshalBinary(data []byte) (*Filter, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: data too short (got %d bytes, need at least %d)", ErrInvalidData, len(data), headerSize)
	}

	version := data[0]
	if version != serializeVersion {
		return nil, fmt.Errorf("%w: got version %d, expected %d", ErrUnsupportedVersion, version, serializeVersion)
	}

	k := binary.LittleEndian.Uint32(data[1:5])
	bitCount := binary.LittleEndian.Uint64(data[5:13])
	setBits := binary.LittleEndian.Uint64(data[13:21])

	if k == 0 || k > maxSnapshotK {
		return nil, fmt.Errorf("%w: k=%d out of range", ErrInvalidData, k)
	}
	if bitCount == 0 || bitCount%WordBits != 0 {
		return nil, fmt.Errorf("%w: bit count %d is not a positive multiple of %d", ErrInvalidData, bitCount, WordBits)
	}
	if bitCount > maxSnapshotBits {
		return nil, fmt.Errorf("%w: bit count too large (%d)", ErrInvalidData, bitCount)
	}

	numWords := bitCount / WordBits
	expectedLen := uint64(headerSize) + uint64(k)*8 + numWords*8
	if uint64(len(data)) != expectedLen {
		return nil, fmt.Errorf("%w: data length mismatch (got %d bytes, expected %d)", ErrInvalidData, len(data), expectedLen)
	}

	f := &Filter{
		bitCount: bitCount,
		seeds:    make([]uint64, k),
		words:    make([]atomic.Uint64, numWords),
	}

	offset := headerSize
	for i := range f.seeds {
		f.seeds[i] = binary.LittleEndian.Uint64(data[offset : offset+8])
		offset += 8
	}
	for i := range f.words {
		f.words[i].Store(binary.LittleEndian.Uint64(data[offset : offset+8]))
		offset += 8
	}
	f.setBits.Store(setBits)

	return f, nil
}
