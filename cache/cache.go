// Package cache persists the corpus EmbeddingIndex so that startup can skip
// re-embedding every phrase. Entries are keyed by a content hash of the
// corpus; any mismatch or unreadable payload is reported as ErrMiss.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/miguelAagelcruzvargas/sara-intent/corpus"
	"github.com/miguelAagelcruzvargas/sara-intent/semantic"
)

// FormatVersion is bumped whenever Entry changes shape.
const FormatVersion = 1

// ErrMiss means no usable entry exists for the requested hash.
var ErrMiss = errors.New("cache: miss")

// Entry is the serialized form of an index. Vectors are plain float arrays so
// the artifact does not depend on any embedding library.
type Entry struct {
	Version    int           `msgpack:"version"`
	CorpusHash string        `msgpack:"corpus_hash"`
	Model      string        `msgpack:"model"`
	Dimension  int           `msgpack:"dimension"`
	Labels     []string      `msgpack:"labels"`
	Rows       [][][]float32 `msgpack:"rows"`
	CreatedAt  time.Time     `msgpack:"created_at"`
}

// Hash fingerprints examples. Labels are visited in ascending order and each
// string is length-prefixed, so moving a phrase between labels, editing it or
// reordering it all change the result.
func Hash(examples corpus.Examples) string {
	h := sha256.New()
	for _, label := range examples.Labels() {
		writeString(h, string(label))
		phrases := examples[label]
		writeLen(h, len(phrases))
		for _, phrase := range phrases {
			writeString(h, phrase)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeLen(h hash.Hash, n int) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(n))
	h.Write(buf[:])
}

func writeString(h hash.Hash, s string) {
	writeLen(h, len(s))
	h.Write([]byte(s))
}

// Encode serializes ix under corpusHash.
func Encode(ix *semantic.Index, corpusHash string) ([]byte, error) {
	labels := ix.Labels()
	entry := Entry{
		Version:    FormatVersion,
		CorpusHash: corpusHash,
		Model:      ix.Model(),
		Dimension:  ix.Dimension(),
		Labels:     make([]string, len(labels)),
		Rows:       make([][][]float32, len(labels)),
		CreatedAt:  time.Now().UTC(),
	}
	for i, label := range labels {
		entry.Labels[i] = string(label)
		entry.Rows[i] = ix.Vectors(label)
	}

	data, err := msgpack.Marshal(&entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding cache: %w", err)
	}
	return data, nil
}

// Decode restores an index written by Encode. It returns an error wrapping
// ErrMiss when data is corrupt, from another format version or for another
// corpus.
func Decode(data []byte, corpusHash string) (*semantic.Index, error) {
	var entry Entry
	if err := msgpack.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("%w: corrupt entry: %v", ErrMiss, err)
	}
	if entry.Version != FormatVersion {
		return nil, fmt.Errorf("%w: format version %d, expected %d", ErrMiss, entry.Version, FormatVersion)
	}
	if entry.CorpusHash != corpusHash {
		return nil, fmt.Errorf("%w: corpus hash changed", ErrMiss)
	}
	if len(entry.Labels) != len(entry.Rows) {
		return nil, fmt.Errorf("%w: %d labels but %d row groups", ErrMiss, len(entry.Labels), len(entry.Rows))
	}

	rows := make(map[corpus.Label][][]float32, len(entry.Labels))
	for i, label := range entry.Labels {
		rows[corpus.Label(label)] = entry.Rows[i]
	}

	ix, err := semantic.NewIndex(entry.Model, entry.Dimension, rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMiss, err)
	}
	return ix, nil
}
