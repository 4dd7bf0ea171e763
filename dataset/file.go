// Corpus file persistence.
//
// A corpus file is a fixed-size JSON header line followed by a
// zstd-compressed body of newline-separated keys. The fixed header size
// lets Load find the body without scanning, and the JSON encoding keeps
// the header inspectable with standard tools. This persists benchmark
// inputs only; filters themselves are never serialized.
package dataset

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
)

// headerSize is the fixed byte length of the corpus header line,
// padded with spaces and terminated with a newline.
const headerSize = 96

const (
	corpusMagic   = "BLMC"
	corpusVersion = 1
)

// corpusHeader is the metadata line at the start of a corpus file.
type corpusHeader struct {
	Magic   string `json:"_m"`
	Version int    `json:"_v"`
	Count   int    `json:"_n"`
	Alg     string `json:"_alg"` // "uuid" for UUID corpora
}

// Shared encoder/decoder. Both are documented as safe for concurrent
// use, and construction is expensive relative to compressing a corpus.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// encode serialises the header to exactly headerSize bytes with padding.
func (h *corpusHeader) encode() ([]byte, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	if len(data) > headerSize-1 {
		return nil, fmt.Errorf("%w: header too large", ErrCorruptCorpus)
	}

	buf := make([]byte, headerSize)
	copy(buf, data)
	for i := len(data); i < headerSize-1; i++ {
		buf[i] = ' '
	}
	buf[headerSize-1] = '\n'
	return buf, nil
}

// Save writes keys to path as a headered, compressed corpus file. The
// tag names the corpus origin (an Algorithm string or "uuid") and is
// informational only.
func Save(path, tag string, keys []string) error {
	hdr := corpusHeader{
		Magic:   corpusMagic,
		Version: corpusVersion,
		Count:   len(keys),
		Alg:     tag,
	}
	head, err := hdr.encode()
	if err != nil {
		return err
	}

	body := zstdEncoder.EncodeAll([]byte(strings.Join(keys, "\n")), nil)

	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head...)
	out = append(out, body...)
	return os.WriteFile(path, out, 0o644)
}

// Load reads a corpus file written by Save, validating the header magic,
// version, and key count.
func Load(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < headerSize {
		return nil, fmt.Errorf("%w: short header", ErrCorruptCorpus)
	}

	var hdr corpusHeader
	if err := json.Unmarshal(bytes.TrimSpace(raw[:headerSize]), &hdr); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptCorpus, err)
	}
	if hdr.Magic != corpusMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptCorpus, hdr.Magic)
	}
	if hdr.Version != corpusVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptCorpus, hdr.Version)
	}

	body, err := zstdDecoder.DecodeAll(raw[headerSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrCorruptCorpus, err)
	}

	var keys []string
	if len(body) > 0 {
		keys = strings.Split(string(body), "\n")
	}
	if len(keys) != hdr.Count {
		return nil, fmt.Errorf("%w: header count %d, body has %d keys", ErrCorruptCorpus, hdr.Count, len(keys))
	}
	return keys, nil
}
