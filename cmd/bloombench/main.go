// Command bloombench compares membership filter implementations over a
// synthetic corpus: this module's standard and block filters, plus a
// third-party reference filter built with the same bit budget. The
// corpus is split into an insert set and a held-out probe set; each
// filter is measured for throughput, false-positive rate, and
// near-collision rate, and the results are rendered as a comparison
// table or JSON.
package main

import (
	"flag"
	"fmt"
	"os"

	boom "github.com/bits-and-blooms/bloom/v3"
	"github.com/sirupsen/logrus"

	"github.com/jpl-au/bloom"
	"github.com/jpl-au/bloom/bench"
	"github.com/jpl-au/bloom/dataset"
)

// referenceFilter adapts the bits-and-blooms filter to the harness
// interface so it can occupy a comparison column.
type referenceFilter struct {
	f *boom.BloomFilter
}

func (r referenceFilter) Add(key []byte)           { r.f.Add(key) }
func (r referenceFilter) Contains(key []byte) bool { return r.f.Test(key) }

func main() {
	var (
		n          = flag.Int("n", 100000, "corpus size")
		kind       = flag.String("kind", "uuid", "corpus kind: uuid or token")
		algName    = flag.String("alg", "xxh3", "token id algorithm: xxh3, fnv1a, or blake2b")
		bitsPerKey = flag.Int("bits-per-key", 10, "filter bits per inserted key")
		numHashes  = flag.Uint("k", 7, "probe bits per key")
		seed       = flag.Uint64("seed", 0, "filter hash seed")
		trainPct   = flag.Int("train", 80, "percentage of the corpus to insert")
		loadPath   = flag.String("load", "", "load the corpus from this file instead of generating")
		savePath   = flag.String("save", "", "save the generated corpus to this file")
		jsonOut    = flag.Bool("json", false, "emit JSON instead of a table")
	)
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	if err := run(log, *n, *kind, *algName, *bitsPerKey, uint32(*numHashes), *seed, *trainPct, *loadPath, *savePath, *jsonOut); err != nil {
		log.Fatal(err)
	}
}

func run(log *logrus.Logger, n int, kind, algName string, bitsPerKey int, numHashes uint32, seed uint64, trainPct int, loadPath, savePath string, jsonOut bool) error {
	keys, tag, err := corpus(log, n, kind, algName, loadPath)
	if err != nil {
		return err
	}
	if savePath != "" {
		if err := dataset.Save(savePath, tag, keys); err != nil {
			return fmt.Errorf("save corpus: %w", err)
		}
		log.WithField("path", savePath).Info("corpus saved")
	}

	train, probe := dataset.Split(keys, trainPct)
	filterBits := uint64(len(train)) * uint64(bitsPerKey)
	log.WithFields(logrus.Fields{
		"train":       len(train),
		"probe":       len(probe),
		"filter_bits": filterBits,
		"k":           numHashes,
	}).Info("corpus split")

	std, err := bloom.New(filterBits, numHashes, uint32(seed), seed)
	if err != nil {
		return fmt.Errorf("standard filter: %w", err)
	}
	defer std.Free()

	blk, err := bloom.NewBlock(filterBits, numHashes, seed)
	if err != nil {
		return fmt.Errorf("block filter: %w", err)
	}
	defer blk.Free()

	ref := referenceFilter{f: boom.New(uint(filterBits), uint(numHashes))}

	rows := make([]bench.Metrics, 0, 3)
	for _, c := range []struct {
		label string
		f     bloom.Membership
		bytes int
	}{
		{"standard", std, std.ByteLength()},
		{"block", blk, blk.ByteLength()},
		{"reference", ref, int(ref.f.Cap() / 8)},
	} {
		log.WithField("filter", c.label).Info("running benchmark")
		m, err := bench.Run(c.label, c.f, c.bytes, train, probe)
		if err != nil {
			return err
		}
		rows = append(rows, m)
	}

	if jsonOut {
		return bench.WriteJSON(os.Stdout, rows)
	}
	fmt.Printf("Performance summary over %d keys (%s corpus)\n\n", len(keys), tag)
	bench.Compare(os.Stdout, rows)
	return nil
}

// corpus loads or generates the key corpus, returning the keys and the
// origin tag recorded in saved corpus files.
func corpus(log *logrus.Logger, n int, kind, algName, loadPath string) ([]string, string, error) {
	if loadPath != "" {
		keys, err := dataset.Load(loadPath)
		if err != nil {
			return nil, "", fmt.Errorf("load corpus: %w", err)
		}
		log.WithFields(logrus.Fields{"path": loadPath, "keys": len(keys)}).Info("corpus loaded")
		return keys, "loaded", nil
	}

	switch kind {
	case "uuid":
		log.WithField("n", n).Info("generating uuid corpus")
		return dataset.UUIDs(n), "uuid", nil
	case "token":
		alg, err := parseAlg(algName)
		if err != nil {
			return nil, "", err
		}
		log.WithFields(logrus.Fields{"n": n, "alg": alg.String()}).Info("generating token corpus")
		keys, err := dataset.Tokens(n, alg)
		if err != nil {
			return nil, "", err
		}
		return keys, alg.String(), nil
	default:
		return nil, "", fmt.Errorf("unknown corpus kind %q", kind)
	}
}

func parseAlg(name string) (dataset.Algorithm, error) {
	switch name {
	case "xxh3":
		return dataset.AlgXXH3, nil
	case "fnv1a":
		return dataset.AlgFNV1a, nil
	case "blake2b":
		return dataset.AlgBlake2b, nil
	default:
		return 0, fmt.Errorf("unknown id algorithm %q", name)
	}
}
