// Command artbench exercises the tree with a configurable workload and
// reports build, lookup and scan timings.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/arborix/art"
	"github.com/arborix/art/keys"
)

var (
	workload = flag.String("workload", "words", "key distribution: words, uuids, ints or binary")
	numKeys  = flag.Int("n", 1_000_000, "number of keys")
	seed     = flag.Uint64("seed", 42, "prng seed")
)

func main() {
	flag.Parse()

	ks := generate(*workload, *numKeys, *seed)

	tree := art.New[int]()

	start := time.Now()
	for i, k := range ks {
		tree.Insert(k, i)
	}
	build := time.Since(start)

	prng := rand.New(rand.NewPCG(*seed, 1))
	probes := make([]art.Key, 100_000)
	for i := range probes {
		probes[i] = ks[prng.IntN(len(ks))]
	}

	start = time.Now()
	for _, k := range probes {
		if _, ok := tree.Get(k); !ok {
			log.Fatalf("probe key %q missing", k)
		}
	}
	lookup := time.Since(start)

	start = time.Now()
	count := 0
	for range tree.All {
		count++
	}
	scan := time.Since(start)

	if count != tree.Len() {
		log.Fatalf("scanned %d of %d keys", count, tree.Len())
	}

	fmt.Printf("workload=%s keys=%d\n", *workload, tree.Len())
	fmt.Printf("build:  %12s  %8.0f ns/op\n", build, float64(build.Nanoseconds())/float64(len(ks)))
	fmt.Printf("lookup: %12s  %8.0f ns/op\n", lookup, float64(lookup.Nanoseconds())/float64(len(probes)))
	fmt.Printf("scan:   %12s  %8.0f ns/op\n", scan, float64(scan.Nanoseconds())/float64(count))
}

func generate(workload string, n int, seed uint64) []art.Key {
	faker := gofakeit.New(int64(seed))
	prng := rand.New(rand.NewPCG(seed, 0))

	out := make([]art.Key, 0, n)
	seen := make(map[string]bool, n)

	add := func(k []byte) {
		if !seen[string(k)] {
			seen[string(k)] = true
			out = append(out, k)
		}
	}

	for len(out) < n {
		switch workload {
		case "words":
			add([]byte(faker.Noun() + faker.Word() + faker.Adjective()))
		case "uuids":
			add([]byte(faker.UUID()))
		case "ints":
			add(keys.Uint(prng.Uint64()))
		case "binary":
			k := make([]byte, 1+prng.IntN(32))
			for i := range k {
				k[i] = byte(prng.UintN(256))
			}
			add(k)
		default:
			log.Fatalf("unknown workload %q", workload)
		}
	}
	return out
}
