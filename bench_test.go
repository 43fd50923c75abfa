package art

import (
	"testing"
)

func BenchmarkWordsInsert(b *testing.B) {
	words := fakeWords(1, 50_000)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tree := New[int]()
		for i, w := range words {
			tree.Insert(w, i)
		}
	}
}

func BenchmarkWordsGet(b *testing.B) {
	words := fakeWords(1, 50_000)
	tree := New[int]()
	for i, w := range words {
		tree.Insert(w, i)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for _, w := range words {
			tree.Get(w)
		}
	}
}

func BenchmarkWordsDelete(b *testing.B) {
	words := fakeWords(1, 50_000)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		tree := New[int]()
		for i, w := range words {
			tree.Insert(w, i)
		}
		b.StartTimer()
		for _, w := range words {
			tree.Delete(w)
		}
	}
}

func BenchmarkUUIDsInsert(b *testing.B) {
	uuids := fakeUUIDs(2, 50_000)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tree := New[int]()
		for i, u := range uuids {
			tree.Insert(u, i)
		}
	}
}

func BenchmarkUUIDsGet(b *testing.B) {
	uuids := fakeUUIDs(2, 50_000)
	tree := New[int]()
	for i, u := range uuids {
		tree.Insert(u, i)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for _, u := range uuids {
			tree.Get(u)
		}
	}
}

func BenchmarkAll(b *testing.B) {
	words := fakeWords(1, 50_000)
	tree := New[int]()
	for i, w := range words {
		tree.Insert(w, i)
	}
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		count := 0
		for range tree.All {
			count++
		}
		if count != tree.Len() {
			b.Fatalf("iterated %d of %d keys", count, tree.Len())
		}
	}
}

func BenchmarkRange(b *testing.B) {
	words := fakeWords(1, 50_000)
	tree := New[int]()
	for i, w := range words {
		tree.Insert(w, i)
	}
	lo, hi := []byte("m"), []byte("n")
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		for range tree.Range(lo, hi) {
		}
	}
}
