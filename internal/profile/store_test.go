package profile

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccp-p/langid/internal/kmer"
)

func TestStoreConcurrentAddIsExact(t *testing.T) {
	s := NewStore()
	langs := []Language{English, French, German}

	const workers = 32
	const perWorker = 500
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			lang := langs[w%len(langs)]
			for i := 0; i < perWorker; i++ {
				assert.NoError(t, s.Add(kmer.ID(i%10), lang))
			}
		}(w)
	}
	wg.Wait()

	for i, lang := range langs {
		// 每种语言分到的 worker 数
		n := 0
		for w := 0; w < workers; w++ {
			if w%len(langs) == i {
				n++
			}
		}
		p, err := s.ProfileOf(lang)
		require.NoError(t, err)
		require.Equal(t, 10, p.Len())
		for id := kmer.ID(0); id < 10; id++ {
			e, ok := p.Get(id)
			require.True(t, ok)
			assert.Equal(t, n*perWorker/10, e.Frequency, "%s/%d", lang, id)
		}
	}
}

func TestStoreRejectsUnknownLanguage(t *testing.T) {
	s := NewStore()
	require.ErrorIs(t, s.Add(1, Unknown), ErrUnknownLanguage)
	require.ErrorIs(t, s.Add(1, Language(250)), ErrUnknownLanguage)
	assert.Empty(t, s.Languages())

	_, err := s.ProfileOf(English)
	require.ErrorIs(t, err, ErrUnknownLanguage)
}

func TestStorePruneSealsAndBounds(t *testing.T) {
	s := NewStore()
	for i := 0; i < 20; i++ {
		for j := 0; j <= i; j++ {
			require.NoError(t, s.Add(kmer.ID(i), Spanish))
		}
	}
	require.NoError(t, s.AddBatch([]kmer.ID{1, 2}, Italian))

	s.Prune(5)
	assert.True(t, s.Sealed())

	es, err := s.ProfileOf(Spanish)
	require.NoError(t, err)
	require.Equal(t, 5, es.Len())
	entries := es.Entries()
	assert.Equal(t, kmer.ID(19), entries[0].Kmer)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, kmer.ID(15), entries[4].Kmer)

	it, err := s.ProfileOf(Italian)
	require.NoError(t, err)
	assert.Equal(t, 2, it.Len())

	require.ErrorIs(t, s.Add(1, Spanish), ErrStoreSealed)
	assert.Equal(t, Stats{Languages: 2, Kmers: 7}, s.Stats())
}

func TestStorePruneIdempotent(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddBatch([]kmer.ID{1, 1, 2, 3, 3, 3, 4}, Dutch))

	s.Prune(3)
	first, err := s.ProfileOf(Dutch)
	require.NoError(t, err)
	before := first.Entries()

	s.Prune(3)
	second, err := s.ProfileOf(Dutch)
	require.NoError(t, err)
	assert.Equal(t, before, second.Entries())
}

func TestStoreLanguagesIncludeEmptyAfterPrune(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(1, Welsh))
	require.NoError(t, s.Add(1, Basque))

	s.Prune(0)
	assert.Equal(t, []Language{Basque, Welsh}, s.Languages())

	p, err := s.ProfileOf(Welsh)
	require.NoError(t, err)
	assert.Zero(t, p.Len())
}

func TestProfileOfBeforePruneIsSnapshot(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Add(1, Polish))

	snap, err := s.ProfileOf(Polish)
	require.NoError(t, err)
	require.NoError(t, s.Add(1, Polish))

	e, _ := snap.Get(1)
	assert.Equal(t, 1, e.Frequency)
}

func TestStorePruneWaitsForInFlightAdds(t *testing.T) {
	for round := 0; round < 50; round++ {
		s := NewStore()
		require.NoError(t, s.Add(1, English))

		const workers = 8
		const perWorker = 2000
		var accepted atomic.Int64
		accepted.Add(1)

		var wg sync.WaitGroup
		start := make(chan struct{})
		wg.Add(workers)
		for w := 0; w < workers; w++ {
			go func() {
				defer wg.Done()
				<-start
				for i := 0; i < perWorker; i++ {
					err := s.Add(1, English)
					if err == nil {
						accepted.Add(1)
						continue
					}
					// 封存之后只允许 ErrStoreSealed
					assert.ErrorIs(t, err, ErrStoreSealed)
				}
			}()
		}

		close(start)
		s.Prune(10)
		wg.Wait()

		p, err := s.ProfileOf(English)
		require.NoError(t, err)
		e, ok := p.Get(1)
		require.True(t, ok)
		require.Equal(t, int(accepted.Load()), e.Frequency, "round %d", round)
		assert.Equal(t, 1, e.Rank)
	}
}

func TestProfileOfAfterPruneIsSnapshot(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.AddBatch([]kmer.ID{1, 1, 2}, Hungarian))
	s.Prune(10)

	snap, err := s.ProfileOf(Hungarian)
	require.NoError(t, err)
	snap.Add(3)
	snap.Add(1)

	again, err := s.ProfileOf(Hungarian)
	require.NoError(t, err)
	assert.Equal(t, 2, again.Len())
	e, _ := again.Get(1)
	assert.Equal(t, 2, e.Frequency)
	assert.True(t, again.Ranked())
}
