package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccp-p/langid/internal/kmer"
	"github.com/ccp-p/langid/internal/profile"
)

// addN 向存储写入 n 次同一个 k-mer
func addN(t *testing.T, s *profile.Store, gram string, lang profile.Language, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.NoError(t, s.Add(kmer.Hash(gram), lang))
	}
}

// scenarioStore: English {abc:10, bcd:5, cde:1}，French {xyz:8, bcd:2}
func scenarioStore(t *testing.T) *profile.Store {
	s := profile.NewStore()
	addN(t, s, "abc", profile.English, 10)
	addN(t, s, "bcd", profile.English, 5)
	addN(t, s, "cde", profile.English, 1)
	addN(t, s, "xyz", profile.French, 8)
	addN(t, s, "bcd", profile.French, 2)
	s.Prune(300)
	return s
}

func queryOf(grams ...string) *profile.Profile {
	q := profile.NewProfile()
	for _, g := range grams {
		q.Add(kmer.Hash(g))
	}
	return q.TopN(300)
}

func TestScenarioTieResolvedByLanguageOrder(t *testing.T) {
	s := scenarioStore(t)
	query := queryOf("bcd")

	en, err := s.ProfileOf(profile.English)
	require.NoError(t, err)
	fr, err := s.ProfileOf(profile.French)
	require.NoError(t, err)

	assert.Equal(t, 1, Distance(query, en))
	assert.Equal(t, 1, Distance(query, fr))

	lang, err := New(s).Classify(query)
	require.NoError(t, err)
	assert.Equal(t, profile.English, lang, "平局取名称字典序较小的语言")
}

func TestMissingKmerPenalty(t *testing.T) {
	subject := profile.NewProfile()
	for _, g := range []string{"a", "b", "c", "d", "e"} {
		subject.Add(kmer.Hash(g))
	}
	subject = subject.TopN(10)
	require.Equal(t, 5, subject.Len())

	assert.Equal(t, 6, Distance(queryOf("zzz"), subject))
}

func TestSignedSumCanCancel(t *testing.T) {
	// subject 排名: p=1 q=2；query 排名: q=1 p=2
	subject := profile.NewProfile()
	subject.Add(kmer.Hash("p"))
	subject.Add(kmer.Hash("p"))
	subject.Add(kmer.Hash("q"))
	subject = subject.TopN(10)

	query := profile.NewProfile()
	query.Add(kmer.Hash("q"))
	query.Add(kmer.Hash("q"))
	query.Add(kmer.Hash("p"))
	query = query.TopN(10)

	assert.Equal(t, 0, Distance(query, subject))

	abs := New(nil, WithAbsoluteTerms())
	assert.Equal(t, 2, abs.Distance(query, subject))
}

func TestSelfMatch(t *testing.T) {
	tok := kmer.Tokenizer{K: 3}
	training := map[profile.Language]string{
		profile.English: "the quick brown fox jumps over the lazy dog and the cat",
		profile.German:  "der schnelle braune fuchs springt über den faulen hund",
		profile.Spanish: "el rápido zorro marrón salta sobre el perro perezoso",
	}

	s := profile.NewStore()
	for lang, text := range training {
		tok.Each(text, func(id kmer.ID) { require.NoError(t, s.Add(id, lang)) })
	}
	s.Prune(300)

	c := New(s)
	for lang, text := range training {
		q := profile.NewProfile()
		tok.Each(text, q.Add)
		got, err := c.Classify(q.TopN(300))
		require.NoError(t, err)
		assert.Equal(t, lang, got)
	}
}

func TestRankOrdering(t *testing.T) {
	s := scenarioStore(t)
	results, err := New(s).Rank(queryOf("xyz", "xyz", "bcd"))
	require.NoError(t, err)
	require.Len(t, results, 2)

	// French: xyz 1-1=0, bcd 2-2=0；English: xyz 缺失 4, bcd 2-2=0
	assert.Equal(t, Result{Language: profile.French, Distance: 0}, results[0])
	assert.Equal(t, Result{Language: profile.English, Distance: 4}, results[1])
	assert.Equal(t, "[lang=French, distance=0]", results[0].String())
}

func TestClassifyEmptyStore(t *testing.T) {
	_, err := New(profile.NewStore()).Classify(queryOf("abc"))
	require.ErrorIs(t, err, ErrNoLanguages)
}
