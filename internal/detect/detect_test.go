package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccp-p/langid/internal/classifier"
	"github.com/ccp-p/langid/internal/kmer"
	"github.com/ccp-p/langid/internal/profile"
)

var corpus = map[profile.Language][]string{
	profile.English: {
		"the weather is nice today and we are going to the park",
		"there is nothing better than reading a book in the evening",
		"she thought that the house was bigger than the other one",
	},
	profile.French: {
		"le temps est beau aujourd'hui et nous allons au parc",
		"il n'y a rien de mieux que de lire un livre le soir",
		"elle pensait que la maison était plus grande que l'autre",
	},
	profile.Italian: {
		"il tempo è bello oggi e andiamo al parco con gli amici",
		"non c'è niente di meglio che leggere un libro la sera",
		"lei pensava che la casa fosse più grande dell'altra",
	},
}

func trainedStore(t *testing.T, tok kmer.Tokenizer) *profile.Store {
	t.Helper()
	s := profile.NewStore()
	for lang, lines := range corpus {
		for _, line := range lines {
			tok.Each(line, func(id kmer.ID) { require.NoError(t, s.Add(id, lang)) })
		}
	}
	s.Prune(300)
	return s
}

func TestDetectTrainingSentences(t *testing.T) {
	tok := kmer.Tokenizer{K: 3}
	d := New(trainedStore(t, tok), tok, 300)

	for lang, lines := range corpus {
		for _, line := range lines {
			got, err := d.Detect(line)
			require.NoError(t, err)
			assert.Equal(t, lang, got, line)
		}
	}
}

func TestQueryProfileRanked(t *testing.T) {
	tok := kmer.Tokenizer{K: 2}
	d := New(profile.NewStore(), tok, 2)

	q := d.QueryProfile("ababab")
	assert.True(t, q.Ranked())
	require.Equal(t, 2, q.Len())
	e, ok := q.Get(kmer.Hash("ab"))
	require.True(t, ok)
	assert.Equal(t, 1, e.Rank)
	assert.Equal(t, 3, e.Frequency)
}

func TestShortTextFallsToFirstLanguage(t *testing.T) {
	tok := kmer.Tokenizer{K: 3}
	d := New(trainedStore(t, tok), tok, 300)

	results, err := d.Explain("hi")
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, r := range results {
		assert.Zero(t, r.Distance)
	}
	assert.Equal(t, profile.English, results[0].Language)
}

func TestDetectEmptyStore(t *testing.T) {
	d := New(profile.NewStore(), kmer.Tokenizer{K: 3}, 300)
	_, err := d.Detect("anything")
	require.ErrorIs(t, err, classifier.ErrNoLanguages)
}
