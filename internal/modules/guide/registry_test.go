package guide

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"freightcalc/internal/locale"
)

var wantIDs = []string{
	"introduction",
	"getting-started",
	"calculator-page",
	"dashboard-page",
	"best-prices-page",
	"instructions-page",
	"language-settings",
	"troubleshooting",
}

func ids(cs []Chapter) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.ID
	}
	return out
}

func TestListChaptersFixedOrder(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, wantIDs, ids(ListChapters()))
	}
}

func TestListChaptersReturnsCopy(t *testing.T) {
	cs := ListChapters()
	cs[0].ID = "mutated"
	assert.Equal(t, "introduction", ListChapters()[0].ID)
}

func TestEveryChapterIsTranslated(t *testing.T) {
	cat, err := locale.NewCatalog("en")
	require.NoError(t, err)

	for _, tag := range cat.Languages() {
		tr := cat.For(tag)
		loc := Localize(tr)
		require.Len(t, loc, len(wantIDs))
		for i, c := range ListChapters() {
			assert.Equal(t, c.ID, loc[i].ID)
			assert.NotEqual(t, c.TitleKey, loc[i].Title, "%s missing title in %s", c.ID, tag)
			assert.NotEqual(t, c.ContentKey, loc[i].Content, "%s missing content in %s", c.ID, tag)
		}
	}
	assert.Equal(t, "Введение", Localize(cat.For(language.Russian))[0].Title)
}
