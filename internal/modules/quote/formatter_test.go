package quote

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"freightcalc/internal/locale"
)

func TestFormatCopyTextDeterministic(t *testing.T) {
	route := sampleRoute()
	a := FormatCopyText(route, 0, echoTranslator{})
	b := FormatCopyText(route, 0, echoTranslator{})
	assert.Equal(t, a, b)
}

func TestFormatCopyTextIndexOnlyChangesOptionNumber(t *testing.T) {
	route := sampleRoute()
	first := strings.Split(FormatCopyText(route, 0, echoTranslator{}), "\n")
	third := strings.Split(FormatCopyText(route, 2, echoTranslator{}), "\n")
	require.Equal(t, len(first), len(third))

	assert.Contains(t, first[0], "Option=1")
	assert.Contains(t, third[0], "Option=3")
	assert.Equal(t, strings.Replace(first[0], "Option=1", "Option=3", 1), third[0])
	assert.Equal(t, first[1:], third[1:])
}

func TestFormatCopyTextUsesTranslatorForEveryLine(t *testing.T) {
	lines := strings.Split(FormatCopyText(sampleRoute(), 0, echoTranslator{}), "\n")
	for _, l := range lines {
		assert.True(t, strings.HasPrefix(l, "quote.copy."), l)
	}
	// header, rate, 2 breakdown items, carrier, container, route, transit, options
	assert.Len(t, lines, 9)
}

func TestFormatCopyTextSkipsEmptyFields(t *testing.T) {
	route := sampleRoute()
	route.Carrier = ""
	route.TransitDays = 0
	route.Breakdown = nil
	text := FormatCopyText(route, 0, echoTranslator{})
	assert.NotContains(t, text, "quote.copy.carrier")
	assert.NotContains(t, text, "quote.copy.transit")
	assert.NotContains(t, text, "quote.copy.breakdown")
}

type paddedTranslator struct{ echoTranslator }

func (p paddedTranslator) T(key string, data map[string]any) string {
	return "  \n" + p.echoTranslator.T(key, data) + " \t"
}

func TestFormatCopyTextTrimmed(t *testing.T) {
	text := FormatCopyText(sampleRoute(), 4, paddedTranslator{})
	assert.Equal(t, strings.TrimSpace(text), text)
}

func TestFormatCopyTextWithCatalog(t *testing.T) {
	cat, err := locale.NewCatalog("en")
	require.NoError(t, err)

	text := FormatCopyText(sampleRoute(), 1, cat.For(language.English))
	lines := strings.Split(text, "\n")
	assert.Equal(t, "Option 2: Rail freight", lines[0])
	assert.Contains(t, text, "Carrier: RZD Logistics")
	assert.Contains(t, text, "Route: Xi'an → Duisburg")
	assert.Contains(t, text, "Transit time: 18 days")
	assert.Contains(t, text, "Insurance: yes, customs clearance: no")

	ru := FormatCopyText(sampleRoute(), 1, cat.For(language.Russian))
	assert.True(t, strings.HasPrefix(ru, "Вариант 2: Железнодорожная"))
}
