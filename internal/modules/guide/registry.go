// README: Guide chapters for the FAQ/guide page. Ids are used as anchors; keep them stable.
package guide

import "freightcalc/internal/locale"

type Chapter struct {
	ID         string `json:"id"`
	TitleKey   string `json:"titleKey"`
	ContentKey string `json:"contentKey"`
}

var chapters = func() []Chapter {
	ids := []string{
		"introduction",
		"getting-started",
		"calculator-page",
		"dashboard-page",
		"best-prices-page",
		"instructions-page",
		"language-settings",
		"troubleshooting",
	}
	out := make([]Chapter, len(ids))
	for i, id := range ids {
		out[i] = Chapter{ID: id, TitleKey: "guide." + id + ".title", ContentKey: "guide." + id + ".body"}
	}
	return out
}()

// ListChapters returns the chapters in reading order. The slice is a copy.
func ListChapters() []Chapter {
	return append([]Chapter(nil), chapters...)
}

type LocalizedChapter struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func Localize(t locale.Translator) []LocalizedChapter {
	out := make([]LocalizedChapter, len(chapters))
	for i, c := range chapters {
		out[i] = LocalizedChapter{ID: c.ID, Title: t.T(c.TitleKey, nil), Content: t.T(c.ContentKey, nil)}
	}
	return out
}
