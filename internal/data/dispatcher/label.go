package dispatcher

import (
	"strings"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"

	"github.com/atomicstack/notebook-menubar/internal/notebook"
)

const (
	defaultDateLayout = "Monday, January 2, 2006"
	twelveHourLayout  = "3:04 PM"
	clockLayout       = "15:04"
)

type timestampFormat struct {
	locale monday.Locale
	layout string
}

// formatForLocale resolves a locale tag to a monday locale and a long-form
// weekday, date and time layout. Unknown tags fall back to en_US.
func formatForLocale(raw string) timestampFormat {
	fallback := timestampFormat{
		locale: monday.LocaleEnUS,
		layout: defaultDateLayout + " " + twelveHourLayout,
	}
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "_", "-"))
	if raw == "" {
		return fallback
	}
	if idx := strings.IndexAny(raw, ".@"); idx >= 0 {
		raw = raw[:idx]
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return fallback
	}
	base, _ := tag.Base()
	region, _ := tag.Region()
	locale := monday.Locale(base.String() + "_" + region.String())
	date, ok := monday.FullFormatsByLocale[locale]
	if !ok {
		return fallback
	}
	clock := clockLayout
	if locale == monday.LocaleEnUS {
		clock = twelveHourLayout
	}
	return timestampFormat{locale: locale, layout: date + " " + clock}
}

// label depends only on the checkpoint, so rendering a payload twice gives
// the same entries.
func (s *Synchronizer) label(cp notebook.Checkpoint) string {
	if cp.LastModified.IsZero() {
		return cp.ID
	}
	return monday.Format(cp.LastModified.In(s.location), s.format.layout, s.format.locale)
}
