package resume

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Messages is a locale's string catalog keyed by message id.
type Messages map[string]string

// Get returns the message for id, or id itself when the catalog lacks it.
func (m Messages) Get(id string) string {
	if s, ok := m[id]; ok {
		return s
	}
	return id
}

// plural picks the "<id>.one" or "<id>.other" message for n.
func (m Messages) plural(id string, n int) string {
	form := "other"
	if n == 1 {
		form = "one"
	}
	return m.Get(id + "." + form)
}

var monthNames = map[string][12]string{
	"en": {"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	"nl": {"jan", "feb", "mrt", "apr", "mei", "jun", "jul", "aug", "sep", "okt", "nov", "dec"},
}

// MonthYear formats t as a short month and year for the locale, "Jan 2019".
// Unknown languages use English month names.
func MonthYear(code string, t time.Time) string {
	base, _ := language.Make(code).Base()
	names, ok := monthNames[base.String()]
	if !ok {
		names = monthNames["en"]
	}
	return names[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// YearsAndMonths returns the whole calendar months from start to end, split
// into years and remaining months. Days are ignored.
func YearsAndMonths(start, end time.Time) (years, months int) {
	total := (end.Year()*12 + int(end.Month())) - (start.Year()*12 + int(start.Month()))
	return total / 12, total % 12
}

// Duration is the text between two dates, "1 year, 5 months". The year part
// is left out below one year.
func (m Messages) Duration(start, end time.Time) string {
	years, months := YearsAndMonths(start, end)

	var parts []string
	if years > 0 {
		parts = append(parts, strconv.Itoa(years)+" "+m.plural("duration.year", years))
	}
	parts = append(parts, strconv.Itoa(months)+" "+m.plural("duration.month", months))
	return strings.Join(parts, ", ")
}
