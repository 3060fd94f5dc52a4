// Package schedule contiene la lógica pura de calendario del motor de visitas:
// expansión de recurrencias semanales, normalización de fechas y etiquetas de día.
package schedule

import "time"

// DefaultRepeatWeeks es la cantidad de semanas que genera una repetición semanal.
const DefaultRepeatWeeks = 4

// dateLayout es el formato de fecha de calendario usado en la API y en SQLite.
const dateLayout = "2006-01-02"

var weekdayLabels = [...]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
}

// Expand devuelve count fechas separadas exactamente 7 días a partir de start:
// date[i] = start + i semanas. Sin ajuste por feriados ni días hábiles.
func Expand(start time.Time, count int) []time.Time {
	if count <= 0 {
		return []time.Time{}
	}
	start = DateOnly(start)
	out := make([]time.Time, count)
	for i := range out {
		out[i] = start.AddDate(0, 0, 7*i)
	}
	return out
}

// DateOnly descarta la hora y la zona: conserva año, mes y día como medianoche UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha AAAA-MM-DD.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// FormatDate formatea una fecha como AAAA-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// WeekdayLabel devuelve la etiqueta persistida del día de la semana de t.
func WeekdayLabel(t time.Time) string {
	return weekdayLabels[t.Weekday()]
}

// IsValidWeekdayLabel indica si label es una de las etiquetas de WeekdayLabel.
func IsValidWeekdayLabel(label string) bool {
	for _, l := range weekdayLabels {
		if l == label {
			return true
		}
	}
	return false
}
