package lawxml

import (
	"fmt"
	"strconv"
)

// Era is a Japanese era name as written in the Law@Era attribute.
type Era string

const (
	Meiji  Era = "Meiji"
	Taisho Era = "Taisho"
	Showa  Era = "Showa"
	Heisei Era = "Heisei"
	Reiwa  Era = "Reiwa"
)

// eraOffsets maps an era to the Gregorian year preceding its first year.
var eraOffsets = map[Era]int{
	Meiji:  1867,
	Taisho: 1911,
	Showa:  1925,
	Heisei: 1988,
	Reiwa:  2018,
}

// Valid reports whether e is a known era.
func (e Era) Valid() bool {
	_, ok := eraOffsets[e]
	return ok
}

// ADYear converts a year of this era to a Gregorian year.
func (e Era) ADYear(year int) (int, error) {
	offset, ok := eraOffsets[e]
	if !ok {
		return 0, fmt.Errorf("unknown era %q", string(e))
	}
	if year < 1 {
		return 0, fmt.Errorf("era year must be positive, got %d", year)
	}
	return offset + year, nil
}

// Date is a promulgation date. Month and Day are zero when unknown.
type Date struct {
	Era   Era
	Year  int
	Month int
	Day   int
}

// String renders the date in ISO form, as precise as the known parts allow:
// YYYY-MM-DD, YYYY-MM or YYYY.
func (d Date) String() string {
	ad, err := d.Era.ADYear(d.Year)
	if err != nil {
		return ""
	}
	switch {
	case d.Month == 0:
		return strconv.Itoa(ad)
	case d.Day == 0:
		return fmt.Sprintf("%04d-%02d", ad, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", ad, d.Month, d.Day)
	}
}
