package lawxml

// Law types accepted in the Law@LawType attribute.
const (
	LawTypeConstitution         = "Constitution"
	LawTypeAct                  = "Act"
	LawTypeCabinetOrder         = "CabinetOrder"
	LawTypeImperialOrder        = "ImperialOrder"
	LawTypeMinisterialOrdinance = "MinisterialOrdinance"
	LawTypeRule                 = "Rule"
	LawTypeMisc                 = "Misc"
)

// categories maps a LawType to the category label used by the e-Gov law
// list (the 法令種別 column).
var categories = map[string]string{
	LawTypeConstitution:         "憲法",
	LawTypeAct:                  "法律",
	LawTypeCabinetOrder:         "政令",
	LawTypeImperialOrder:        "勅令",
	LawTypeMinisterialOrdinance: "府省令",
	LawTypeRule:                 "規則",
	LawTypeMisc:                 "その他",
}

// CategoryFor returns the category label for a LawType, or "" if unknown.
func CategoryFor(lawType string) string {
	return categories[lawType]
}

// Law is the decoded header of a law document.
type Law struct {
	Era             Era
	Year            int
	Num             string
	LawType         string
	Lang            string
	PromulgateMonth int
	PromulgateDay   int

	LawNum    string
	Title     string
	TitleKana string
}

// PromulgationDate returns the promulgation date from the Law attributes.
func (l *Law) PromulgationDate() Date {
	return Date{Era: l.Era, Year: l.Year, Month: l.PromulgateMonth, Day: l.PromulgateDay}
}

// Category returns the category label derived from the law type.
func (l *Law) Category() string {
	return CategoryFor(l.LawType)
}
