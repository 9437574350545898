package wcag

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nao1215/wcagaudit/internal/model"
)

// Edition identifies the WCAG version a success criterion first appeared in.
type Edition string

const (
	// Edition21 covers every criterion that already existed in WCAG 2.1.
	Edition21 Edition = "2.1"

	// Edition22 covers criteria introduced in WCAG 2.2.
	Edition22 Edition = "2.2"
)

// ReferenceVersion names the W3C recommendation this table follows.
const ReferenceVersion = "WCAG 2.2 W3C Recommendation 12 december 2024"

// Criterion is one row of the reference table.
type Criterion struct {
	ID      string
	Name    string
	Level   model.Level
	Edition Edition
}

// Principle is one of the four WCAG principles.
type Principle struct {
	ID   string
	Name string
}

var principles = []Principle{
	{ID: "1", Name: "Waarneembaar"},
	{ID: "2", Name: "Bedienbaar"},
	{ID: "3", Name: "Begrijpelijk"},
	{ID: "4", Name: "Robuust"},
}

// reference lists all level A and AA success criteria with their Dutch names.
// Level AAA criteria are out of scope for a WCAG 2.2 AA audit.
var reference = []Criterion{
	{"1.1.1", "Niet-tekstuele content", model.LevelA, Edition21},
	{"1.2.1", "Louter-geluid en louter-video (vooraf opgenomen)", model.LevelA, Edition21},
	{"1.2.2", "Ondertitels voor doven en slechthorenden (vooraf opgenomen)", model.LevelA, Edition21},
	{"1.2.3", "Audiodescriptie of media-alternatief (vooraf opgenomen)", model.LevelA, Edition21},
	{"1.2.4", "Ondertitels voor doven en slechthorenden (live)", model.LevelAA, Edition21},
	{"1.2.5", "Audiodescriptie (vooraf opgenomen)", model.LevelAA, Edition21},
	{"1.3.1", "Info en relaties", model.LevelA, Edition21},
	{"1.3.2", "Betekenisvolle volgorde", model.LevelA, Edition21},
	{"1.3.3", "Zintuiglijke eigenschappen", model.LevelA, Edition21},
	{"1.3.4", "Weergavestand", model.LevelAA, Edition21},
	{"1.3.5", "Identificeer het doel van de input", model.LevelAA, Edition21},
	{"1.4.1", "Gebruik van kleur", model.LevelA, Edition21},
	{"1.4.2", "Geluidsbediening", model.LevelA, Edition21},
	{"1.4.3", "Contrast (minimum)", model.LevelAA, Edition21},
	{"1.4.4", "Herschalen van tekst", model.LevelAA, Edition21},
	{"1.4.5", "Afbeeldingen van tekst", model.LevelAA, Edition21},
	{"1.4.10", "Reflow", model.LevelAA, Edition21},
	{"1.4.11", "Contrast van niet-tekstuele content", model.LevelAA, Edition21},
	{"1.4.12", "Tekstafstand", model.LevelAA, Edition21},
	{"1.4.13", "Content bij hover of focus", model.LevelAA, Edition21},
	{"2.1.1", "Toetsenbord", model.LevelA, Edition21},
	{"2.1.2", "Geen toetsenbordval", model.LevelA, Edition21},
	{"2.1.4", "Enkel teken sneltoetsen", model.LevelA, Edition21},
	{"2.2.1", "Timing aanpasbaar", model.LevelA, Edition21},
	{"2.2.2", "Pauzeren, stoppen, verbergen", model.LevelA, Edition21},
	{"2.3.1", "Drie flitsen of beneden drempelwaarde", model.LevelA, Edition21},
	{"2.4.1", "Blokken omzeilen", model.LevelA, Edition21},
	{"2.4.2", "Paginatitel", model.LevelA, Edition21},
	{"2.4.3", "Focusvolgorde", model.LevelA, Edition21},
	{"2.4.4", "Linkdoel (in context)", model.LevelA, Edition21},
	{"2.4.5", "Meerdere manieren", model.LevelAA, Edition21},
	{"2.4.6", "Koppen en labels", model.LevelAA, Edition21},
	{"2.4.7", "Focus zichtbaar", model.LevelAA, Edition21},
	{"2.4.11", "Focus niet bedekt (minimum)", model.LevelAA, Edition22},
	{"2.5.1", "Aanwijzergebaren", model.LevelA, Edition21},
	{"2.5.2", "Aanwijzerannulering", model.LevelA, Edition21},
	{"2.5.3", "Label in naam", model.LevelA, Edition21},
	{"2.5.4", "Bewegingsactivering", model.LevelA, Edition21},
	{"2.5.7", "Sleepbewegingen", model.LevelAA, Edition22},
	{"2.5.8", "Grootte van het aanwijsgebied (minimum)", model.LevelAA, Edition22},
	{"3.1.1", "Taal van de pagina", model.LevelA, Edition21},
	{"3.1.2", "Taal van onderdelen", model.LevelAA, Edition21},
	{"3.2.1", "Bij focus", model.LevelA, Edition21},
	{"3.2.2", "Bij input", model.LevelA, Edition21},
	{"3.2.3", "Consistente navigatie", model.LevelAA, Edition21},
	{"3.2.4", "Consistente identificatie", model.LevelAA, Edition21},
	{"3.2.6", "Consistente hulp", model.LevelA, Edition22},
	{"3.3.1", "Foutidentificatie", model.LevelA, Edition21},
	{"3.3.2", "Labels of instructies", model.LevelA, Edition21},
	{"3.3.3", "Foutsuggestie", model.LevelAA, Edition21},
	{"3.3.4", "Foutpreventie (wettelijk, financieel, gegevens)", model.LevelAA, Edition21},
	{"3.3.7", "Overbodige invoer", model.LevelA, Edition22},
	{"3.3.8", "Toegankelijke authenticatie (minimum)", model.LevelAA, Edition22},
	{"4.1.1", "Parsen", model.LevelA, Edition21},
	{"4.1.2", "Naam, rol, waarde", model.LevelA, Edition21},
	{"4.1.3", "Statusberichten", model.LevelAA, Edition21},
}

var byID = func() map[string]Criterion {
	m := make(map[string]Criterion, len(reference))
	for _, c := range reference {
		m[c.ID] = c
	}
	return m
}()

// idPattern extracts a leading success criterion number such as "1.4.10".
var idPattern = regexp.MustCompile(`^\s*(?:SC\s*)?(\d+\.\d+\.\d+)`)

// NormalizeID returns the bare criterion number of id.
// "SC 1.4.3", " 1.4.3 Contrast" and "1.4.3" all normalize to "1.4.3".
// Ids without a recognizable number are returned trimmed.
func NormalizeID(id string) string {
	if m := idPattern.FindStringSubmatch(id); m != nil {
		return m[1]
	}
	return strings.TrimSpace(id)
}

// Lookup returns the reference row for a criterion id.
func Lookup(id string) (Criterion, bool) {
	c, ok := byID[NormalizeID(id)]
	return c, ok
}

// All returns a copy of the reference table in criterion order.
func All() []Criterion {
	out := make([]Criterion, len(reference))
	copy(out, reference)
	return out
}

// Filter returns the criteria of one edition and level.
func Filter(edition Edition, level model.Level) []Criterion {
	var out []Criterion
	for _, c := range reference {
		if c.Edition == edition && c.Level == level {
			out = append(out, c)
		}
	}
	return out
}

// Principles returns the four WCAG principles in order.
func Principles() []Principle {
	out := make([]Principle, len(principles))
	copy(out, principles)
	return out
}

// PrincipleOf returns the principle a criterion id belongs to.
func PrincipleOf(id string) (Principle, bool) {
	n := NormalizeID(id)
	head, _, _ := strings.Cut(n, ".")
	for _, p := range principles {
		if p.ID == head {
			return p, true
		}
	}
	return Principle{}, false
}

// SortIDs sorts criterion ids numerically ("1.4.10" after "1.4.4").
func SortIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		return compareIDs(ids[i], ids[j]) < 0
	})
}

func compareIDs(a, b string) int {
	pa := strings.Split(NormalizeID(a), ".")
	pb := strings.Split(NormalizeID(b), ".")
	for i := 0; i < len(pa) && i < len(pb); i++ {
		na, errA := strconv.Atoi(pa[i])
		nb, errB := strconv.Atoi(pb[i])
		if errA != nil || errB != nil {
			if c := strings.Compare(pa[i], pb[i]); c != 0 {
				return c
			}
			continue
		}
		if na != nb {
			return na - nb
		}
	}
	return len(pa) - len(pb)
}
