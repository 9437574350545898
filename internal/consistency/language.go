package consistency

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"

	"github.com/nao1215/wcagaudit/internal/model"
)

// ErrNotDutch is returned by CheckLanguage when the executive summary is in another language.
var ErrNotDutch = errors.New("executive summary is not in Dutch")

// minConfidence is the detector confidence above which a non-Dutch verdict is trusted.
const minConfidence = 0.5

// detector is built on first use; loading language models takes a while.
var detector = sync.OnceValue(func() lingua.LanguageDetector {
	return lingua.NewLanguageDetectorBuilder().
		FromLanguages(lingua.Dutch, lingua.English, lingua.German, lingua.French).
		Build()
})

// CheckLanguage reports whether the executive summary reads as Dutch.
// It returns ErrNotDutch, naming the detected language, only when another
// language is detected with reasonable confidence. Short or ambiguous text passes.
func CheckLanguage(r *model.Report) error {
	text := strings.TrimSpace(r.ExecutiveSummary)
	if len(strings.Fields(text)) < 3 {
		return nil
	}

	d := detector()
	lang, ok := d.DetectLanguageOf(text)
	if !ok || lang == lingua.Dutch {
		return nil
	}
	if d.ComputeLanguageConfidence(text, lang) < minConfidence {
		return nil
	}
	return fmt.Errorf("%w: detected %s", ErrNotDutch, lang)
}
