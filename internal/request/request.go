package request

import (
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nao1215/wcagaudit/internal/model"
	"github.com/nao1215/wcagaudit/internal/targets"
)

// DefaultInspector is used when no inspector name is given.
const DefaultInspector = "WCAG AI Auditor"

// DefaultModel is the generative model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrEmptySubmission is returned when no target has a URL.
var ErrEmptySubmission = targets.ErrEmptySubmission

// ErrCapacityExceeded is returned when more than targets.MaxTargets targets have a URL.
var ErrCapacityExceeded = targets.ErrCapacityExceeded

// Request is the payload sent to the generative service.
type Request struct {
	// Schema constrains the JSON the service must return.
	Schema *genai.Schema

	// Brief is the Dutch instruction text.
	Brief string

	// Model is the generative model name.
	Model string

	// Inspector is the resolved inspector name, never empty.
	Inspector string

	// URLs lists the submitted addresses in order.
	URLs []string
}

type options struct {
	client  string
	version string
	model   string
	now     func() time.Time
}

// Option configures Build.
type Option func(*options)

// WithClient adds the client organisation name as a hint for meta.client.
func WithClient(client string) Option {
	return func(o *options) {
		o.client = strings.TrimSpace(client)
	}
}

// WithVersion adds the report version as a hint for meta.version.
func WithVersion(version string) Option {
	return func(o *options) {
		o.version = strings.TrimSpace(version)
	}
}

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(o *options) {
		if m := strings.TrimSpace(model); m != "" {
			o.model = m
		}
	}
}

// WithClock sets the clock used for the report date hint.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Build creates a Request for the eligible targets in list.
// Targets with a blank URL are skipped; if none remain, ErrEmptySubmission is
// returned, and more than targets.MaxTargets remaining yields ErrCapacityExceeded.
func Build(list []model.Target, inspector string, opts ...Option) (Request, error) {
	o := options{model: DefaultModel, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	eligible := targets.Eligible(list)
	if len(eligible) == 0 {
		return Request{}, ErrEmptySubmission
	}
	if len(eligible) > targets.MaxTargets {
		return Request{}, ErrCapacityExceeded
	}

	inspector = strings.TrimSpace(inspector)
	if inspector == "" {
		inspector = DefaultInspector
	}

	urls := make([]string, len(eligible))
	for i, t := range eligible {
		urls[i] = strings.TrimSpace(t.URL)
	}

	return Request{
		Schema:    ReportSchema(),
		Brief:     brief(eligible, inspector, o),
		Model:     o.model,
		Inspector: inspector,
		URLs:      urls,
	}, nil
}

// brief renders the Dutch instruction text.
func brief(list []model.Target, inspector string, o options) string {
	var b strings.Builder

	b.WriteString("Je bent een expert op het gebied van digitale toegankelijkheid (WCAG 2.2 AA).\n")
	b.WriteString("Je taak is om een realistisch, professioneel WCAG 2.2 AA auditrapport te genereren in het Nederlands, ")
	b.WriteString("gebaseerd op de opgegeven URL's.\n\n")

	b.WriteString("Doelwit URL's:\n")
	withLogin := false
	for _, t := range list {
		fmt.Fprintf(&b, "- %s", strings.TrimSpace(t.URL))
		if t.HasCredentials() {
			b.WriteString(" (achter een login, inloggegevens zijn beschikbaar)")
			withLogin = true
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Naam van de inspecteur die het rapport opstelt: %q.\n", inspector)
	b.WriteString("Gebruik deze naam letterlijk in het veld meta.inspector.\n")
	if o.client != "" {
		fmt.Fprintf(&b, "Opdrachtgever: %q. Gebruik deze naam in het veld meta.client.\n", o.client)
	}
	if o.version != "" {
		fmt.Fprintf(&b, "Versie van het rapport: %q. Gebruik deze waarde in het veld meta.version.\n", o.version)
	}
	fmt.Fprintf(&b, "Datum van het rapport: %s. Gebruik deze datum in het veld meta.date.\n\n", o.now().Format("2006-01-02"))

	b.WriteString("Instructies:\n")
	b.WriteString("1. Analyseer de aard van de URL's (bijv. is het een webshop, een login pagina, een informatiesite?).\n")
	b.WriteString("2. Simuleer aannemelijke bevindingen die vaak voorkomen op dit soort websites ")
	b.WriteString("(bijv. contrastproblemen, ontbrekende alt-teksten, focus indicators, formulieren zonder labels).\n")
	if withLogin {
		b.WriteString("3. Voor URL's achter een login: neem aan dat de pagina's achter de login ook zijn geaudit.\n")
	} else {
		b.WriteString("3. Als er inloggegevens zijn opgegeven, neem aan dat de pagina's achter de login ook zijn geaudit.\n")
	}
	fmt.Fprintf(&b, "4. Genereer alleen bevindingen (findings) voor criteria met resultaat %q. ", model.ResultFail)
	fmt.Fprintf(&b, "Criteria met resultaat %q of %q hebben een lege lijst findings. ", model.ResultPass, model.ResultNotApplicable)
	b.WriteString("Wees specifiek in de beschrijving van het probleem en de oplossing.\n")
	b.WriteString("5. Zorg dat de totalen in de samenvatting exact kloppen met de individuele criteria, ")
	b.WriteString("per WCAG-versie (2.1 en 2.2) en per niveau (A en AA).\n")
	b.WriteString("6. Gebruik professioneel Nederlands.\n")
	b.WriteString("7. Beoordeel alle 4 principes: Waarneembaar, Bedienbaar, Begrijpelijk, Robuust.\n")
	b.WriteString("8. Zorg dat nieuwe WCAG 2.2 criteria (zoals 2.4.11 Focus niet bedekt en 2.5.7 Sleepbewegingen) worden meegenomen.\n\n")

	b.WriteString("Genereer het volledige JSON object volgens het schema.\n")
	return b.String()
}
