package edm

import (
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/edmgen/edmgen/lib/payload"
	"github.com/edmgen/edmgen/lib/registry"
)

// Generator runs the full template merge: normalize the template,
// prepare IDs, purge replaced sections, rebuild each section from the
// payload, link the scenario graph, validate referential closure and
// serialize. A Generator is single-use state-free; every Generate call
// starts from a fresh registry and a fresh parse of the template.
type Generator struct {
	logger       zerolog.Logger
	templateFile string

	// InjectBinaryData copies the BLOB library next to the template
	// into the export after validation.
	InjectBinaryData bool

	// Clock is the audit-stamp time source, overridable in tests.
	Clock func() time.Time
}

func NewGenerator(logger zerolog.Logger, templateFile string) *Generator {
	return &Generator{
		logger:       logger,
		templateFile: templateFile,
		Clock:        time.Now,
	}
}

// merger carries the per-call merge state through the section
// handlers.
type merger struct {
	doc    *Document
	reg    *registry.Registry
	logger zerolog.Logger
	now    time.Time
}

func (m *merger) export() *etree.Element {
	return m.doc.Export()
}

// linkWellIDs stamps the wellbore and well foreign keys onto attrs
// when those entities exist.
func (m *merger) linkWellIDs(attrs map[string]string) {
	if id := m.reg.FirstID(TypeWellbore); id != "" {
		attrs["WELLBORE_ID"] = id
		if wid := m.reg.FirstID(TypeWell); wid != "" {
			attrs["WELL_ID"] = wid
		}
	}
}

// Generate merges the payload into the template and returns the
// serialized export document.
func (g *Generator) Generate(p *payload.Payload) (string, error) {
	doc, err := LoadTemplate(g.templateFile)
	if err != nil {
		return "", err
	}
	return g.generate(doc, p)
}

// GenerateFromString is Generate with the template supplied inline.
func (g *Generator) GenerateFromString(template string, p *payload.Payload) (string, error) {
	doc, err := ParseDocument(template)
	if err != nil {
		return "", err
	}
	return g.generate(doc, p)
}

func (g *Generator) generate(doc *Document, p *payload.Payload) (string, error) {
	doc.EnsureBoilerplate()

	reg := registry.NewRegistry()
	prepareIDs(reg, p)
	purgeSections(doc.Export(), p)

	m := &merger{doc: doc, reg: reg, logger: g.logger, now: g.Clock()}

	m.updateProjectInfo(p.ProjectInfo)
	m.addScenarioElement()

	if p.FormationInputs != nil {
		m.updateDLSOverrides(p.FormationInputs.DLSOverrideGroup)
	}
	if err := m.updateCasingSchematics(p.CasingSchematics); err != nil {
		return "", err
	}
	if p.FormationInputs != nil {
		m.updateSurveyHeader(p.FormationInputs.SurveyHeader)
	}
	m.updateFormationInputs(p.FormationInputs)
	m.updateDatum(p.Datum)
	m.addCaseElements()

	if errs := reg.ValidateReferences(); len(errs) > 0 {
		return "", &multierror.Error{Errors: errs}
	}

	if g.InjectBinaryData {
		libFile := filepath.Join(filepath.Dir(g.templateFile), BinaryDataLibraryName)
		if err := m.injectBinaryData(libFile); err != nil {
			g.logger.Warn().Err(err).Msg("Binary data injection skipped")
		}
	}

	return doc.Serialize()
}
