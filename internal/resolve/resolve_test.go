package resolve

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/chrisgosselin92/docgenautomation/internal/dynamic"
	"github.com/chrisgosselin92/docgenautomation/internal/store"
	"github.com/chrisgosselin92/docgenautomation/internal/types"
)

// fakeDoc is an in-memory Document; replacement semantics mirror the
// .docx boundary (longest key first, whole-text scope).
type fakeDoc struct {
	text string
}

func (d *fakeDoc) Text() string { return d.text }

func (d *fakeDoc) Replace(values map[string]string) int {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	n := 0
	for _, k := range keys {
		n += strings.Count(d.text, k)
		d.text = strings.ReplaceAll(d.text, k, values[k])
	}
	return n
}

func (d *fakeDoc) ReplaceFirst(key, value string) bool {
	if !strings.Contains(d.text, key) {
		return false
	}
	d.text = strings.Replace(d.text, key, value, 1)
	return true
}

// step scripting for the prompter; each operator interaction is one
// expected step, in order.
type step struct {
	kind   string // input, select, confirm
	text   string
	index  int
	yes    bool
	cancel bool
}

func input(v string) step         { return step{kind: "input", text: v} }
func sel(i int) step              { return step{kind: "select", index: i} }
func confirm(v bool) step         { return step{kind: "confirm", yes: v} }
func cancelStep(kind string) step { return step{kind: kind, cancel: true} }

type fakePrompter struct {
	t     *testing.T
	steps []step
}

func (p *fakePrompter) next(kind, title string) step {
	require.NotEmpty(p.t, p.steps, "unexpected %s prompt: %s", kind, title)
	s := p.steps[0]
	p.steps = p.steps[1:]
	require.Equalf(p.t, s.kind, kind, "prompt order mismatch at %q", title)
	return s
}

func (p *fakePrompter) Input(title, label string) (string, error) {
	s := p.next("input", title)
	if s.cancel {
		return "", types.ErrCancelled
	}
	return s.text, nil
}

func (p *fakePrompter) Select(title string, options []string) (int, error) {
	s := p.next("select", title)
	if s.cancel {
		return 0, types.ErrCancelled
	}
	require.Less(p.t, s.index, len(options))
	return s.index, nil
}

func (p *fakePrompter) Confirm(question string) (bool, error) {
	s := p.next("confirm", question)
	if s.cancel {
		return false, types.ErrCancelled
	}
	return s.yes, nil
}

func (p *fakePrompter) drained() bool { return len(p.steps) == 0 }

func writeResponseBank(t *testing.T, sheet string, singleUse bool, rows [][2]string) string {
	t.Helper()
	f := excelize.NewFile()
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Display"))
	require.NoError(t, f.SetCellValue(sheet, "B1", "Output"))
	flag := "FALSE"
	if singleUse {
		flag = "TRUE"
	}
	require.NoError(t, f.SetCellValue(sheet, "D1", flag))
	for i, row := range rows {
		cellA, _ := excelize.JoinCellName("A", i+2)
		cellB, _ := excelize.JoinCellName("B", i+2)
		require.NoError(t, f.SetCellValue(sheet, cellA, row[0]))
		require.NoError(t, f.SetCellValue(sheet, cellB, row[1]))
	}
	path := filepath.Join(t.TempDir(), "responses.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func newTestResolver(t *testing.T, p types.Prompter, bankPath string) (*Resolver, *store.Store) {
	t.Helper()
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	if bankPath == "" {
		bankPath = filepath.Join(t.TempDir(), "missing.xlsx")
	}
	bank := dynamic.OpenBank(bankPath)
	t.Cleanup(func() { bank.Close() })

	r := NewResolver(s, dynamic.NewResolver(bank, dynamic.NewCache(), p), p)
	return r, s
}

func newClient(t *testing.T, s *store.Store, values map[string]string) types.Client {
	t.Helper()
	id, err := s.CreateClient(types.Client{FirstName: "Jane", LastName: "Doe", MatterID: "M-100"})
	require.NoError(t, err)
	for k, v := range values {
		require.NoError(t, s.SetValue(types.EntityClient, id, k, v))
	}
	c, err := s.GetClient(id)
	require.NoError(t, err)
	return c
}

func TestDynamicResolvesBeforeStored(t *testing.T) {
	bank := writeResponseBank(t, "venue", true, [][2]string{
		{"Kings", "Kings County Superior Court"},
	})
	p := &fakePrompter{t: t, steps: []step{sel(0)}}
	r, s := newTestResolver(t, p, bank)
	client := newClient(t, s, nil)

	doc := &fakeDoc{text: "Filed in <<venue>>. Venue {{venue}} is proper."}
	require.NoError(t, r.ResolveDocument(doc, client))

	// One selection served both families; the stored pass read the
	// dynamic answer out of the snapshot instead of prompting.
	assert.True(t, p.drained())
	assert.Equal(t,
		"Filed in Kings County Superior Court. Venue Kings County Superior Court is proper.",
		doc.text)
}

func TestDynamicAnswerPersistedForLaterTemplates(t *testing.T) {
	bank := writeResponseBank(t, "venue", true, [][2]string{
		{"Kings", "Kings County Superior Court"},
	})
	p := &fakePrompter{t: t, steps: []step{sel(0)}}
	r, s := newTestResolver(t, p, bank)
	client := newClient(t, s, nil)

	first := &fakeDoc{text: "Filed in <<venue>>."}
	require.NoError(t, r.ResolveDocument(first, client))

	stored, err := s.GetValue(types.EntityClient, client.ID, "venue")
	require.NoError(t, err)
	assert.Equal(t, "Kings County Superior Court", stored)

	// A later template referencing the stored form resolves from the
	// database; the operator is not asked a second time.
	second := &fakeDoc{text: "Venue {{venue}} is proper."}
	require.NoError(t, r.ResolveDocument(second, client))
	assert.True(t, p.drained())
	assert.Equal(t, "Venue Kings County Superior Court is proper.", second.text)
}

func TestDynamicModifierVariantsShareOneAnswer(t *testing.T) {
	bank := writeResponseBank(t, "venue", true, [][2]string{{"Kings", "Kings County"}})
	p := &fakePrompter{t: t, steps: []step{sel(0)}}
	r, s := newTestResolver(t, p, bank)

	doc := &fakeDoc{text: "<<venue>> / <<venue_upper>>"}
	require.NoError(t, r.ResolveDocument(doc, newClient(t, s, nil)))

	assert.True(t, p.drained())
	assert.Equal(t, "Kings County / KINGS COUNTY", doc.text)
}

func TestDynamicMissStaysLiteral(t *testing.T) {
	p := &fakePrompter{t: t}
	r, s := newTestResolver(t, p, "")

	doc := &fakeDoc{text: "Keep <<no_sheet>> literal."}
	require.NoError(t, r.ResolveDocument(doc, newClient(t, s, nil)))
	assert.Equal(t, "Keep <<no_sheet>> literal.", doc.text)
}

func TestStoredPromptPersistsValueAndMeta(t *testing.T) {
	p := &fakePrompter{t: t, steps: []step{input("Dept. 4B")}}
	r, s := newTestResolver(t, p, "")
	client := newClient(t, s, nil)

	doc := &fakeDoc{text: "Hearing in {{courtroom}}."}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "Hearing in Dept. 4B.", doc.text)

	got, err := s.GetValue(types.EntityClient, client.ID, "courtroom")
	require.NoError(t, err)
	assert.Equal(t, "Dept. 4B", got)

	exists, err := s.VariableExists("courtroom")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStoredEmptyAnswerSubstitutesBlankWithoutPersisting(t *testing.T) {
	p := &fakePrompter{t: t, steps: []step{input("")}}
	r, s := newTestResolver(t, p, "")
	client := newClient(t, s, nil)

	doc := &fakeDoc{text: "Room: {{courtroom}}."}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "Room: .", doc.text)

	got, err := s.GetValue(types.EntityClient, client.ID, "courtroom")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestStoredRepeatPromptsOnce(t *testing.T) {
	p := &fakePrompter{t: t, steps: []step{input("Kings")}}
	r, s := newTestResolver(t, p, "")

	doc := &fakeDoc{text: "{{venue}} and again {{venue}}."}
	require.NoError(t, r.ResolveDocument(doc, newClient(t, s, nil)))
	assert.Equal(t, "Kings and again Kings.", doc.text)
	assert.True(t, p.drained())
}

func TestSystemDatesShadowStoredValues(t *testing.T) {
	p := &fakePrompter{t: t}
	r, s := newTestResolver(t, p, "")
	client := newClient(t, s, map[string]string{"year": "1999"})
	r.now = func() time.Time { return time.Date(2026, time.March, 3, 9, 0, 0, 0, time.UTC) }

	doc := &fakeDoc{text: "Dated {{currentday}} of {{currentmonth}}, {{year}} ({{todayshort}})."}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "Dated 3rd of March, 2026 (03/03/2026).", doc.text)
}

func TestStoredModifierSuffixes(t *testing.T) {
	p := &fakePrompter{t: t}
	r, s := newTestResolver(t, p, "")
	client := newClient(t, s, map[string]string{"venue": "kings county"})

	doc := &fakeDoc{text: "{{venue_upper}} / {{venue_title}} / {{venue}}"}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "KINGS COUNTY / Kings County / kings county", doc.text)
}

func TestDerivedMorphology(t *testing.T) {
	p := &fakePrompter{t: t}
	r, s := newTestResolver(t, p, "")
	client := newClient(t, s, map[string]string{
		"company":         "Acme Industry",
		"gender":          "female",
		"defendant_count": "3",
	})

	doc := &fakeDoc{text: "{{company_plural_derived}} | {{he_she_derived}} | {{defendant_deny_derived}} | {{company_possessive_derived}}"}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "Acme Industries | she | deny | Acme Industry's", doc.text)
}

func TestComboResolution(t *testing.T) {
	p := &fakePrompter{t: t}
	r, s := newTestResolver(t, p, "")
	client := newClient(t, s, map[string]string{"firstname": "Jane", "lastname": "Doe"})
	require.NoError(t, s.UpsertCombo(types.ComboVariable{
		Name:       "fullname",
		Components: []string{"firstname", "lastname"},
		Separator:  " ",
	}))

	doc := &fakeDoc{text: "Plaintiff {{fullname_combo}} and {{fullname}}."}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "Plaintiff Jane Doe and Jane Doe.", doc.text)
	assert.True(t, p.drained())
}

func TestUndefinedComboOfferedInteractively(t *testing.T) {
	p := &fakePrompter{t: t, steps: []step{
		confirm(true),               // define it now?
		input("firstname lastname"), // components
		input(""),                   // separator, default space
	}}
	r, s := newTestResolver(t, p, "")
	client := newClient(t, s, map[string]string{"firstname": "Jane", "lastname": "Doe"})

	doc := &fakeDoc{text: "{{caption_combo}}"}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "Jane Doe", doc.text)

	combo, err := s.GetCombo("caption")
	require.NoError(t, err)
	assert.Equal(t, []string{"firstname", "lastname"}, combo.Components)
}

func TestAttorneyFieldsResolve(t *testing.T) {
	p := &fakePrompter{t: t}
	r, s := newTestResolver(t, p, "")
	attID, err := s.CreateAttorney(types.Attorney{
		FirstName: "Pat", LastName: "Lee", FirmName: "Lee LLP", Email: "pat@lee.example",
	})
	require.NoError(t, err)
	client := newClient(t, s, nil)
	require.NoError(t, s.AssignCounsel(client.ID, attID))
	client.OpposingCounselID = attID

	doc := &fakeDoc{text: "((plaintiffattorneyfullname)), ((plaintifffirmname))"}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "Pat Lee, Lee LLP", doc.text)
}

func TestAttorneyMissingFieldThreeWay(t *testing.T) {
	p := &fakePrompter{t: t, steps: []step{
		sel(0),                     // bar number: enter and save
		input("SBN 123456"),        //
		sel(1),                     // fax: leave literal
		sel(0),                     // unmapped name: enter and save
		input("granted 2024-01-02"),
	}}
	r, s := newTestResolver(t, p, "")
	attID, err := s.CreateAttorney(types.Attorney{FirstName: "Pat", LastName: "Lee", FirmName: "Lee LLP"})
	require.NoError(t, err)
	client := newClient(t, s, nil)
	require.NoError(t, s.AssignCounsel(client.ID, attID))
	client.OpposingCounselID = attID

	doc := &fakeDoc{text: "((plaintiffbarnumber)) ((plaintifffaxphone)) ((plaintiffprohacvice))"}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "SBN 123456 ((plaintifffaxphone)) granted 2024-01-02", doc.text)

	att, err := s.GetAttorney(attID)
	require.NoError(t, err)
	assert.Equal(t, "SBN 123456", att.BarNumber)
	assert.Equal(t, "plaintiffprohacvice: granted 2024-01-02", att.Notes)
}

func TestAttorneyUnassignedPromptsForPick(t *testing.T) {
	p := &fakePrompter{t: t, steps: []step{sel(0)}}
	r, s := newTestResolver(t, p, "")
	attID, err := s.CreateAttorney(types.Attorney{FirstName: "Pat", LastName: "Lee", FirmName: "Lee LLP"})
	require.NoError(t, err)
	client := newClient(t, s, nil)

	doc := &fakeDoc{text: "((plaintiffattorneyfullname))"}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "Pat Lee", doc.text)

	// The pick was persisted on the client record.
	got, err := s.GetClient(client.ID)
	require.NoError(t, err)
	assert.Equal(t, attID, got.OpposingCounselID)
}

func TestGrammarAskedOncePerDocument(t *testing.T) {
	p := &fakePrompter{t: t, steps: []step{
		sel(1), // plural
		sel(2), // other
	}}
	r, s := newTestResolver(t, p, "")

	doc := &fakeDoc{text: "The defendants (@is_are@) served; (@he_she_they@) (@denies_deny@) it. (@unknownrule@)"}
	require.NoError(t, r.ResolveDocument(doc, newClient(t, s, nil)))
	assert.Equal(t, "The defendants are served; they deny it. (@unknownrule@)", doc.text)
	assert.True(t, p.drained())
}

func TestGrammarCapitalizationMirrorsName(t *testing.T) {
	p := &fakePrompter{t: t, steps: []step{sel(0), sel(1)}} // singular, female
	r, s := newTestResolver(t, p, "")

	doc := &fakeDoc{text: "(@He_She_They@) answered."}
	require.NoError(t, r.ResolveDocument(doc, newClient(t, s, nil)))
	assert.Equal(t, "She answered.", doc.text)
}

func TestDocSpecificPromptsEveryOccurrence(t *testing.T) {
	p := &fakePrompter{t: t, steps: []step{
		input("June 1, 2026"),
		input("June 2, 2026"),
	}}
	r, s := newTestResolver(t, p, "")

	doc := &fakeDoc{text: "Signed {@date@}; filed {@date@}."}
	require.NoError(t, r.ResolveDocument(doc, newClient(t, s, nil)))
	assert.Equal(t, "Signed June 1, 2026; filed June 2, 2026.", doc.text)
}

func TestBracketPass(t *testing.T) {
	p := &fakePrompter{t: t}
	r, s := newTestResolver(t, p, "")
	client := newClient(t, s, map[string]string{
		"defendant_count": "2",
		"venue":           "Kings County",
	})

	doc := &fakeDoc{text: "[[defendant_defendants]] in [[venue]]: [[plaintiff]] v. [[defendant]]. [[unknown_name]]"}
	require.NoError(t, r.ResolveDocument(doc, client))
	assert.Equal(t, "defendants in Kings County: Jane Doe v. Defendant. [[unknown_name]]", doc.text)
}

func TestCancelAbortsDocument(t *testing.T) {
	p := &fakePrompter{t: t, steps: []step{cancelStep("input")}}
	r, s := newTestResolver(t, p, "")

	doc := &fakeDoc{text: "{{venue}}"}
	err := r.ResolveDocument(doc, newClient(t, s, nil))
	assert.ErrorIs(t, err, types.ErrCancelled)
}
