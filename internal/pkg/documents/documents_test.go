package documents

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentcourt/ftpr/app/models"
)

func sampleFields() Fields {
	eviction := time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC)
	c := &models.LegalCase{
		ID:                    "case-123",
		CourtCaseNumber:       "D-01-LT-25-000123",
		DistrictCourtLocation: "Baltimore City",
		RentOwedAtFiling:      150000,
		LateFees:              7500,
		EvictionDate:          &eviction,
		Property: &models.Property{
			Address: "100 N Charles St",
			Unit:    "4B",
			City:    "Baltimore",
			State:   "MD",
			ZipCode: "21201",
			County:  "Baltimore City",
		},
		Tenant: &models.Tenant{TenantNames: []string{"Ann Doe", "Bo Doe"}},
	}
	landlord := &models.Profile{FullName: "Lee Landlord", CompanyName: "Charles Rentals LLC"}
	return FieldsFromCase(c, landlord, time.Date(2025, time.February, 20, 0, 0, 0, 0, time.UTC))
}

func TestRenderIsDeterministic(t *testing.T) {
	for _, tmpl := range All() {
		t.Run(tmpl.Key, func(t *testing.T) {
			first, err := Render(tmpl, Fields{})
			require.NoError(t, err)
			second, err := Render(tmpl, Fields{})
			require.NoError(t, err)

			assert.True(t, bytes.HasPrefix(first, []byte("%PDF-")))
			assert.Equal(t, first, second)
		})
	}
}

func TestRenderFilledDiffersFromBlank(t *testing.T) {
	blank, err := Render(FinalNotice, Fields{})
	require.NoError(t, err)
	filled, err := Render(FinalNotice, sampleFields())
	require.NoError(t, err)

	assert.NotEqual(t, blank, filled)
}

func TestRecordIsStable(t *testing.T) {
	for _, tmpl := range All() {
		a := Record(tmpl, sampleFields())
		b := Record(tmpl, sampleFields())
		assert.Equal(t, a, b, tmpl.Key)
		assert.NotEmpty(t, a)
		assert.Equal(t, "font", a[0].Kind, "templates set a font before drawing")
	}
}

func TestRecordFillsCaseFields(t *testing.T) {
	var texts []string
	for _, op := range Record(FinalNotice, sampleFields()) {
		if op.Kind == "text" {
			texts = append(texts, op.Text)
		}
	}

	assert.Contains(t, texts, "FINAL NOTICE OF EVICTION DATE")
	assert.Contains(t, texts, "Ann Doe, Bo Doe")
	assert.Contains(t, texts, "100 N Charles St, Unit 4B")
	assert.Contains(t, texts, "Baltimore, MD 21201")
	assert.Contains(t, texts, "March 14, 2025")
	assert.Contains(t, texts, "$1,575.00")
}

func TestFirmbookIsLandscape(t *testing.T) {
	assert.Equal(t, 792.0, Firmbook.PageWidth())
	assert.Equal(t, 612.0, FinalNotice.PageWidth())
	for _, op := range Record(Firmbook, Fields{}) {
		if op.Kind == "line" {
			assert.LessOrEqual(t, op.X2, 792.0)
		}
	}
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "Blank_Final_Notice_of_Eviction_Date.pdf", FinalNotice.Filename(""))
	assert.Equal(t, "Blank_Certificate_of_Mailing_3817.pdf", CertificateOfMailing.Filename(""))
	assert.Equal(t, "Blank_Firmbook_3665.pdf", Firmbook.Filename(""))
	assert.Equal(t, "final-notice-abc.pdf", FinalNotice.Filename("abc"))
	assert.Equal(t, "firmbook-abc.pdf", Firmbook.Filename("abc"))
}

func TestLookup(t *testing.T) {
	tmpl, err := Lookup("certificate-of-mailing")
	require.NoError(t, err)
	assert.Equal(t, CertificateOfMailing.Title, tmpl.Title)

	_, err = Lookup("lease")
	assert.ErrorIs(t, err, ErrUnknownTemplate)
}

func TestWrapText(t *testing.T) {
	r := newRecorder(portrait)
	r.SetFont("Helvetica", "", 10)

	lines := WrapText(r, "one two three four five six seven eight nine ten", 80)
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		if len(strings.Fields(l)) > 1 {
			assert.LessOrEqual(t, r.StringWidth(l), 80.0, l)
		}
	}
	assert.Equal(t, []string{"a", "", "b"}, WrapText(r, "a\n\nb", 80))
	assert.Equal(t, []string{"supercalifragilistic"}, WrapText(r, "supercalifragilistic", 10))
}

func TestDrawWrappedHeight(t *testing.T) {
	r := newRecorder(portrait)
	r.SetFont("Times", "", 12)

	h := drawWrapped(r, 0, 0, "a\nb\nc", 100, 12)
	assert.InDelta(t, 3*12*LineHeight, h, 0.0001)
}

func TestAccentedNamesMeasureAsSingleGlyphs(t *testing.T) {
	r := newRecorder(portrait)
	r.SetFont("Helvetica", "", 12)

	// é and ñ share the advance width of e and n in Helvetica.
	assert.InDelta(t, r.StringWidth("Jose Pena"), r.StringWidth("José Peña"), 0.0001)
}

func TestAccentedNamesAreWrittenAsWinAnsi(t *testing.T) {
	pdf := newPDF(portrait)
	pdf.SetCompression(false)
	pdf.AddPage()
	c := newPDFCanvas(pdf)
	c.SetFont("Helvetica", "", 12)
	c.Text(72, 72, "José Peña")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.Contains(t, buf.String(), "Jos\xe9 Pe\xf1a")
	assert.NotContains(t, buf.String(), "José")
}

func TestRenderWithAccentedTenant(t *testing.T) {
	f := sampleFields()
	f.TenantNames = []string{"José Peña", "Zoë Brontë"}

	for _, tmpl := range All() {
		out, err := Render(tmpl, f)
		require.NoError(t, err, tmpl.Key)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), tmpl.Key)
	}

	var texts []string
	for _, op := range Record(FinalNotice, f) {
		if op.Kind == "text" {
			texts = append(texts, op.Text)
		}
	}
	assert.Contains(t, strings.Join(texts, "\n"), "José Peña")
}
