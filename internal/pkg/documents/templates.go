package documents

import (
	"errors"
	"fmt"
)

const (
	DocFinalNotice          = "final-notice"
	DocCertificateOfMailing = "certificate-of-mailing"
	DocFirmbook             = "firmbook"

	portrait  = "P"
	landscape = "L"

	letterShort = 612.0
	letterLong  = 792.0
	margin      = 54.0
)

var ErrUnknownTemplate = errors.New("unknown document template")

// Template is one fixed-layout legal form.
type Template struct {
	Key           string
	Title         string
	BlankFilename string
	Orientation   string
	draw          func(Canvas, Fields)
}

// PageWidth returns the page width in points.
func (t Template) PageWidth() float64 {
	if t.Orientation == landscape {
		return letterLong
	}
	return letterShort
}

// Filename is the download name: the blank filename when caseID is empty,
// otherwise <doc-type>-<caseId>.pdf.
func (t Template) Filename(caseID string) string {
	if caseID == "" {
		return t.BlankFilename
	}
	return fmt.Sprintf("%s-%s.pdf", t.Key, caseID)
}

var (
	FinalNotice = Template{
		Key:           DocFinalNotice,
		Title:         "Final Notice of Eviction Date",
		BlankFilename: "Blank_Final_Notice_of_Eviction_Date.pdf",
		Orientation:   portrait,
		draw:          drawFinalNotice,
	}
	CertificateOfMailing = Template{
		Key:           DocCertificateOfMailing,
		Title:         "Certificate of Mailing (PS Form 3817)",
		BlankFilename: "Blank_Certificate_of_Mailing_3817.pdf",
		Orientation:   portrait,
		draw:          drawCertificateOfMailing,
	}
	Firmbook = Template{
		Key:           DocFirmbook,
		Title:         "Firm Mailing Book (PS Form 3665)",
		BlankFilename: "Blank_Firmbook_3665.pdf",
		Orientation:   landscape,
		draw:          drawFirmbook,
	}
)

// All returns the templates in display order.
func All() []Template {
	return []Template{FinalNotice, CertificateOfMailing, Firmbook}
}

// Lookup finds a template by its doc type key.
func Lookup(key string) (Template, error) {
	for _, t := range All() {
		if t.Key == key {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, key)
}

// or returns v, or a blank of the given width in underscores.
func or(v string, blanks int) string {
	if v != "" {
		return v
	}
	b := make([]byte, blanks)
	for i := range b {
		b[i] = '_'
	}
	return string(b)
}

func centered(c Canvas, pageWidth, y float64, s string) {
	c.Text((pageWidth-c.StringWidth(s))/2, y, s)
}

// labeled draws "label" in bold followed by value in regular weight.
func labeled(c Canvas, x, y float64, label, value string, size float64) {
	c.SetFont("Helvetica", "B", size)
	c.Text(x, y, label)
	w := c.StringWidth(label)
	c.SetFont("Helvetica", "", size)
	c.Text(x+w+4, y, value)
}

func drawFinalNotice(c Canvas, f Fields) {
	width := letterShort
	content := width - 2*margin
	yPos := 72.0

	c.SetFont("Helvetica", "B", 16)
	centered(c, width, yPos, "FINAL NOTICE OF EVICTION DATE")
	yPos += 18
	c.SetFont("Helvetica", "", 10)
	centered(c, width, yPos, "Maryland Code, Real Property Section 8-401")
	yPos += 10
	c.SetLineWidth(1)
	c.Line(margin, yPos, width-margin, yPos)
	yPos += 24

	labeled(c, margin, yPos, "Date of Notice:", or(f.NoticeDate, 30), 11)
	yPos += 20
	labeled(c, margin, yPos, "District Court Case No.:", or(f.CourtCaseNumber, 30), 11)
	yPos += 20
	labeled(c, margin, yPos, "District Court Location:", or(f.DistrictCourt, 40), 11)
	yPos += 28

	c.SetFont("Helvetica", "B", 12)
	c.Text(margin, yPos, "TO TENANT(S):")
	yPos += 16
	c.SetFont("Times", "", 12)
	c.Text(margin+18, yPos, or(f.Tenants(), 60))
	yPos += 16
	c.Text(margin+18, yPos, or(f.PremisesLine1, 60))
	yPos += 16
	c.Text(margin+18, yPos, or(f.PremisesLine2, 60))
	yPos += 28

	c.SetFont("Helvetica", "B", 13)
	c.Text(margin, yPos, "SCHEDULED EVICTION DATE:")
	c.SetFont("Helvetica", "", 13)
	c.Text(margin+200, yPos, or(f.EvictionDate, 30))
	yPos += 28

	c.SetFont("Times", "", 11)
	body := "A judgment for possession of the premises listed above was entered against you for failure to pay rent. " +
		"The sheriff or constable has scheduled the eviction for the date shown above. " +
		"This notice is provided at least 14 days before the scheduled eviction date. " +
		"On the eviction date you and your belongings may be removed from the premises. " +
		"You may be able to stop the eviction by paying the full amount of the judgment, including court costs, before the eviction is carried out, unless the right of redemption has been foreclosed."
	yPos += drawWrapped(c, margin, yPos, body, content, 11)
	yPos += 10

	labeled(c, margin, yPos, "Amount required to redeem:", or(f.AmountOwed, 20), 11)
	yPos += 24

	c.SetFont("Times", "I", 10)
	help := "For information about legal assistance, contact the Maryland Courts Self-Help Center at 410-260-1392 or visit mdcourts.gov/selfhelp."
	yPos += drawWrapped(c, margin, yPos, help, content, 10)
	yPos += 36

	c.SetFont("Helvetica", "B", 12)
	c.Text(margin, yPos, "LANDLORD / AGENT")
	yPos += 18
	labeled(c, margin, yPos, "Name:", or(f.LandlordName, 40), 11)
	yPos += 18
	labeled(c, margin, yPos, "Company:", or(f.LandlordCompany, 40), 11)
	yPos += 18
	labeled(c, margin, yPos, "Phone:", or(f.LandlordPhone, 20), 11)
	labeled(c, margin+260, yPos, "Email:", or(f.LandlordEmail, 30), 11)
	yPos += 40

	c.SetLineWidth(0.75)
	c.Line(margin, yPos, margin+240, yPos)
	c.Line(width-margin-160, yPos, width-margin, yPos)
	yPos += 12
	c.SetFont("Helvetica", "", 9)
	c.Text(margin, yPos, "Signature of Landlord or Agent")
	c.Text(width-margin-160, yPos, "Date")

	c.SetFont("Helvetica", "", 8)
	c.Text(margin, letterLong-36, "Posted and mailed by first-class mail with certificate of mailing.")
}

func drawCertificateOfMailing(c Canvas, f Fields) {
	width := letterShort
	boxW := width - 2*margin
	yPos := 72.0

	c.SetFont("Helvetica", "B", 14)
	c.Text(margin, yPos, "UNITED STATES POSTAL SERVICE")
	yPos += 18
	c.SetFont("Helvetica", "B", 20)
	c.Text(margin, yPos, "Certificate of Mailing")
	c.SetFont("Helvetica", "", 9)
	c.Text(width-margin-c.StringWidth("PS Form 3817"), yPos, "PS Form 3817")
	yPos += 16

	c.SetFont("Times", "", 10)
	intro := "This certificate of mailing provides evidence that mail has been presented to USPS for mailing. This form may be used for domestic and international mail."
	yPos += drawWrapped(c, margin, yPos, intro, boxW, 10)
	yPos += 12

	c.SetLineWidth(1)
	c.Rect(margin, yPos, boxW, 110)
	c.SetFont("Helvetica", "B", 11)
	c.Text(margin+8, yPos+18, "From:")
	c.SetFont("Times", "", 12)
	from := []string{
		or(f.LandlordName, 50),
		or(f.LandlordCompany, 50),
		or(f.LandlordPhone, 50),
	}
	for i, line := range from {
		c.Text(margin+60, yPos+18+float64(i)*18, line)
	}
	yPos += 110 + 14

	c.Rect(margin, yPos, boxW, 110)
	c.SetFont("Helvetica", "B", 11)
	c.Text(margin+8, yPos+18, "To:")
	c.SetFont("Times", "", 12)
	to := []string{
		or(f.Tenants(), 50),
		or(f.PremisesLine1, 50),
		or(f.PremisesLine2, 50),
	}
	for i, line := range to {
		c.Text(margin+60, yPos+18+float64(i)*18, line)
	}
	yPos += 110 + 14

	stampW := 160.0
	c.Rect(width-margin-stampW, yPos, stampW, 120)
	c.SetFont("Helvetica", "", 9)
	stampCenter := width - margin - stampW/2
	c.Text(stampCenter-c.StringWidth("Postmark Here")/2, yPos+64, "Postmark Here")

	c.SetFont("Helvetica", "B", 10)
	c.Text(margin, yPos+18, "Postage:")
	c.SetLineWidth(0.5)
	c.Line(margin+60, yPos+20, margin+200, yPos+20)
	c.Text(margin, yPos+48, "Case No.:")
	c.SetFont("Helvetica", "", 10)
	c.Text(margin+60, yPos+48, or(f.CourtCaseNumber, 28))
	yPos += 120 + 24

	c.SetFont("Times", "I", 9)
	drawWrapped(c, margin, yPos, "Enclosure: Final Notice of Eviction Date. Retain this receipt as proof of mailing for the court file.", boxW, 9)

	c.SetFont("Helvetica", "", 8)
	c.Text(margin, letterLong-36, "PS Form 3817, April 2007 PSN 7530-02-000-9065")
}

const firmbookRows = 8

func drawFirmbook(c Canvas, f Fields) {
	width := letterLong
	yPos := 54.0

	c.SetFont("Helvetica", "B", 14)
	c.Text(margin, yPos, "Firm Mailing Book For Accountable Mail")
	c.SetFont("Helvetica", "", 9)
	c.Text(width-margin-c.StringWidth("PS Form 3665"), yPos, "PS Form 3665")
	yPos += 20

	c.SetFont("Helvetica", "B", 10)
	c.Text(margin, yPos, "Name and Address of Sender:")
	c.SetFont("Times", "", 11)
	c.Text(margin+150, yPos, or(f.LandlordName, 40))
	c.SetFont("Helvetica", "B", 10)
	c.Text(width/2+40, yPos, "Type of Mail:")
	c.SetFont("Helvetica", "", 10)
	c.Text(width/2+110, yPos, "Certificate of Mailing")
	yPos += 14
	c.SetFont("Times", "", 11)
	c.Text(margin+150, yPos, or(f.LandlordCompany, 40))
	yPos += 18

	cols := []struct {
		title string
		w     float64
	}{
		{"Line", 36},
		{"Article Number", 120},
		{"Addressee (Name, Street, City, State, ZIP)", 300},
		{"Postage", 70},
		{"Fee", 70},
		{"Remarks", width - 2*margin - 596},
	}

	rowH := 44.0
	headerH := 22.0
	tableH := headerH + rowH*firmbookRows
	c.SetLineWidth(1)
	c.Rect(margin, yPos, width-2*margin, tableH)

	x := margin
	c.SetFont("Helvetica", "B", 8)
	for i, col := range cols {
		c.Text(x+4, yPos+14, col.title)
		if i > 0 {
			c.Line(x, yPos, x, yPos+tableH)
		}
		x += col.w
	}
	c.SetLineWidth(0.5)
	for r := 0; r <= firmbookRows; r++ {
		ry := yPos + headerH + float64(r)*rowH
		if r < firmbookRows {
			c.Line(margin, ry, width-margin, ry)
		}
	}

	c.SetFont("Helvetica", "", 9)
	for r := 0; r < firmbookRows; r++ {
		ry := yPos + headerH + float64(r)*rowH
		c.Text(margin+12, ry+16, fmt.Sprintf("%d", r+1))
	}

	if !f.IsBlank() {
		ry := yPos + headerH
		addrX := margin + cols[0].w + cols[1].w + 4
		c.SetFont("Times", "", 10)
		c.Text(addrX, ry+14, f.Tenants())
		c.Text(addrX, ry+26, f.PremisesLine1)
		c.Text(addrX, ry+38, f.PremisesLine2)
		if f.CourtCaseNumber != "" {
			remX := margin + 596 + 4
			c.SetFont("Helvetica", "", 8)
			c.Text(remX, ry+16, f.CourtCaseNumber)
		}
	}
	yPos += tableH + 22

	c.SetFont("Helvetica", "B", 9)
	c.Text(margin, yPos, "Total Number of Pieces Listed by Sender")
	c.Text(margin+260, yPos, "Total Number of Pieces Received at Post Office")
	c.Text(margin+540, yPos, "Postmaster, Per (Name of receiving employee)")
	c.SetLineWidth(0.5)
	yPos += 22
	c.Line(margin, yPos, margin+200, yPos)
	c.Line(margin+260, yPos, margin+480, yPos)
	c.Line(margin+540, yPos, width-margin, yPos)

	c.SetFont("Helvetica", "", 8)
	c.Text(margin, letterShort-30, "PS Form 3665, January 2017 PSN 7530-17-000-5549")
}
