package mail

import (
	"bytes"
	"html/template"
)

// Message is a rendered email ready for SendMail.
type Message struct {
	To      string
	Subject string
	Body    string
}

var templates = template.Must(template.New("mail").Parse(`
{{define "recovery"}}<p>Hello,</p>
<p>We received a request to reset the password for your FTPR portal account.</p>
<p><a href="{{.Link}}">Choose a new password</a></p>
<p>The link expires in one hour and stops working once your password has been changed. If you did not ask for this, you can ignore this email.</p>{{end}}
{{define "case_submitted"}}<p>A landlord submitted a Failure to Pay Rent case.</p>
<ul>
<li>Case: {{.CaseID}}</li>
<li>Premises: {{.Address}}</li>
<li>County: {{.County}}</li>
<li>Landlord: {{.Landlord}}</li>
</ul>
<p><a href="{{.Link}}">Open the case</a></p>{{end}}
{{define "contractor_welcome"}}<p>Hello {{.Name}},</p>
<p>An administrator created a contractor account for you on the FTPR portal. Sign in with this email address to see posting jobs.</p>
<p><a href="{{.Link}}">Sign in</a></p>{{end}}
`))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func RecoveryEmail(to, link string) (Message, error) {
	body, err := render("recovery", map[string]string{"Link": link})
	return Message{To: to, Subject: "Reset your FTPR portal password", Body: body}, err
}

type CaseSubmitted struct {
	CaseID   string
	Address  string
	County   string
	Landlord string
	Link     string
}

func CaseSubmittedEmail(to string, data CaseSubmitted) (Message, error) {
	body, err := render("case_submitted", data)
	return Message{To: to, Subject: "New FTPR case submitted: " + data.Address, Body: body}, err
}

func ContractorWelcomeEmail(to, name, link string) (Message, error) {
	body, err := render("contractor_welcome", map[string]string{"Name": name, "Link": link})
	return Message{To: to, Subject: "Your FTPR contractor account", Body: body}, err
}
