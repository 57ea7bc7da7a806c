package subscription

import (
	"fmt"
	"html"
)

// buildConfirmationEmail renders the subject, HTML body, and plain-text body
// for the opt-in message. Each body contains the confirmation link exactly
// once. The display name is HTML-escaped in the HTML body.
func buildConfirmationEmail(name, link string) (subject, htmlBody, textBody string) {
	subject = "Confirm your subscription"

	htmlBody = fmt.Sprintf(`<html>
<body>
<p>Hi %s,</p>
<p>Welcome to our newsletter! Please click the link below to confirm your subscription:</p>
<p><a href="%s">Confirm subscription</a></p>
<p>If you did not sign up, you can ignore this email.</p>
</body>
</html>`, html.EscapeString(name), link)

	textBody = fmt.Sprintf(`Hi %s,

Welcome to our newsletter! Visit the link below to confirm your subscription:

%s

If you did not sign up, you can ignore this email.
`, name, link)

	return subject, htmlBody, textBody
}
