package mail

import (
	"bytes"
	"html/template"
)

var inactiveTmpl = template.Must(template.New("inactive").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 600px; margin: 0 auto; padding: 20px; background: #f4f4f4; }
  .content { background: white; padding: 30px; border-radius: 8px; }
  .header { color: #7c3aed; font-size: 24px; margin-bottom: 20px; }
  .warning { background: #fef3c7; padding: 15px; border-left: 4px solid #f59e0b; margin: 20px 0; }
  .footer { text-align: center; color: #999; margin-top: 20px; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
  <div class="content">
    <div class="header">Your account is inactive</div>
    <p>Hi <strong>{{.Username}}</strong>,</p>
    <p>We noticed you haven't logged in for <strong>{{.DaysInactive}} days</strong> (since {{.LastLogin}}).</p>
    <div class="warning">
      <strong>Your account is using storage space.</strong><br>
      If you're no longer using the platform, please consider deleting your account to free up resources.
    </div>
    <p>Log in to continue watching, or delete your account to free storage.
    If you don't take action within 30 days, your account may be automatically deleted.</p>
  </div>
  <div class="footer">This is an automated notification</div>
</div>
</body>
</html>`))

type inactiveEmailData struct {
	Username     string
	DaysInactive int
	LastLogin    string
}

// InactiveWarningHTML renders the HTML body of the inactivity warning email.
func InactiveWarningHTML(username string, daysInactive int, lastLogin string) string {
	var buf bytes.Buffer
	if err := inactiveTmpl.Execute(&buf, inactiveEmailData{
		Username:     username,
		DaysInactive: daysInactive,
		LastLogin:    lastLogin,
	}); err != nil {
		return ""
	}
	return buf.String()
}
