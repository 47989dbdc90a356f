package mailer

import (
	"fmt"
	"html/template"
	"strings"
)

// SealedParams fills the "capsule sealed" confirmation email.
type SealedParams struct {
	UserName     string
	CapsuleTitle string
	UnlockDate   string // long display form
	CapsuleURL   string
	IsPublic     bool
}

// ReminderParams fills the unlock-countdown reminder email.
type ReminderParams struct {
	UserName     string
	CapsuleTitle string
	UnlockDate   string // long display form
	CapsuleURL   string
	DaysLeft     int
}

var sealedTmpl = template.Must(template.New("sealed").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#0a0a0a;font-family:-apple-system,'Segoe UI',Roboto,sans-serif;">
  <div style="max-width:600px;margin:0 auto;padding:40px 20px;">
    <div style="background:#111;border-radius:24px;padding:40px;border:1px solid #333;">
      <h1 style="color:#fff;font-size:28px;text-align:center;margin:0 0 8px 0;">TRANSMISSION SEALED</h1>
      <p style="color:#facc15;font-size:12px;text-align:center;margin:0 0 32px 0;letter-spacing:4px;text-transform:uppercase;">TimeCapsule Created Successfully</p>
      <p style="color:#fff;font-size:16px;">Hey {{.Greeting}},</p>
      <p style="color:#a3a3a3;font-size:16px;line-height:1.6;">Your time capsule has been sealed and is now locked in the temporal vault.</p>
      <div style="background:rgba(250,204,21,.1);border:2px solid rgba(250,204,21,.3);border-radius:16px;padding:24px;margin:0 0 24px 0;">
        <h2 style="color:#facc15;font-size:24px;margin:0 0 16px 0;">&quot;{{.CapsuleTitle}}&quot;</h2>
        <p style="color:#666;font-size:10px;text-transform:uppercase;letter-spacing:2px;margin:0 0 4px 0;">Unlocks On</p>
        <p style="color:#fff;font-size:14px;font-weight:700;margin:0 0 12px 0;">{{.UnlockDate}}</p>
        <p style="color:#666;font-size:10px;text-transform:uppercase;letter-spacing:2px;margin:0 0 4px 0;">Visibility</p>
        <p style="color:{{if .IsPublic}}#22c55e{{else}}#facc15{{end}};font-size:14px;font-weight:700;margin:0;">{{if .IsPublic}}Public{{else}}Private{{end}}</p>
      </div>
      <div style="text-align:center;margin:32px 0;">
        <a href="{{.CapsuleURL}}" style="display:inline-block;background:#facc15;color:#000;font-size:14px;font-weight:900;text-decoration:none;padding:16px 32px;border-radius:40px;text-transform:uppercase;letter-spacing:2px;">View Your Capsule</a>
      </div>
      <p style="color:#666;font-size:12px;text-align:center;margin:32px 0 0 0;">We'll remind you when it's time to unlock your memories.</p>
    </div>
    <p style="color:#444;font-size:11px;text-align:center;margin:24px 0 0 0;">TimeCapsule &mdash; Lock moments. Unlock memories.</p>
  </div>
</body>
</html>`))

var reminderTmpl = template.Must(template.New("reminder").Parse(`<!DOCTYPE html>
<html>
<body style="margin:0;padding:0;background-color:#0a0a0a;font-family:-apple-system,'Segoe UI',Roboto,sans-serif;">
  <div style="max-width:600px;margin:0 auto;padding:40px 20px;">
    <div style="background:#111;border-radius:24px;padding:40px;border:1px solid #333;">
      <h1 style="color:#facc15;font-size:48px;text-align:center;margin:0 0 8px 0;">{{.DaysLeft}}</h1>
      <p style="color:#fff;font-size:14px;text-align:center;margin:0 0 32px 0;letter-spacing:2px;text-transform:uppercase;">{{.DayWord}} until unlock</p>
      <p style="color:#fff;font-size:16px;">Hey {{.Greeting}},</p>
      <p style="color:#a3a3a3;font-size:16px;line-height:1.6;">Your time capsule is almost ready to reveal! Your past self has a message waiting for you.</p>
      <div style="background:rgba(250,204,21,.1);border:2px solid rgba(250,204,21,.3);border-radius:16px;padding:24px;margin:0 0 24px 0;">
        <h2 style="color:#facc15;font-size:24px;margin:0 0 16px 0;">&quot;{{.CapsuleTitle}}&quot;</h2>
        <p style="color:#666;font-size:10px;text-transform:uppercase;letter-spacing:2px;margin:0 0 4px 0;">Unlocks On</p>
        <p style="color:#fff;font-size:16px;font-weight:700;margin:0;">{{.UnlockDate}}</p>
      </div>
      <div style="text-align:center;margin:32px 0;">
        <a href="{{.CapsuleURL}}" style="display:inline-block;background:#facc15;color:#000;font-size:14px;font-weight:900;text-decoration:none;padding:16px 32px;border-radius:40px;text-transform:uppercase;letter-spacing:2px;">View Capsule</a>
      </div>
    </div>
    <p style="color:#444;font-size:11px;text-align:center;margin:24px 0 0 0;">TimeCapsule &mdash; Lock moments. Unlock memories.</p>
  </div>
</body>
</html>`))

// SealedEmail renders the post-creation confirmation email.
func SealedEmail(p SealedParams) (subject, html string, err error) {
	subject = fmt.Sprintf("🔒 Your TimeCapsule %q has been sealed!", p.CapsuleTitle)
	var buf strings.Builder
	err = sealedTmpl.Execute(&buf, struct {
		SealedParams
		Greeting string
	}{p, greeting(p.UserName)})
	return subject, buf.String(), err
}

// ReminderEmail renders the days-left reminder email.
func ReminderEmail(p ReminderParams) (subject, html string, err error) {
	subject = fmt.Sprintf("⏰ %d %s until %q unlocks!", p.DaysLeft, dayWord(p.DaysLeft), p.CapsuleTitle)
	var buf strings.Builder
	err = reminderTmpl.Execute(&buf, struct {
		ReminderParams
		Greeting string
		DayWord  string
	}{p, greeting(p.UserName), dayWord(p.DaysLeft)})
	return subject, buf.String(), err
}

func greeting(name string) string {
	if name == "" {
		return "Time Traveler"
	}
	return name
}

func dayWord(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
