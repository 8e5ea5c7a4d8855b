package mailer

import "fmt"

const footer = `<div style="font-size:12px;color:#666;margin-top:30px">If you have any questions, feel free to contact our support team.</div>`

func wrap(header, body string) string {
	return fmt.Sprintf(`<!doctype html>
<html lang="en">
  <body style="font-family:Arial,sans-serif;background-color:#f4f4f4;margin:0;padding:0">
    <div style="background-color:#fff;padding:40px;border-radius:10px;max-width:600px;margin:40px auto;text-align:center">
      <div style="font-size:28px;font-weight:bold;color:#333;margin-bottom:30px">Career Go</div>
      <div style="font-size:24px;margin-bottom:20px">%s</div>
      <div style="font-size:16px;line-height:1.6;margin-bottom:30px">%s</div>
      %s
    </div>
  </body>
</html>`, header, body, footer)
}

func button(href, label string) string {
	return fmt.Sprintf(`<a href="%s" style="display:inline-block;padding:12px 24px;font-size:16px;color:#fff;background-color:#007bff;text-decoration:none;border-radius:5px">%s</a>`, href, label)
}

func EmailVerificationTemplate(confirmationURL string) string {
	return wrap("Confirm Your Account",
		`<p>Thanks for signing up. Click the button below to confirm your account:</p>`+
			button(confirmationURL, "Confirm Account"))
}

func VerificationSuccessTemplate() string {
	return wrap("Account Verified",
		`<p>Your account has been verified successfully. Welcome to Career Go!</p>`)
}

func ForgotPasswordTemplate(resetLink string) string {
	return wrap("Password Reset Request",
		`<p>We received a request to reset your password.</p>
<p>If you requested this password reset, click the button below:</p>`+
			button(resetLink, "Reset Password")+
			`<p>This link will expire in 15 minutes. If you did not request a password reset, you can ignore this email.</p>`)
}

func PasswordResetSuccessTemplate() string {
	return wrap("Password Updated",
		`<p>Your password has been changed successfully. If this was not you, reset your password immediately.</p>`)
}

func InstitutionRegistrationTemplate(adminName, institutionName, registrationNumber string) string {
	return wrap("Institution Registered",
		fmt.Sprintf(`<p>Hello %s,</p>
<p>Your institution <strong>%s</strong> (registration number %s) has been registered successfully on Career Go.</p>
<p>Confirm the admin account to start managing courses and counselling sessions.</p>`,
			adminName, institutionName, registrationNumber))
}

func MeetingRequestTemplate(organizer, date, timeOfDay string) string {
	return wrap("New Counselling Meeting Request",
		fmt.Sprintf(`<p><strong>%s</strong> has requested a counselling meeting.</p>
<p>Date: <strong>%s</strong></p>
<p>Time: <strong>%s</strong></p>
<p>Please approve or reject the request from your dashboard.</p>`,
			organizer, date, timeOfDay))
}

func MeetingApprovalTemplate(date, timeOfDay, meetingURL string) string {
	return wrap("Counselling Meeting Approved",
		fmt.Sprintf(`<p>Your counselling meeting has been approved.</p>
<p>Date: <strong>%s</strong></p>
<p>Time: <strong>%s</strong></p>`, date, timeOfDay)+
			button(meetingURL, "Join Meeting"))
}

func MeetingRejectionTemplate(date, timeOfDay, reason string) string {
	body := fmt.Sprintf(`<p>Your counselling meeting request for <strong>%s</strong> at <strong>%s</strong> has been rejected.</p>`, date, timeOfDay)
	if reason != "" {
		body += fmt.Sprintf(`<p>Reason: %s</p>`, reason)
	}
	return wrap("Counselling Meeting Rejected", body)
}
