package email

import "fmt"

// Card-style notice sent when a shift is closed automatically. Plain solid
// colors, no images, renders the same across mail clients.
const missingCheckoutTemplate = `<!DOCTYPE html>
<html>
<body style="margin:0; padding:0; font-family:'Segoe UI', Arial, sans-serif; background-color:#f8fafc;">
    <div style="max-width:500px; margin:40px auto; background:#ffffff; border:1px solid #e2e8f0; border-radius:8px; overflow:hidden;">
        <div style="background-color:#1e293b; padding:16px 24px;">
            <span style="color:#94a3b8; font-size:12px; text-transform:uppercase; letter-spacing:1px;">Notification &middot; Missing checkout</span>
        </div>
        <div style="padding:32px 24px;">
            <h2 style="margin:0 0 12px 0; color:#0f172a; font-size:18px;">No checkout recorded</h2>
            <p style="color:#64748b; font-size:14px; line-height:1.6; margin-bottom:24px;">
                Hello <strong>%s</strong>, your shift ended without a checkout record in the system.
            </p>
            <div style="background-color:#f1f5f9; border-radius:6px; padding:16px;">
                <table style="width:100%%; border-collapse:collapse;">
                    <tr>
                        <td style="color:#64748b; font-size:12px; padding:4px 0;">Date</td>
                        <td style="color:#0f172a; font-size:13px; font-weight:600; text-align:right;">%s</td>
                    </tr>
                    <tr>
                        <td style="color:#64748b; font-size:12px; padding:4px 0;">Check-in time</td>
                        <td style="color:#0f172a; font-size:13px; font-weight:600; text-align:right;">%s</td>
                    </tr>
                    <tr>
                        <td style="color:#64748b; font-size:12px; padding:4px 0;">Checkout time</td>
                        <td style="color:#d62839; font-size:13px; font-weight:600; text-align:right;">Not recorded</td>
                    </tr>
                </table>
            </div>
            <p style="margin-top:24px; font-size:13px; color:#64748b; text-align:center;">
                If this was a mistake, contact <strong>Human Resources</strong> quoting reference #%s.
            </p>
        </div>
        <div style="background-color:#f8fafc; padding:12px; text-align:center; border-top:1px solid #e2e8f0;">
            <p style="margin:0; color:#cbd5e1; font-size:11px;">Integra <strong>| Time Clock</strong></p>
        </div>
    </div>
</body>
</html>`

func missingCheckoutHTML(name string, date string, checkIn string, ref string) string {
	return fmt.Sprintf(missingCheckoutTemplate, name, date, checkIn, ref)
}
