package email

import (
	"fmt"
	"html"

	"github.com/bbrahmbhatt94/html-web-genesis/internal/ports"
)

// deliveryEmailHTML renders the purchase delivery message. Kept as plain
// string building; the layout is a single column with one call to action.
func deliveryEmailHTML(msg ports.DeliveryEmail) string {
	productName := html.EscapeString(msg.ProductName)
	orderNumber := html.EscapeString(msg.OrderNumber)

	body := fmt.Sprintf(`<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;color:#1a1a1a;">
  <h1 style="color:#B8860B;">Thank you for your purchase!</h1>
  <p>Your copy of <strong>%s</strong> is ready.</p>`, productName)

	if orderNumber != "" {
		body += fmt.Sprintf(`
  <p style="color:#666;font-size:13px;">Order reference: %s</p>`, orderNumber)
	}

	if msg.DownloadURL != "" {
		body += fmt.Sprintf(`
  <p style="margin:32px 0;">
    <a href="%s" style="background:#B8860B;color:#fff;padding:14px 28px;border-radius:6px;text-decoration:none;font-weight:bold;">
      Download Now
    </a>
  </p>
  <p style="color:#666;font-size:13px;">
    Your download link expires in %d days and allows up to %d download attempts.
  </p>`, msg.DownloadURL, msg.ExpiresDays, msg.MaxAttempts)
	}

	body += `
  <p style="color:#999;font-size:12px;margin-top:40px;">
    If you did not make this purchase, please ignore this email.
  </p>
</div>`
	return body
}
