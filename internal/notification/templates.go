package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

type receiptData struct {
	DonorName     string
	CampaignTitle string
	Amount        string
	Reference     string
	CampaignURL   string
}

type organizerData struct {
	OrganizerName string
	DonorName     string
	CampaignTitle string
	Amount        string
	CampaignURL   string
}

var receiptHTML = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8" /><title>Gracias por tu donación</title></head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f6f8f4;">
	<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
		<tr>
			<td align="center" style="padding: 30px 0; background-color: #2c6e49; color: #ffffff;">
				<h1 style="margin: 0; font-size: 26px;">¡Gracias, {{.DonorName}}!</h1>
			</td>
		</tr>
		<tr>
			<td style="padding: 30px; color: #333333; font-size: 16px; line-height: 1.6;">
				<p>Tu donación de <strong>{{.Amount}}</strong> a la campaña <strong>{{.CampaignTitle}}</strong> fue confirmada.</p>
				<p>Código de referencia: <strong>{{.Reference}}</strong></p>
				{{if .CampaignURL}}<p><a href="{{.CampaignURL}}" style="color: #2c6e49;">Ver la campaña</a></p>{{end}}
			</td>
		</tr>
		<tr>
			<td align="center" style="padding: 20px; color: #666666; font-size: 12px;">Este correo es solo de envío. No respondas a este mensaje.</td>
		</tr>
	</table>
</body>
</html>`))

var organizerHTML = template.Must(template.New("organizer").Parse(`<!DOCTYPE html>
<html lang="es">
<head><meta charset="UTF-8" /><title>Nueva donación</title></head>
<body style="margin: 0; padding: 0; font-family: Arial, sans-serif; background-color: #f6f8f4;">
	<table align="center" border="0" cellpadding="0" cellspacing="0" width="600" style="border-collapse: collapse; background-color: #ffffff;">
		<tr>
			<td style="padding: 30px; color: #333333; font-size: 16px; line-height: 1.6;">
				<p>Hola {{.OrganizerName}},</p>
				<p>{{.DonorName}} donó <strong>{{.Amount}}</strong> a tu campaña <strong>{{.CampaignTitle}}</strong>.</p>
				{{if .CampaignURL}}<p><a href="{{.CampaignURL}}" style="color: #2c6e49;">Ver la campaña</a></p>{{end}}
			</td>
		</tr>
	</table>
</body>
</html>`))

func renderHTML(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func receiptText(d receiptData) string {
	return fmt.Sprintf(`¡Gracias, %s!

Tu donación de %s a la campaña "%s" fue confirmada.
Código de referencia: %s

%s`, d.DonorName, d.Amount, d.CampaignTitle, d.Reference, d.CampaignURL)
}

func organizerText(d organizerData) string {
	return fmt.Sprintf(`Hola %s,

%s donó %s a tu campaña "%s".

%s`, d.OrganizerName, d.DonorName, d.Amount, d.CampaignTitle, d.CampaignURL)
}
