package views

import (
	"fmt"
	"strings"

	"github.com/matheus3301/wppstatus/internal/tui/ui"
	"github.com/rivo/tview"
	qrcode "github.com/skip2/go-qrcode"
)

// AuthView shows the pairing QR code while the session is logged out.
type AuthView struct {
	*tview.TextView
}

// NewAuthView creates an auth view.
func NewAuthView(theme *ui.Theme) *AuthView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	tv.SetBorder(true).
		SetTitle(" Link a device ").
		SetTitleColor(theme.TitleColor).
		SetBorderColor(theme.BorderColor).
		SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)

	return &AuthView{TextView: tv}
}

// ShowQR renders the pairing code.
func (av *AuthView) ShowQR(code string) {
	qr, err := renderQR(code)
	if err != nil {
		av.ShowMessage("could not render QR code: " + err.Error())
		return
	}
	av.SetText(fmt.Sprintf("\nOpen WhatsApp > Linked devices and scan:\n\n%s\n[::d]waiting for the phone...", qr))
}

// ShowMessage replaces the view content with msg.
func (av *AuthView) ShowMessage(msg string) {
	av.SetText("\n\n" + tview.Escape(msg))
}

// renderQR draws the code with half blocks so two modules fit in one cell.
func renderQR(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Low)
	if err != nil {
		return "", err
	}
	bitmap := qr.Bitmap()

	var sb strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bottom := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String(), nil
}
