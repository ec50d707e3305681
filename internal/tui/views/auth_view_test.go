package views

import (
	"strings"
	"testing"

	"github.com/matheus3301/wppstatus/internal/tui/ui"
	qrcode "github.com/skip2/go-qrcode"
)

func TestRenderQRHalvesRows(t *testing.T) {
	const code = "2@abc,def,ghi"
	out, err := renderQR(code)
	if err != nil {
		t.Fatal(err)
	}
	qr, err := qrcode.New(code, qrcode.Low)
	if err != nil {
		t.Fatal(err)
	}
	size := len(qr.Bitmap())

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if want := (size + 1) / 2; len(lines) != want {
		t.Errorf("lines = %d, want %d", len(lines), want)
	}
	for i, l := range lines {
		if n := len([]rune(l)); n != size {
			t.Fatalf("line %d has %d cells, want %d", i, n, size)
		}
	}
}

func TestAuthViewShowQR(t *testing.T) {
	av := NewAuthView(ui.DefaultTheme())
	av.ShowQR("2@abc")
	if text := av.GetText(true); !strings.Contains(text, "scan") {
		t.Errorf("text = %q, want scan instructions", text)
	}
	av.ShowMessage("paired successfully")
	if text := av.GetText(true); !strings.Contains(text, "paired successfully") {
		t.Errorf("text = %q", text)
	}
}
