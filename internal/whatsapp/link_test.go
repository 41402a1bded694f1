package whatsapp

import (
	"net/url"
	"strings"
	"testing"
)

func TestProductLink_SubstitutesLabel(t *testing.T) {
	b := NewBuilder("+55 (32) 99951-6238")
	link := b.ProductLink("Olá! Gostei do item {label}. Quero um desse.", "0002")

	if !strings.HasPrefix(link, "https://wa.me/5532999516238?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	text := u.Query().Get("text")
	if text != "Olá! Gostei do item 0002. Quero um desse." {
		t.Fatalf("unexpected message %q", text)
	}
}

func TestProductLink_EmptyTemplateUsesDefault(t *testing.T) {
	link := NewBuilder("").ProductLink("", "0001")
	u, _ := url.Parse(link)
	if got := u.Query().Get("text"); !strings.Contains(got, "0001") {
		t.Fatalf("default template missing label: %q", got)
	}
}

func TestLabelsLink_Variants(t *testing.T) {
	b := NewBuilder("")

	u, _ := url.Parse(b.LabelsLink(nil))
	if got := u.Query().Get("text"); got != "Olá, tenho interesse em alguns produtos do catálogo." {
		t.Fatalf("empty labels message %q", got)
	}

	u, _ = url.Parse(b.LabelsLink([]string{"0001"}))
	if got := u.Query().Get("text"); got != "Olá! Gostei do item 0001. Quero um desse." {
		t.Fatalf("single label message %q", got)
	}

	u, _ = url.Parse(b.LabelsLink([]string{"0001", "0002"}))
	if got := u.Query().Get("text"); !strings.Contains(got, "0001, 0002") {
		t.Fatalf("multi label message %q", got)
	}
}

func TestOrderLink_ItemsAndTotal(t *testing.T) {
	b := NewBuilder("")
	link := b.OrderLink([]OrderItem{
		{Name: "Cabeceira 1", Qty: 2, UnitPrice: 399},
		{Name: "Cabeceira 2", Qty: 1, UnitPrice: 449},
	})
	u, _ := url.Parse(link)
	text := u.Query().Get("text")

	if !strings.Contains(text, "Cabeceira 1 (2x - R$ 798,00)") {
		t.Fatalf("missing line item: %q", text)
	}
	if !strings.Contains(text, "*Total: R$ 1.247,00*") {
		t.Fatalf("missing total: %q", text)
	}
}

func TestFormatBRL(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "R$ 0,00"},
		{399, "R$ 399,00"},
		{1247, "R$ 1.247,00"},
		{1234567.5, "R$ 1.234.567,50"},
	}
	for _, c := range cases {
		if got := FormatBRL(c.in); got != c.want {
			t.Errorf("FormatBRL(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
