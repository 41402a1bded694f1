// Package whatsapp builds wa.me order links from catalog data. Everything
// here is pure string formatting; no state.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Guilherme-Krepke-Rpv-Senai/catalogo-online/internal/domain"
)

// DefaultNumber is the shop's WhatsApp contact.
const DefaultNumber = "5532999516238"

// OrderItem is one resolvable cart line for the order message.
type OrderItem struct {
	Name      string
	Qty       int
	UnitPrice float64
}

type Builder struct {
	number string
}

func NewBuilder(number string) Builder {
	if number == "" {
		number = DefaultNumber
	}
	return Builder{number: number}
}

// ProductLink renders the product's message template, substituting {label},
// and wraps it in a wa.me URL. An empty template falls back to the default.
func (b Builder) ProductLink(template, label string) string {
	if template == "" {
		template = domain.DefaultWhatsAppTemplate
	}
	text := strings.ReplaceAll(template, "{label}", label)
	return b.link(text)
}

// LabelsLink builds an interest message from product labels.
func (b Builder) LabelsLink(labels []string) string {
	var text string
	switch len(labels) {
	case 0:
		text = "Olá, tenho interesse em alguns produtos do catálogo."
	case 1:
		text = fmt.Sprintf("Olá! Gostei do item %s. Quero um desse.", labels[0])
	default:
		text = fmt.Sprintf("Olá! Gostei dos itens: %s. Vou querer todos.", strings.Join(labels, ", "))
	}
	return b.link(text)
}

// OrderLink builds the full cart order message with per-item totals and the
// grand total in BRL.
func (b Builder) OrderLink(items []OrderItem) string {
	lines := make([]string, 0, len(items))
	var total float64
	for _, it := range items {
		lineTotal := it.UnitPrice * float64(it.Qty)
		total += lineTotal
		lines = append(lines, fmt.Sprintf("%s (%dx - %s)", it.Name, it.Qty, FormatBRL(lineTotal)))
	}
	text := fmt.Sprintf(
		"Olá! Gostaria de fazer um pedido com os seguintes itens:\n\n%s\n\n*Total: %s*\n\nPor favor, me informe sobre a disponibilidade e formas de pagamento.",
		strings.Join(lines, "\n"), FormatBRL(total),
	)
	return b.link(text)
}

func (b Builder) link(text string) string {
	return "https://wa.me/" + cleanNumber(b.number) + "?text=" + url.QueryEscape(text)
}

// cleanNumber strips everything but digits.
func cleanNumber(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// FormatBRL renders a value the Brazilian way: R$ 1.234,56.
func FormatBRL(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	intPart, decPart, _ := strings.Cut(s, ".")

	negative := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var sb strings.Builder
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(d)
	}
	out := "R$ " + sb.String() + "," + decPart
	if negative {
		out = "-" + out
	}
	return out
}
