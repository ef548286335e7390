// Package receipt формирует чек по завершённой продаже. Только чтение: продажа,
// клиент и реквизиты магазина не изменяются.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmeshcher/gestor/internal/id"
	"github.com/mmeshcher/gestor/internal/model"
)

// AnonymousCustomer выводится, если продажа не отнесена к клиенту.
const AnonymousCustomer = "Consumidor"

const dateLayout = "02/01/2006"

// groupSeparator разделяет разряды в суммах: неразрывный пробел, как в pt-AO.
const groupSeparator = '\u00a0'

// Line описывает строку чека.
type Line struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Subtotal string `json:"subtotal"`
}

// Receipt содержит представление чека для вывода.
type Receipt struct {
	ShopName      string `json:"shopName"`
	ShopPhone     string `json:"shopPhone,omitempty"`
	ShopAddress   string `json:"shopAddress,omitempty"`
	ShopNIF       string `json:"shopNif,omitempty"`
	Number        string `json:"number"`
	Date          string `json:"date"`
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone,omitempty"`
	Lines         []Line `json:"lines"`
	Total         string `json:"total"`
	PaymentMethod string `json:"paymentMethod"`
	Refunded      bool   `json:"refunded"`
	RefundReason  string `json:"refundReason,omitempty"`
	ShareText     string `json:"shareText"`
}

// Render строит чек. customer может быть nil.
func Render(sale model.Sale, customer *model.Customer, cfg model.ShopConfig) Receipt {
	currency := cfg.Currency
	if currency == "" {
		currency = model.DefaultCurrency
	}

	r := Receipt{
		ShopName:      cfg.Name,
		ShopPhone:     cfg.Phone,
		ShopAddress:   cfg.Address,
		ShopNIF:       cfg.NIF,
		Number:        id.Short(sale.ID),
		Date:          sale.Date.In(time.UTC).Format(dateLayout),
		CustomerName:  AnonymousCustomer,
		Total:         FormatMoney(sale.Total, currency),
		PaymentMethod: string(sale.PaymentMethod),
		Refunded:      sale.Refunded(),
		RefundReason:  sale.RefundReason,
		Lines:         make([]Line, 0, len(sale.Items)),
	}

	if customer != nil {
		r.CustomerName = customer.Name
		r.CustomerPhone = customer.Phone
	}

	for _, item := range sale.Items {
		r.Lines = append(r.Lines, Line{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    FormatMoney(item.Price, currency),
			Subtotal: FormatMoney(item.Subtotal(), currency),
		})
	}

	r.ShareText = shareText(r)
	return r
}

func shareText(r Receipt) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s - Comprovativo*\n\n", r.ShopName)
	fmt.Fprintf(&b, "Venda: #%s\n", r.Number)
	fmt.Fprintf(&b, "Data: %s\n", r.Date)
	fmt.Fprintf(&b, "Cliente: %s\n", r.CustomerName)
	fmt.Fprintf(&b, "Total: *%s*\n", r.Total)
	fmt.Fprintf(&b, "Pagamento: %s\n", r.PaymentMethod)
	if r.Refunded {
		fmt.Fprintf(&b, "Estornado: %s\n", r.RefundReason)
	}
	b.WriteString("\nObrigado pela preferência! Volte sempre.")
	return b.String()
}

// FormatMoney форматирует сумму в стиле pt-AO: «1 500,00 Kz» с неразрывным пробелом между разрядами.
func FormatMoney(v float64, currency string) string {
	fixed := decimal.NewFromFloat(v).Round(2).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, ch := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteRune(groupSeparator)
		}
		grouped.WriteRune(ch)
	}

	return fmt.Sprintf("%s%s,%s %s", sign, grouped.String(), frac, currency)
}
