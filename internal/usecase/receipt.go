package usecase

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"cafepos/internal/domain/model"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 58mmロール紙の1行
const receiptWidth = 32

type ShopInfo struct {
	Name    string
	Address string
	Phone   string
}

// ReceiptFormatter は保存済みの取引をテキストのレシートにする。
type ReceiptFormatter struct {
	shop    ShopInfo
	loc     *time.Location
	printer *message.Printer
}

func NewReceiptFormatter(shop ShopInfo, loc *time.Location) *ReceiptFormatter {
	return &ReceiptFormatter{
		shop:    shop,
		loc:     loc,
		printer: message.NewPrinter(language.Indonesian),
	}
}

// Money は "Rp 60.500"、端数があれば "Rp 18.500,50"
func (f *ReceiptFormatter) Money(d decimal.Decimal) string {
	d = d.Round(2)
	whole := d.Truncate(0)
	cents := d.Sub(whole).Abs().Shift(2).IntPart()

	s := "Rp " + f.printer.Sprintf("%d", whole.IntPart())
	if cents != 0 {
		s += fmt.Sprintf(",%02d", cents)
	}
	return s
}

func (f *ReceiptFormatter) Format(t model.Transaction) string {
	var b strings.Builder
	divider := strings.Repeat("-", receiptWidth)

	center(&b, f.shop.Name)
	center(&b, f.shop.Address)
	if f.shop.Phone != "" {
		center(&b, "Telp: "+f.shop.Phone)
	}
	b.WriteString(divider + "\n")

	row(&b, "Tanggal:", t.CreatedAt.In(f.loc).Format("02/01/2006 15:04"))
	cashier := t.CashierID
	if t.Cashier != nil {
		cashier = t.Cashier.Name()
	}
	row(&b, "Kasir:", cashier)
	row(&b, "No. Transaksi:", t.TransactionNumber)
	row(&b, "Jenis:", orderTypeLabel(t.OrderType))
	if t.TableNumber != nil {
		row(&b, "Meja:", fmt.Sprintf("%d", *t.TableNumber))
	}
	b.WriteString(divider + "\n")

	for _, it := range t.Items {
		row(&b, fmt.Sprintf("%s x%d", it.MenuItemName, it.Quantity), f.Money(it.TotalPrice))
	}
	b.WriteString(divider + "\n")

	row(&b, "Subtotal:", f.Money(t.Subtotal))
	row(&b, "Pajak (10%):", f.Money(t.Tax))
	row(&b, "Total:", f.Money(t.Total))
	row(&b, "Bayar:", f.Money(t.PaidAmount))
	row(&b, "Kembalian:", f.Money(t.ChangeAmount))
	b.WriteString(divider + "\n")

	center(&b, "Terima kasih atas")
	center(&b, "kunjungan Anda!")
	center(&b, "Selamat menikmati!")

	return b.String()
}

func orderTypeLabel(t model.OrderType) string {
	if t == model.OrderTypeDineIn {
		return "Dine In"
	}
	return "Takeaway"
}

func center(b *strings.Builder, s string) {
	n := utf8.RuneCountInString(s)
	if n < receiptWidth {
		b.WriteString(strings.Repeat(" ", (receiptWidth-n)/2))
	}
	b.WriteString(s + "\n")
}

// 左に項目、右寄せで値。入りきらなければ値を次の行へ。
func row(b *strings.Builder, left, right string) {
	l := utf8.RuneCountInString(left)
	r := utf8.RuneCountInString(right)

	if l+1+r > receiptWidth {
		b.WriteString(left + "\n")
		if r < receiptWidth {
			b.WriteString(strings.Repeat(" ", receiptWidth-r))
		}
		b.WriteString(right + "\n")
		return
	}
	b.WriteString(left + strings.Repeat(" ", receiptWidth-l-r) + right + "\n")
}
