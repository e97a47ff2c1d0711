package request

import (
	"fmt"
	"sort"
)

// KeyValue - одна строка блока информации над таблицей
type KeyValue struct {
	Label string
	Value string
}

// TableDocument - табличное представление для выгрузки в Excel.
// Содержит только строки и порядок, оформление остаётся за писателем.
// Пустые Title, Header и Totals просто пропускаются, поэтому документ
// годится и для простых списочных отчётов.
type TableDocument struct {
	Title      string
	Sheet      string
	InfoLabel  string
	Header     []KeyValue
	TableLabel string
	Columns    []string
	Rows       [][]string
	Totals     []string
}

// Тип организации по умолчанию, если у магазина он не указан
const defaultBusinessType = "ИП"

// Денежные значения округляются до целого, проценты до одного знака -
// только на границе представления, внутри расчёты идут в float64
func formatMoney(v float64) string {
	return fmt.Sprintf("%.0f ₸", v)
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func formatQuantity(q int) string {
	return fmt.Sprintf("%d шт.", q)
}

// BuildReport собирает документ выгрузки: блок информации о заявке,
// таблицу позиций по алфавиту и итоговую строку "ИТОГО".
func BuildReport(info *Info, items []ItemRow, summary Summary) *TableDocument {
	businessType := info.BusinessType
	if businessType == "" {
		businessType = defaultBusinessType
	}

	doc := &TableDocument{
		Title:     fmt.Sprintf("ЗАЯВКА #%d", info.ID),
		Sheet:     fmt.Sprintf("Заявка_%d", info.ID),
		InfoLabel: "Информация о заявке",
		Header: []KeyValue{
			{Label: "Магазин:", Value: info.ShopName},
			{Label: "Тип организации:", Value: businessType},
			{Label: "Дата отправки:", Value: info.CreatedAt.Format("2006-01-02 15:04:05")},
		},
		TableLabel: "Товары в заявке",
		Columns:    []string{"Товар", "Количество", "Цена за ед.", "Сумма", "% от общей суммы"},
	}

	sorted := make([]ItemRow, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ProductName < sorted[j].ProductName
	})

	for _, it := range sorted {
		lineTotal := it.Price * float64(it.Quantity)
		doc.Rows = append(doc.Rows, []string{
			it.ProductName,
			formatQuantity(it.Quantity),
			formatMoney(it.Price),
			formatMoney(lineTotal),
			formatPercent(ItemPercentage(lineTotal, summary.TotalCost)),
		})
	}

	doc.Totals = []string{
		"ИТОГО:",
		formatQuantity(summary.TotalQuantity),
		"",
		formatMoney(summary.TotalCost),
		"100%",
	}

	return doc
}
