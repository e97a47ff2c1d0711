package request

// Summary - производная сводка по заявке, в базе не хранится
type Summary struct {
	TotalCost          float64
	TotalQuantity      int
	TotalRetailCost    float64
	TotalWholesaleCost float64
	ItemsCount         int
	AvgPricePerItem    float64
	AvgPricePerUnit    float64
}

// Коэффициент для оценки оптовой цены, когда она не задана в каталоге
const wholesaleFallbackRate = 0.85

func effectiveWholesalePrice(it ItemRow) float64 {
	if it.WholesalePrice != nil {
		return *it.WholesalePrice
	}
	return it.Price * wholesaleFallbackRate
}

// Summarize считает итоги заявки по позициям, соединённым с ценами каталога.
// Деления защищены от пустой заявки: средние равны нулю.
func Summarize(items []ItemRow) Summary {
	var s Summary
	s.ItemsCount = len(items)

	for _, it := range items {
		lineTotal := it.Price * float64(it.Quantity)
		s.TotalCost += lineTotal
		s.TotalQuantity += it.Quantity
		s.TotalWholesaleCost += effectiveWholesalePrice(it) * float64(it.Quantity)
	}
	s.TotalRetailCost = s.TotalCost

	if s.ItemsCount > 0 {
		s.AvgPricePerItem = s.TotalCost / float64(s.ItemsCount)
	}
	if s.TotalQuantity > 0 {
		s.AvgPricePerUnit = s.TotalCost / float64(s.TotalQuantity)
	}
	return s
}

// ItemPercentage - доля позиции в общей сумме в процентах, 0 при нулевой сумме
func ItemPercentage(lineTotal, totalCost float64) float64 {
	if totalCost == 0 {
		return 0
	}
	return lineTotal / totalCost * 100
}
