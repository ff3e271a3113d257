package domain

import "github.com/shopspring/decimal"

// LineItem 是定价引擎看到的购物车行：某个商品的单价与数量。
// 它是只读输入，引擎不会修改调用方传入的任何 LineItem。
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// Total 返回该行的全精度小计。
func (li LineItem) Total() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Subtotal 计算整个购物车的全精度小计。
func Subtotal(items []LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Total())
	}
	return sum
}

// UnitCount 返回购物车中实物件数的总和。
func UnitCount(items []LineItem) int {
	n := 0
	for _, item := range items {
		n += item.Quantity
	}
	return n
}
