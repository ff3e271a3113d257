package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

const (
	ThreeForTwoName = "Get 3 for the Price of 2"
	VipDiscountName = "VIP Discount (15%)"

	// threeForTwoGroupSize 每满这么多件，价格排在第 N 位的那件免单。
	threeForTwoGroupSize = 3
)

var vipDiscountRate = decimal.RequireFromString("0.15")

// Quote 是某个促销在全精度下的计算结果。
// 舍入只在生成 PriceBreakdown 时发生一次，累加过程中不做任何舍入。
type Quote struct {
	Promotion string // 为空表示没有促销生效
	Subtotal  decimal.Decimal
	Discount  decimal.Decimal
	Final     decimal.Decimal
}

// ThreeForTwo 计算“买三付二”促销。
//
// 购物车先被展开成“每件一条”的单价序列，按价格从高到低排序后，
// 每个位置序号（从 1 开始）为 3 的倍数的那件免单。
// 这样免单的永远是每组三件里最便宜的一件，且贵的商品先被分组。
func ThreeForTwo(items []LineItem, subtotal decimal.Decimal) Quote {
	units := flattenUnitPrices(items)
	if len(units) < threeForTwoGroupSize {
		return Quote{Subtotal: subtotal, Discount: decimal.Zero, Final: subtotal}
	}

	slices.SortStableFunc(units, func(a, b decimal.Decimal) int {
		return b.Cmp(a)
	})

	paid, free := decimal.Zero, decimal.Zero
	for i, price := range units {
		if (i+1)%threeForTwoGroupSize == 0 {
			free = free.Add(price)
		} else {
			paid = paid.Add(price)
		}
	}

	return Quote{
		Promotion: ThreeForTwoName,
		Subtotal:  subtotal,
		Discount:  free,
		Final:     paid,
	}
}

// VipDiscount 计算 VIP 的 15% 整单折扣。资格由调用方判断。
func VipDiscount(subtotal decimal.Decimal) Quote {
	discount := subtotal.Mul(vipDiscountRate)
	return Quote{
		Promotion: VipDiscountName,
		Subtotal:  subtotal,
		Discount:  discount,
		Final:     subtotal.Sub(discount),
	}
}

// flattenUnitPrices 把每个购物车行按数量展开，每件商品对应一条单价。
func flattenUnitPrices(items []LineItem) []decimal.Decimal {
	units := make([]decimal.Decimal, 0, UnitCount(items))
	for _, item := range items {
		for i := 0; i < item.Quantity; i++ {
			units = append(units, item.UnitPrice)
		}
	}
	return units
}
