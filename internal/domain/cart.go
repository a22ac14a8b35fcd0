package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CartLine строка корзины, уникальна по ProductID
type CartLine struct {
	ProductID int64
	Quantity  int
}

// CartItem строка корзины с актуальным товаром
type CartItem struct {
	Product  Product
	Quantity int
}

// LineTotal quantity * текущая цена товара
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart корзина с ценами на момент чтения
type Cart struct {
	UserID int64
	Items  []CartItem
	Total  decimal.Decimal
}

// ItemCount суммарное количество единиц товара
func (c *Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty true, если в корзине нет строк
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// BuildCart собирает корзину из строк и актуального каталога.
// Строки с товаром, которого больше нет (или он скрыт), отбрасываются.
// Итог считается по живым ценам, а не фиксируется
func BuildCart(userID int64, lines []CartLine, products map[int64]*Product) *Cart {
	cart := &Cart{UserID: userID, Items: make([]CartItem, 0, len(lines)), Total: decimal.Zero}

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok || product == nil || !product.Active || line.Quantity <= 0 {
			continue
		}
		item := CartItem{Product: *product, Quantity: line.Quantity}
		cart.Items = append(cart.Items, item)
		cart.Total = cart.Total.Add(item.LineTotal())
	}

	sort.Slice(cart.Items, func(i, j int) bool {
		return cart.Items[i].Product.ID < cart.Items[j].Product.ID
	})
	return cart
}

// SnapshotItems фиксирует цены и названия товаров в позиции заказа
func (c *Cart) SnapshotItems() []OrderItem {
	items := make([]OrderItem, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, OrderItem{
			ProductID:       item.Product.ID,
			ProductName:     item.Product.Name,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.Product.Price,
		})
	}
	return items
}
