package domain

import "time"

// Order: заказ, который проходит через конвейер валидаторов.
// ValidatorResults остаётся nil до первого прогона конвейера, дальше только дописывается.
// Reject выставляется правилом отклонения после прогона валидаторов.
type Order struct {
	OrderID          int64             `json:"order_id"           validate:"required,gt=0"`
	CustomerID       int64             `json:"customer_id"        validate:"required,gt=0"`
	OrderDate        time.Time         `json:"order_date"         validate:"required"`
	TotalCharge      float64           `json:"total_charge"       validate:"gte=0"`
	OrderedProducts  []Product         `json:"ordered_products"   validate:"required,min=1,dive"`
	ValidatorResults []ValidatorResult `json:"validator_results,omitempty"`
	Reject           bool              `json:"reject"`
}

// Customer: покупатель; валидаторы могут смотреть на него по своему усмотрению.
type Customer struct {
	CustomerID      int64  `json:"customer_id"`
	CustomerName    string `json:"customer_name"`
	CustomerAddress string `json:"customer_address"`
}

// Product: позиция заказа.
type Product struct {
	ProductID   int64   `json:"product_id"  validate:"required,gt=0"`
	Description string  `json:"description" validate:"max=512"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"       validate:"gte=0"`
}

// LineTotal: стоимость позиции (Price * Quantity).
func (p Product) LineTotal() float64 {
	return p.Price * float64(p.Quantity)
}

// ProductsTotal: сумма по всем позициям заказа.
func (o *Order) ProductsTotal() float64 {
	var sum float64
	for i := range o.OrderedProducts {
		sum += o.OrderedProducts[i].LineTotal()
	}
	return sum
}

// Verdict: итог проверки заказа для внешних потребителей (HTTP, CLI, Kafka).
type Verdict struct {
	OrderID    int64             `json:"order_id"`
	CustomerID int64             `json:"customer_id"`
	Reject     bool              `json:"reject"`
	Results    []ValidatorResult `json:"results"`
}

// Verdict: снимок текущего состояния заказа; результаты копируются.
func (o *Order) Verdict() Verdict {
	return Verdict{
		OrderID:    o.OrderID,
		CustomerID: o.CustomerID,
		Reject:     o.Reject,
		Results:    append([]ValidatorResult(nil), o.ValidatorResults...),
	}
}
