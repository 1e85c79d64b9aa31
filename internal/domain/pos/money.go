package pos

import "github.com/shopspring/decimal"

// MoneyPlaces - знаков после запятой у денежных сумм. Сервер хранит их в NUMERIC(14, 2)
const MoneyPlaces = 2

// IsMoney сообщает, что сумма точно представима с MoneyPlaces знаками
func IsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyPlaces))
}
