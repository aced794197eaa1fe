package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultTariffName   = "default"
	MaxTariffNameLength = 100
)

type Tariff struct {
	ID        int32           `json:"id"`
	Name      string          `json:"name"`
	PerMinute decimal.Decimal `json:"per_minute"`
	CreatedOn time.Time       `json:"created_on"`
}
