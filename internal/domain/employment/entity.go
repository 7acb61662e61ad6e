package employment

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ContractType is the closed set of contract variants. Wage computation
// supports the short-term types only; HPP is rejected by the engine.
type ContractType string

const (
	ContractDPP ContractType = "dpp"
	ContractDPC ContractType = "dpc"
	ContractHPP ContractType = "hpp"
)

var ErrInvalidContractType = errors.New("invalid contract type")

func (c ContractType) Valid() bool {
	switch c {
	case ContractDPP, ContractDPC, ContractHPP:
		return true
	}
	return false
}

func ParseContractType(s string) (ContractType, error) {
	t := ContractType(s)
	if !t.Valid() {
		return "", ErrInvalidContractType
	}
	return t, nil
}

// Employment is the contractual relationship between an employee and an
// employer. Read-only input to wage computation; owned elsewhere.
type Employment struct {
	UserID     string
	CompanyID  string
	HourlyWage decimal.Decimal
	Type       ContractType
}
