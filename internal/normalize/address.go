package normalize

import (
	"orderetl/pkg/contracts/domain"
)

// AddressSuffix derives ship_to_country from the last two characters of
// ship_to_address. Used for on hold and unshipped order reports, where the
// address ends with the country code.
type AddressSuffix struct {
	width int
}

// NewAddressSuffix creates the address suffix normalizer
func NewAddressSuffix() *AddressSuffix {
	return &AddressSuffix{width: 2}
}

// Name implements Normalizer
func (a *AddressSuffix) Name() string { return NameAddressSuffix }

// Normalize sets ship_to_country and drops ship_to_address
func (a *AddressSuffix) Normalize(t *domain.Table) {
	if !t.HasColumn(domain.FieldShipToAddress) {
		return
	}

	t.AddColumn(domain.FieldShipToCountry)
	for _, row := range t.Rows {
		row[domain.FieldShipToCountry] = a.suffix(row[domain.FieldShipToAddress])
	}
	t.DropColumn(domain.FieldShipToAddress)
}

func (a *AddressSuffix) suffix(address string) string {
	runes := []rune(address)
	if len(runes) <= a.width {
		return address
	}
	return string(runes[len(runes)-a.width:])
}
