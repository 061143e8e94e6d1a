package normalize

import (
	"strings"

	"orderetl/pkg/contracts/domain"
)

// countryCodes maps the ISO3 codes found in data extracts to country names
var countryCodes = map[string]string{
	"DEU": "germany",
	"ITA": "italy",
	"POL": "poland",
	"GBR": "uk",
	"UKR": "ukraine",
	"ISR": "israel",
	"FRA": "france",
}

// Ship via categories
const (
	ShipViaStandard = "standard"
	ShipViaPremium  = "premium"
	ShipViaOther    = "other"
)

// DTX cleans data extract exports
type DTX struct {
	countries map[string]string
}

// NewDTX creates the data extract normalizer
func NewDTX() *DTX {
	return &DTX{countries: countryCodes}
}

// Name implements Normalizer
func (d *DTX) Name() string { return NameDTX }

// Normalize resolves ship_to_country, drops ship_to_addr_3, buckets ship_via
// and truncates order_status to its first character
func (d *DTX) Normalize(t *domain.Table) {
	hasCountry := t.HasColumn(domain.FieldShipToCountry)
	hasAddr3 := t.HasColumn(domain.FieldShipToAddr3)
	hasShipVia := t.HasColumn(domain.FieldShipVia)
	hasStatus := t.HasColumn(domain.FieldOrderStatus)

	if hasCountry || hasAddr3 {
		t.AddColumn(domain.FieldShipToCountry)
	}

	for _, row := range t.Rows {
		if hasCountry || hasAddr3 {
			row[domain.FieldShipToCountry] = d.Country(row[domain.FieldShipToCountry], row[domain.FieldShipToAddr3])
		}
		if hasShipVia {
			row[domain.FieldShipVia] = CategorizeShipVia(row[domain.FieldShipVia])
		}
		if hasStatus {
			row[domain.FieldOrderStatus] = firstChar(row[domain.FieldOrderStatus])
		}
	}

	t.DropColumn(domain.FieldShipToAddr3)
}

// Country returns the country name for a known ISO3 code, otherwise the
// lower-cased third address line
func (d *DTX) Country(code, addr3 string) string {
	if name, ok := d.countries[code]; ok {
		return name
	}
	return strings.ToLower(addr3)
}

// CategorizeShipVia buckets a shipping method into standard, premium or other
func CategorizeShipVia(value string) string {
	v := strings.ToLower(value)
	switch {
	case strings.Contains(v, "stan"):
		return ShipViaStandard
	case strings.Contains(v, "prem"):
		return ShipViaPremium
	default:
		return ShipViaOther
	}
}

func firstChar(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
