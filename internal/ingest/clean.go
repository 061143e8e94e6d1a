package ingest

import "strings"

// Order number fragments added by the storefront export
const (
	orderSuffixDoterra = "_DOTERRA"
	orderPrefixDT      = "DT"
)

// CleanOrderNumber removes every "_DOTERRA", then every "DT" from an order number
func CleanOrderNumber(orderNumber string) string {
	cleaned := strings.ReplaceAll(orderNumber, orderSuffixDoterra, "")
	return strings.ReplaceAll(cleaned, orderPrefixDT, "")
}
