// Package normalize holds the per-source cleaning steps applied to a mapped
// table before deduplication.
//
// Two normalizers exist:
//
//	dtx             country codes to names, ship_via categories, one-letter order status
//	address_suffix  ship_to_country taken from the tail of ship_to_address
//
// Sources are bound to a normalizer by name in the pipeline configuration.
// A source without a binding (or bound to "none") passes through unchanged.
package normalize
