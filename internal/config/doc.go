// Package config loads the orderetl configuration and resolves every file
// system path the tool touches.
//
// # Configuration Sources
//
// Values are layered, later sources winning:
//
//  1. Default() values
//  2. YAML file (orderetl.yaml or config/orderetl.yaml, or --config)
//  3. Environment variables prefixed ORDERETL_
//
// Examples:
//
//	ORDERETL_PIPELINE_WORKERS=8
//	ORDERETL_PIPELINE_OUTPUT_FORMAT=both
//	ORDERETL_PIPELINE_NORMALIZERS=dataextract:dtx,on_hold:address_suffix
//	ORDERETL_PATHS_BASE_DIR=/srv/orders
//	ORDERETL_LOGGING_LEVEL=debug
//
// # Header Mapping
//
// headers.json maps each source directory name to an ordered object of
// source column -> canonical field. Key order is preserved on decode because
// it defines the output column order.
package config
