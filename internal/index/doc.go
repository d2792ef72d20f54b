// Package index loads the authoritative law list (all_law_list.csv).
//
// The list is read once into an immutable Table keyed by law id. Columns are
// located by header name, in English or in the Japanese used by e-Gov:
//
//	law_id             法令ID
//	title              法令名
//	category           法令種別
//	law_num            法令番号
//	promulgation_date  公布日
//
// Only law_id and title are required. Files published by e-Gov are
// Shift_JIS; re-exported copies are usually UTF-8, often with a BOM. The
// default "auto" encoding accepts both.
package index
