// Package transform post-processes raw records before they reach a sink.
package transform

import "strings"

// NormalizeKey rewrites an XML element name into a record key. Inventio
// element names use dashes, downstream targets want underscores.
func NormalizeKey(key string) string {
	return strings.ReplaceAll(key, "-", "_")
}

// PostProcess labels a record with its originating company and normalizes all
// keys. The input map is not modified.
func PostProcess(row map[string]interface{}, companyName string) map[string]interface{} {
	out := make(map[string]interface{}, len(row)+1)
	for key, value := range row {
		out[NormalizeKey(key)] = value
	}
	out["company_name"] = companyName
	return out
}
