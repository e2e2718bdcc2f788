package enchant

import "strings"

// toEnchantTag converts "en-US" to the "en_US" form enchant uses.
func toEnchantTag(tag string) string {
	return strings.ReplaceAll(tag, "-", "_")
}

// fromEnchantTag converts "en_US" to "en-US".
func fromEnchantTag(tag string) string {
	return strings.ReplaceAll(tag, "_", "-")
}

// appendUnique appends tag unless it is already present. Several providers
// may offer the same dictionary.
func appendUnique(tags []string, tag string) []string {
	for _, t := range tags {
		if t == tag {
			return tags
		}
	}
	return append(tags, tag)
}
