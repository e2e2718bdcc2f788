package enchant

import "testing"

func TestTags(t *testing.T) {
	tests := []struct {
		bcp47, enchant string
	}{
		{"en-US", "en_US"},
		{"de", "de"},
		{"sr-Latn-RS", "sr_Latn_RS"},
	}
	for _, tt := range tests {
		if got := toEnchantTag(tt.bcp47); got != tt.enchant {
			t.Errorf("toEnchantTag(%q) = %q, want %q", tt.bcp47, got, tt.enchant)
		}
		if got := fromEnchantTag(tt.enchant); got != tt.bcp47 {
			t.Errorf("fromEnchantTag(%q) = %q, want %q", tt.enchant, got, tt.bcp47)
		}
	}
}

func TestAppendUnique(t *testing.T) {
	var tags []string
	for _, tag := range []string{"en-US", "fr-FR", "en-US", "de"} {
		tags = appendUnique(tags, tag)
	}
	if len(tags) != 3 || tags[0] != "en-US" || tags[1] != "fr-FR" || tags[2] != "de" {
		t.Fatalf("tags = %v", tags)
	}
}
