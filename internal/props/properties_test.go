package props

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	p := Parse(`# comment
! also a comment

jmeter.save.saveservice.output_format=xml
log_level.jmeter: INFO
search_paths=/one;\
/two
key.without.value
  indented=yes
`)

	want := map[string]string{
		"jmeter.save.saveservice.output_format": "xml",
		"log_level.jmeter":                      "INFO",
		"search_paths":                          "/one;/two",
		"key.without.value":                     "",
		"indented":                              "yes",
	}
	if len(p) != len(want) {
		t.Errorf("parsed %d keys, want %d: %v", len(p), len(want), p)
	}
	for k, v := range want {
		if p[k] != v {
			t.Errorf("p[%q] = %q, want %q", k, p[k], v)
		}
	}
}

func TestMerge_DoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	base := Properties{"a": "1", "b": "2"}
	merged := base.Merge(map[string]string{"b": "override", "c": "3"})

	if base["b"] != "2" {
		t.Error("Merge mutated the receiver")
	}
	if merged["a"] != "1" || merged["b"] != "override" || merged["c"] != "3" {
		t.Errorf("unexpected merge result: %v", merged)
	}
}

func TestFormat_SortedAndStable(t *testing.T) {
	t.Parallel()

	p := Properties{"zebra": "1", "alpha": "2", "mid": "3"}
	want := "alpha=2\nmid=3\nzebra=1\n"
	if got := p.Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
	if p.Format() != p.Format() {
		t.Error("Format is not stable")
	}
}

func TestFormat_NilProperties(t *testing.T) {
	t.Parallel()

	var p Properties
	if got := p.Format(); got != "" {
		t.Errorf("nil Properties should format to empty, got %q", got)
	}
}
