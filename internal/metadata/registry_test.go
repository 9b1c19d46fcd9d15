package metadata

import "testing"

func TestDefaultRegistryLayers(t *testing.T) {
	reg := Default()
	for _, name := range []string{"Application", "Transport", "Network", "Data Link", "Physical"} {
		text, ok := reg.DescribeLayer(name)
		if !ok || text == "" {
			t.Fatalf("missing layer annotation for %q", name)
		}
	}
	if got := len(reg.Layers()); got != 5 {
		t.Fatalf("expected 5 layers, got %d", got)
	}
}

func TestDescribeAbsentKey(t *testing.T) {
	reg := Default()
	if text, ok := reg.DescribeField("noSuchField"); ok || text != "" {
		t.Fatalf("expected absent field, got %q", text)
	}
	if _, ok := reg.DescribeLayer("Session"); ok {
		t.Fatalf("expected absent layer")
	}
}

func TestTablesAreCopies(t *testing.T) {
	reg := New(map[string]string{"L": "layer"}, map[string]string{"k": "field"})
	fields := reg.Fields()
	fields["k"] = "changed"
	delete(fields, "k")
	if text, _ := reg.DescribeField("k"); text != "field" {
		t.Fatalf("registry mutated through copy: %q", text)
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Default().Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted at %d: %q >= %q", i, keys[i-1], keys[i])
		}
	}
}
