package museum

import (
	"strings"
	"testing"
)

func TestResolveKnownCodes(t *testing.T) {
	for _, code := range []string{"CMA", "cma", "AIC", " aic "} {
		a, err := Resolve(code)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", code, err)
			continue
		}
		if a == nil {
			t.Errorf("Resolve(%q) returned nil adapter", code)
		}
	}
}

func TestResolveUnknownCodeListsAvailable(t *testing.T) {
	_, err := Resolve("MET")
	if err == nil {
		t.Fatal("expected error for unknown code")
	}
	for _, want := range []string{"MET", "CMA", "AIC"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestResolveReturnsFreshInstances(t *testing.T) {
	a1, err := Resolve("AIC")
	if err != nil {
		t.Fatal(err)
	}
	a2, err := Resolve("AIC")
	if err != nil {
		t.Fatal(err)
	}
	if a1 == a2 {
		t.Fatal("Resolve must return a fresh instance per call")
	}

	// The discovered-departments accumulator is instance-scoped.
	a1.(*AIC).discovered["Test Department"] = struct{}{}
	if len(a2.Departments()) != 0 {
		t.Error("discovered departments leaked across instances")
	}
}

func TestListAll(t *testing.T) {
	infos := ListAll()
	if len(infos) != 2 {
		t.Fatalf("got %d museums, want 2", len(infos))
	}
	if infos[0].Code != "CMA" || infos[1].Code != "AIC" {
		t.Errorf("registration order wrong: %+v", infos)
	}
	if infos[0].Name != "Cleveland Museum of Art" {
		t.Errorf("display name = %q", infos[0].Name)
	}
}
