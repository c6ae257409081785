package museum

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
)

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
}

func containsSubstring(s, substr string) bool {
	return strings.Contains(s, substr)
}
