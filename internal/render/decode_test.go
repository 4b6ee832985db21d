package render

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string, v interface{}) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}
