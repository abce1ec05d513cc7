package dto

import (
	"encoding/json"
	"testing"

	"github.com/iho/paymentsengine/internal/usecase"
)

func TestStatusFromStats(t *testing.T) {
	resp := StatusFromStats("01RUN", usecase.Stats{Processed: 10, Applied: 7, Ignored: 3, Accounts: 2})

	if resp.RunID != "01RUN" || resp.Processed != 10 || resp.Applied != 7 || resp.Ignored != 3 || resp.Accounts != 2 {
		t.Fatalf("unexpected status response: %+v", resp)
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	expected := `{"run_id":"01RUN","processed":10,"applied":7,"ignored":3,"accounts":2}`
	if string(raw) != expected {
		t.Fatalf("expected %s, got %s", expected, raw)
	}
}
