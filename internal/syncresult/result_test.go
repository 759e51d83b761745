package syncresult

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestDescriptors(t *testing.T) {
	tests := []struct {
		name       string
		descriptor Descriptor
		wantStatus int
		wantMsg    string
	}{
		{"missing config", MissingConfig(), http.StatusInternalServerError, MessageMissingConfig},
		{"modified", Modified(), http.StatusOK, MessageModified},
		{"failed", Failed(), http.StatusInternalServerError, MessageFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := tt.descriptor.Response()
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if resp.Headers["Content-Type"] != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", resp.Headers["Content-Type"])
			}

			var b struct {
				Message string `json:"message"`
			}
			if err := json.Unmarshal([]byte(resp.Body), &b); err != nil {
				t.Fatalf("body is not JSON: %v", err)
			}
			if b.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", b.Message, tt.wantMsg)
			}
		})
	}
}

func TestDescriptors_AreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, d := range []Descriptor{MissingConfig(), Modified(), Failed()} {
		if seen[d.Message] {
			t.Errorf("duplicate message %q", d.Message)
		}
		seen[d.Message] = true
	}
}
