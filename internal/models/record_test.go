package models

import (
	"encoding/json"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordID(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	ids := make([]string, 0, 20)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		id := NewRecordID(RecordTypeSubmission, base.Add(time.Duration(i)*time.Millisecond))
		assert.True(t, strings.HasPrefix(id, "submission_"))
		assert.False(t, seen[id], "id must never repeat")
		seen[id] = true
		ids = append(ids, id)
	}

	// Порядок ID совпадает с порядком захвата
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestParseRecordType(t *testing.T) {
	tests := []struct {
		input    string
		expected RecordType
		wantErr  bool
	}{
		{input: "submission", expected: RecordTypeSubmission},
		{input: " Media ", expected: RecordTypeMedia},
		{input: "CONFIG", expected: RecordTypeConfig},
		{input: "photo", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRecordType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestOfflineRecord_Clone(t *testing.T) {
	original := &OfflineRecord{
		ID:         "submission_01",
		Type:       RecordTypeSubmission,
		Payload:    json.RawMessage(`{"name":"a"}`),
		CapturedAt: time.Now(),
		RetryCount: 2,
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)

	// Изменение копии не затрагивает оригинал
	clone.Payload[2] = 'X'
	assert.NotEqual(t, original.Payload, clone.Payload)
	assert.Equal(t, len(original.Payload), original.Size())
}
