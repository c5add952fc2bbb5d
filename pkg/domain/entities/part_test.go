package entities

import "testing"

func TestPartIndex_AccumulatesInFirstSeenOrder(t *testing.T) {
	index := NewPartIndex()
	index.Add("U300", "U300", "", 1)
	index.Add("U100", "U100-a", "主板", 2)
	index.Add("U100", "U100-b", "", 3)
	index.Add("U200", "U200", "", 4)

	if index.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", index.Len())
	}

	want := []PartKey{"U300", "U100", "U200"}
	for i, key := range index.Keys() {
		if key != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, key, want[i])
		}
	}

	if got := index.Quantity("U100"); got != 5 {
		t.Errorf("Quantity(U100) = %v, want 5", got)
	}
	if got := index.DisplayNo("U100"); got != "U100-a" {
		t.Errorf("DisplayNo = %q, want first-seen spelling", got)
	}
	if got := index.Description("U100"); got != "主板" {
		t.Errorf("Description = %q, want 主板", got)
	}
}

func TestPartIndex_KeepsFirstNonEmptyDescription(t *testing.T) {
	index := NewPartIndex()
	index.Add("U100", "U100", "", 1)
	index.Add("U100", "U100", "主板", 1)
	index.Add("U100", "U100", "别的描述", 1)

	if got := index.Description("U100"); got != "主板" {
		t.Errorf("Description = %q, want the first non-empty value", got)
	}
}

func TestPartIndex_UnknownKey(t *testing.T) {
	index := NewPartIndex()

	if index.Get("U999") != nil {
		t.Errorf("Get of unknown key must be nil")
	}
	if got := index.Quantity("U999"); got != 0 {
		t.Errorf("Quantity of unknown key = %v, want 0", got)
	}
	if got := index.DisplayNo("U999"); got != "U999" {
		t.Errorf("DisplayNo of unknown key = %q, want the key itself", got)
	}
}

func TestParseConditionMode(t *testing.T) {
	tests := []struct {
		input string
		want  ConditionMode
	}{
		{"ALL", ConditionAll},
		{"any", ConditionAny},
		{" NotAny ", ConditionNotAny},
		{"", ConditionNone},
		{"whatever", ConditionNone},
	}

	for _, tt := range tests {
		if got := ParseConditionMode(tt.input); got != tt.want {
			t.Errorf("ParseConditionMode(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
