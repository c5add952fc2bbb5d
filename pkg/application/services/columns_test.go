package services

import "testing"

func TestInferPartColumn(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		wantCol int
		wantOK  bool
	}{
		{
			name: "marker_column_wins",
			rows: [][]string{
				{"序号", "料号", "描述", "数量"},
				{"1", "U100-A", "电阻", "10"},
				{"2", "U200-B", "电容", "20"},
				{"3", "U300-C", "电感", "5"},
			},
			wantCol: 1,
			wantOK:  true,
		},
		{
			name: "tie_breaks_on_density_then_index",
			rows: [][]string{
				{"a", "b"},
				{"x", "y"},
				{"", "z"},
			},
			wantCol: 1,
			wantOK:  true,
		},
		{
			name:   "empty_sheet",
			rows:   [][]string{},
			wantOK: false,
		},
		{
			name: "header_only",
			rows: [][]string{
				{"料号", "数量"},
			},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := buildSheet("Sheet1", tt.rows...)
			col, ok := InferPartColumn(sheet, "U")
			if ok != tt.wantOK {
				t.Fatalf("InferPartColumn ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && col != tt.wantCol {
				t.Errorf("InferPartColumn = %d, want %d", col, tt.wantCol)
			}
		})
	}
}

func TestInferQuantityColumn(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want int
	}{
		{
			name: "header_keyword_restricts_candidates",
			rows: [][]string{
				{"序号", "料号", "单价", "数量"},
				{"1", "U100", "9.5", "10"},
				{"2", "U200", "3.25", "20"},
			},
			want: 3,
		},
		{
			name: "integer_density_wins_without_header",
			rows: [][]string{
				{"序号", "料号", "", ""},
				{"1", "U100", "1.5", "10"},
				{"2", "U200", "2.5", "20"},
			},
			want: 3,
		},
		{
			name: "header_without_parseable_data_still_trusted",
			rows: [][]string{
				{"序号", "料号", "数量"},
				{"1", "U100", "待定"},
				{"2", "U200", "-"},
			},
			want: 2,
		},
		{
			name: "fallback_when_nothing_scores",
			rows: [][]string{
				{"序号", "料号"},
				{"x", "U100"},
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := buildSheet("Sheet1", tt.rows...)
			if got := InferQuantityColumn(sheet, "U", 3); got != tt.want {
				t.Errorf("InferQuantityColumn = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInferDescriptionColumn(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]string
		partCol int
		wantCol int
		wantOK  bool
	}{
		{
			name: "keyword_in_header",
			rows: [][]string{
				{"序号", "料号", "描述", "数量"},
				{"1", "U100", "电阻", "10"},
			},
			partCol: 1,
			wantCol: 2,
			wantOK:  true,
		},
		{
			name: "english_keyword",
			rows: [][]string{
				{"no", "part", "qty", "Description"},
			},
			partCol: 1,
			wantCol: 3,
			wantOK:  true,
		},
		{
			name: "falls_back_to_neighbour",
			rows: [][]string{
				{"序号", "料号", "备注", "数量"},
				{"1", "U100", "x", "10"},
			},
			partCol: 1,
			wantCol: 2,
			wantOK:  true,
		},
		{
			name: "no_room_after_part_column",
			rows: [][]string{
				{"序号", "料号"},
			},
			partCol: 1,
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := buildSheet("Sheet1", tt.rows...)
			col, ok := InferDescriptionColumn(sheet, tt.partCol)
			if ok != tt.wantOK {
				t.Fatalf("InferDescriptionColumn ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && col != tt.wantCol {
				t.Errorf("InferDescriptionColumn = %d, want %d", col, tt.wantCol)
			}
		})
	}
}
