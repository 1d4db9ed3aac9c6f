package model

import (
	"reflect"
	"testing"
)

// TestSplitTags はカンマ区切りタグの正規化を検証する。
func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "前後の空白を除去する",
			input: "a, b ,c",
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "空要素は捨てる",
			input: "education,, budget, ",
			want:  []string{"education", "budget"},
		},
		{
			name:  "空入力は空スライスを返す",
			input: "",
			want:  []string{},
		},
		{
			name:  "空白のみの入力は空スライスを返す",
			input: "  ,  , ",
			want:  []string{},
		},
		{
			name:  "単一要素",
			input: "traffic",
			want:  []string{"traffic"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTags(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTags(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestSplitLines は改行区切りリストの正規化を検証する。
func TestSplitLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "改行で分割し空白を除去する",
			input: "Hon. Juan dela Cruz\n Hon. Maria Santos \nHon. Jose Garcia",
			want:  []string{"Hon. Juan dela Cruz", "Hon. Maria Santos", "Hon. Jose Garcia"},
		},
		{
			name:  "CRLF改行にも対応する",
			input: "Budget review\r\nPublic comments",
			want:  []string{"Budget review", "Public comments"},
		},
		{
			name:  "空行は捨てる",
			input: "Opening remarks\n\n\nClosing remarks\n",
			want:  []string{"Opening remarks", "Closing remarks"},
		},
		{
			name:  "空入力は空スライスを返す",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitLines(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
