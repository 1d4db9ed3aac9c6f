// Package model はドメインモデルを定義する。
package model

import "strings"

// SplitTags はカンマ区切りのタグ入力を正規化してスライスに変換する。
// 各要素の前後の空白を除去し、空要素は捨てる。
// 入力が空の場合は空のスライスを返す（nilではない）。
func SplitTags(input string) []string {
	return splitAndTrim(input, ",")
}

// SplitLines は改行区切りのリスト入力（参加者、議題等）を正規化して
// スライスに変換する。各要素の前後の空白を除去し、空行は捨てる。
func SplitLines(input string) []string {
	return splitAndTrim(strings.ReplaceAll(input, "\r\n", "\n"), "\n")
}

func splitAndTrim(input, sep string) []string {
	result := []string{}
	for _, part := range strings.Split(input, sep) {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
