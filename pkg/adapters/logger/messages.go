package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting run %s":                          "実行 %s を開始します",
		"Loading templates from %s":                "%s からテンプレートを読み込み中",
		"Loaded %d templates":                      "%d 個のテンプレートを読み込みました",
		"Found %d input images in %s":              "%s に %d 個の入力画像が見つかりました",
		"Generating %d assets with %d workers":     "%d 個のアセットを %d ワーカーで生成中",
		"Generated %d of %d assets (%d failed)":    "%d / %d 個のアセットを生成しました (%d 件失敗)",
		"Output saved to %s":                       "出力を %s に保存しました",
		"Interrupted, shutting down...":            "中断されました。シャットダウン中...",
		"No input images found in %s":              "%s に入力画像がありません",

		// Registry
		"Loading template %s from %s":              "テンプレート %s を %s から読み込み中",
		"Template %s: %dx%d, %d slots":              "テンプレート %s: %dx%d, スロット %d 個",
		"Creating synthetic template %s (%dx%d)":   "合成テンプレート %s (%dx%d) を作成中",

		// Pair stages (debug)
		"Processing %s + %s":                       "%s + %s を処理中",
		"Decoded %s: %s %dx%d":                     "%s をデコードしました: %s %dx%d",
		"Skipping unreadable input %s: %s":         "読み込めない入力 %s をスキップします: %s",
		"Skipping undecodable companion %s: %s":    "デコードできない補助画像 %s をスキップします: %s",
		"Fitting %dx%d into %dx%d (%s)":            "%dx%d を %dx%d に合わせています (%s)",
		"Compositing %d slots onto %s":             "%d 個のスロットを %s に合成中",
		"Wrote %s (%d bytes)":                      "%s を書き込みました (%d バイト)",
		"Completed %d/%d":                          "%d/%d 完了",

		// Warnings
		"Pair %s + %s failed: %s":                  "%s + %s の処理に失敗しました: %s",
		"Failed to save debug output: %s":          "デバッグ出力の保存に失敗しました: %s",
		"Recovered from panic in %s + %s: %v":      "%s + %s でパニックから回復しました: %v",

		// Errors
		"Failed to load templates: %s":             "テンプレートの読み込みに失敗しました: %s",
		"Failed to read input directory: %s":       "入力ディレクトリの読み込みに失敗しました: %s",
		"Failed to write summary: %s":              "サマリーの書き込みに失敗しました: %s",
		"Failed pairs (%d):":                       "失敗した組み合わせ (%d 件):",
	})
}
