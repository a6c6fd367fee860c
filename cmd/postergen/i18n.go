// Package main provides localization for the postergen CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Flag categories
		"Directories": "ディレクトリ",
		"Output":      "出力",
		"Processing":  "処理",
		"Reporting":   "レポート",
		"Debug":       "デバッグ",
		"Logging":     "ログ",

		// Root command
		"Generate Lethal Posters and Lethal Paintings assets from your images":                  "画像から Lethal Posters と Lethal Paintings のアセットを生成",
		"postergen composites every input image into every poster, tips and painting template.": "postergen はすべての入力画像をポスター、ティップス、絵画の各テンプレートに合成します。",
		"Show version information":                                                              "バージョン情報を表示",

		// Directory flags
		"Directory containing poster_template.png and painting_template.png": "poster_template.png と painting_template.png を含むディレクトリ",
		"Directory containing the source images":                             "元画像を含むディレクトリ",
		"Output root directory":                                              "出力先のルートディレクトリ",
		"YAML configuration file (flags override its values)":                "YAML設定ファイル（フラグが値を上書き）",

		// Output flags
		"Output layout preset (flat, mod)": "出力レイアウトのプリセット（flat, mod）",
		"Output image format (png, jpeg)":  "出力画像形式（png, jpeg）",
		"JPEG quality (1-100)":             "JPEG品質（1-100）",

		// Processing flags
		"Number of parallel workers (0 = one per CPU)":              "並列ワーカー数（0 = CPUごとに1つ）",
		"Resampling filter (lanczos, catmullrom, linear, box)":      "リサンプリングフィルター（lanczos, catmullrom, linear, box）",
		"Background color of the tips sheet (hex, e.g. #00000000)": "ティップスシートの背景色（16進数、例: #00000000）",
		"Exit with status 0 even when some assets failed":           "一部のアセットが失敗しても終了コード0で終了",

		// Reporting flags
		"Write a Markdown summary of the run to this file": "実行結果のMarkdownサマリーをこのファイルに書き込む",

		// Debug flags
		"Save template previews and intermediate images": "テンプレートのプレビューと中間画像を保存",
		"Directory for debug output":                     "デバッグ出力用ディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Log format (console, json)":           "ログ形式（console, json）",
		"Suppress all log output":              "すべてのログ出力を抑制",

		// Messages
		"Error: %s":          "エラー: %s",
		"Summary saved to %s": "サマリーを %s に保存しました",

		// Summary labels
		"Generation Summary":  "生成サマリー",
		"Item":                "項目",
		"Value":               "値",
		"Run ID":              "実行ID",
		"Templates Directory": "テンプレートディレクトリ",
		"Input Directory":     "入力ディレクトリ",
		"Output Directory":    "出力ディレクトリ",
		"Settings":            "設定",
		"Preset":              "プリセット",
		"Format":              "形式",
		"quality":             "品質",
		"Resampling Filter":   "リサンプリングフィルター",
		"Workers":             "ワーカー数",
		"Results":             "結果",
		"Templates":           "テンプレート数",
		"Input Images":        "入力画像数",
		"Generated":           "生成数",
		"Failed":              "失敗数",
		"Output Size":         "出力サイズ",
		"Duration":            "所要時間",
		"Failures":            "失敗一覧",
		"Template":            "テンプレート",
		"Source":              "元画像",
		"Kind":                "種別",
		"Error":               "エラー",
		"Outputs":             "出力ファイル",
		"Generated at":        "生成日時",
	})
}
