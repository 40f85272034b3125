// Package security はアプリケーションのセキュリティ機能を提供する。
//
// AnalysisSanitizerService はストーリーのsummary / full_analysisを
// サニタイズする。これらのテキストは外部コレクターが共有ストアに
// 直接書き込むため、このWeb層にとっては信頼できない入力であり、
// 応答に載せる前に必ず通過させる。
package security

import "github.com/microcosm-cc/bluemonday"

// AnalysisSanitizerService は解析テキストのサニタイズ機能のインターフェースを定義する。
type AnalysisSanitizerService interface {
	// Sanitize は解析テキストをサニタイズして安全なHTMLを返す。
	// 許可するのは段落・改行・リスト・強調のインライン整形のみで、
	// script, iframe, styleタグおよびon*イベント属性、リンクと画像は除去する。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(raw string) string
}

// analysisSanitizer はAnalysisSanitizerServiceの実装。
// bluemondayのポリシーを保持し、スレッドセーフにサニタイズ処理を行う。
type analysisSanitizer struct {
	policy *bluemonday.Policy
}

// NewAnalysisSanitizer はAnalysisSanitizerServiceの新しいインスタンスを生成する。
// ポリシーの内容:
//   - 許可タグ: p, br, ul, ol, li, blockquote, strong, em
//   - リンク・画像・埋め込みは一切許可しない
//     （メディアはmedia_url経由でのみ提示する。解析テキストに外部参照は不要）
//   - script, iframe, style等は許可リストに含めないことで自動的に除去される
func NewAnalysisSanitizer() *analysisSanitizer {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "ul", "ol", "li",
		"blockquote", "strong", "em",
	)

	return &analysisSanitizer{
		policy: p,
	}
}

// Sanitize は解析テキストをサニタイズして安全なHTMLを返す。
func (s *analysisSanitizer) Sanitize(raw string) string {
	return s.policy.Sanitize(raw)
}
