// Package identifier はユーザー名の正規化とdossier IDの生成を提供する。
//
// dossier IDはURLそのものが閲覧権限となるcapabilityトークンであり、
// 推測不能であることが唯一のアクセス制御となる。そのため必ず
// 暗号論的乱数源から生成し、カウンタや時刻由来の値は使用しない。
package identifier

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// dossierIDAlphabet はdossier IDに使用するURL-safeな62文字のアルファベット。
const dossierIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// dossierIDLength はdossier IDの文字数。62^12 ≒ 2^71 で総当たりは非現実的。
const dossierIDLength = 12

// NormalizeUsername は入力されたハンドルを正規名に正規化する。
// 前後の空白を除去し、先頭の"@"を1つだけ取り除き、小文字化する。
// 結果が空文字列になる場合はok=falseを返す。
func NormalizeUsername(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "@")
	s = strings.ToLower(s)
	if s == "" {
		return "", false
	}
	return s, true
}

// NewDossierID は新しいdossier IDを生成する。
// [A-Za-z0-9]の12文字で、crypto/randによる剰余バイアスのない選択を行う。
func NewDossierID() (string, error) {
	var b strings.Builder
	b.Grow(dossierIDLength)

	// 256 % 62 != 0 のため、バイアスを避けるにはリジェクションサンプリングが必要。
	// 62*4=248 未満のバイト値のみ採用する。
	buf := make([]byte, dossierIDLength*2)
	for b.Len() < dossierIDLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("乱数の読み取りに失敗しました: %w", err)
		}
		for _, v := range buf {
			if v >= 248 {
				continue
			}
			b.WriteByte(dossierIDAlphabet[int(v)%len(dossierIDAlphabet)])
			if b.Len() == dossierIDLength {
				break
			}
		}
	}

	return b.String(), nil
}
