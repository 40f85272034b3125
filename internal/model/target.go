// Package model はドメインモデルを定義する。
package model

import "time"

// Target は監視対象として登録されたユーザー名を表す。
// DossierIDは公開側の唯一のアクセス手段となるcapabilityトークンで、
// 作成時に一度だけ生成され、以後変更も再発行もされない。
type Target struct {
	ID            string
	Username      string
	DossierID     string
	CreatedAt     time.Time
	LastUpdatedAt time.Time
}
