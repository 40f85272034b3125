// Package model はドメインモデルを定義する。
package model

import "time"

// Story はターゲットに紐づく解析済みコンテンツ1件を表す。
// 取り込みと解析は外部コレクターが行い、このWeb層からは読み取り専用。
type Story struct {
	ID           string
	TargetID     string
	StoryID      string // 外部プラットフォーム側のコンテンツID。(TargetID, StoryID)が取り込みの冪等キー
	Timestamp    time.Time // 元コンテンツの投稿日時（取り込み日時ではない）
	MediaType    MediaType
	MediaURL     string
	Summary      string // 解析待ちの間は空
	FullAnalysis string // 解析待ちの間は空
	CreatedAt    time.Time
}

// MediaType はストーリーのメディア種別を表す。
type MediaType string

const (
	// MediaTypeImage は画像メディア。
	MediaTypeImage MediaType = "image"
	// MediaTypeVideo は動画メディア。
	MediaTypeVideo MediaType = "video"
)

// IsValid はメディア種別が定義済みの値かどうかを返す。
func (m MediaType) IsValid() bool {
	return m == MediaTypeImage || m == MediaTypeVideo
}
