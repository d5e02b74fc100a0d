package strategist

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-promptfmt"

	"github.com/yildizm/LifeStrat/internal/api"
)

const systemPrompt = `Role

あなたは、西洋の論理的体系である「数秘術（Numerology）」と、東洋の動的な環境学である「九星気学（Nine Star Ki）」を融合させ、究極の人生戦略を立案する「ハイブリッド・ライフストラテジスト」です。

ユーザーが自身の資質を最大限に活かしつつ、時流（バイオリズム）に乗って最短距離で成功するための「人生の航海図」を設計します。

Objective

以下のユーザーデータから、内面的な「設計図（数秘）」と、外面的な「気流（気学）」を分析し、最適解を導き出してください。`

const guidelines = `- トーン: 戦略的、論理的、かつエンパワメント（勇気づけ）を重視
- 数秘術を「エンジンの性能」、九星気学を「道路状況や天候」として扱う
- 「今年は運が悪い」という表現は避け、「今は守りを固め、内部充実を図る時期」のように建設的に表現
- 具体的で実行可能なアドバイスを提供`

// reportSections is the body of the requested output after the profile
// header. The wizard's formatter understands every marker used here.
const reportSections = `## 1. 思考と資質の統合 (Mindset & Nature)

### あなたのコア・コンピタンス:
[数秘術のLPが示す「才能」に対し、気学の本命星がどのような「色（性質）」を加えているかを分析]

### 陥りやすいエラー:
[両方の性質がネガティブに出た場合の思考の偏りと、その修正法]

---

## 2. 行動の最適解 (Action Strategy)

### 社会的役割と振る舞い:
[数秘Dが求める役割を、本命星のスタイルでどう実行すべきか]

### 対人関係の攻略法:
[周囲からどう見られやすく、どう接すると信頼を得られるか]

### リスクヘッジ:
[避けるべき行動パターンや環境]

---

## 3. タイムマネジメント (Strategic Timing)

### 現在の立ち位置:
[数秘のサイクルと、気学の運気を統合して診断。具体的な例を交えて説明]

### 直近1年の具体的アクション:
- 今やるべきこと:
- やめるべきこと:

### 中長期展望:
[今後の運気の流れに基づいた、5年後のマイルストーン]

---

【アドバイザーからの戦略的提言】

[今のあなたに必要な「一言」を、抽象的な言葉ではなく具体的な指針として提示]`

// ReportPattern builds the strategy prompt for one person
type ReportPattern struct {
	promptfmt.BasePattern
	Name       string
	BirthDate  string
	Numerology api.Numerology
	Kigaku     api.Kigaku
}

// NewReportPattern creates a pattern for the given profile
func NewReportPattern(name, birthDate string, n api.Numerology, k api.Kigaku) *ReportPattern {
	return &ReportPattern{
		BasePattern: promptfmt.BasePattern{
			Description: "Combines a numerology and a nine star ki profile into a life strategy report",
			Tags:        []string{"numerology", "kigaku", "strategy"},
		},
		Name:       name,
		BirthDate:  birthDate,
		Numerology: n,
		Kigaku:     k,
	}
}

// Build renders the prompt
func (p *ReportPattern) Build() *promptfmt.Prompt {
	return promptfmt.New().
		System(systemPrompt).
		User("%s", p.userPrompt()).
		AddContext("guidelines", guidelines).
		Build()
}

func (p *ReportPattern) userPrompt() string {
	n, k := p.Numerology, p.Kigaku

	var b strings.Builder
	fmt.Fprintf(&b, "【ユーザー情報】\n名前: %s\n生年月日: %s\n\n", p.Name, p.BirthDate)
	fmt.Fprintf(&b, "【数秘プロファイル】\n- Life Path (LP): %d\n- Destiny (D): %d\n- Soul (S): %d\n- Personal Year (P): %d\n\n",
		n.LifePath, n.Destiny, n.Soul, n.PersonalYear)
	fmt.Fprintf(&b, "【気学プロファイル】\n- 本命星: %s\n- 現在の座相: %s - %s\n\n",
		k.HonmeiName, k.PositionName, k.PositionDescription)

	b.WriteString("---\n\n以下のフォーマットで、見やすく構造化して出力してください：\n\n")
	fmt.Fprintf(&b, "【戦略分析書: %s 様】\n\n", p.Name)
	fmt.Fprintf(&b, "◆ 数秘プロファイル: LP:%d / D:%d / S:%d\n\n", n.LifePath, n.Destiny, n.Soul)
	fmt.Fprintf(&b, "◆ 気学プロファイル: 本命星: %s\n\n", k.HonmeiName)
	fmt.Fprintf(&b, "◆ 現在の時流:\n- 数秘サイクル: P:%d - [サイクルのテーマ]\n- 気学ポジション: %s（[季節・天気で例えるなら]）\n\n---\n\n",
		n.PersonalYear, k.PositionName)
	b.WriteString(reportSections)
	return b.String()
}
