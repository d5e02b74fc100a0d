// Package kigaku computes a nine star ki profile: the natal (honmei) star
// and the palace it occupies on a given year's board.
package kigaku

// Profile is the natal star and its palace for one calendar year
type Profile struct {
	HonmeiStar          int    `json:"honmei_star"`
	HonmeiName          string `json:"honmei_name"`
	CurrentPosition     int    `json:"current_position"`
	PositionName        string `json:"position_name"`
	PositionDescription string `json:"position_description"`
}

const (
	baseYear      = 1901 // year of star 9
	baseStar      = 9
	boardBaseYear = 2026 // year whose board center is star 7
	boardBaseStar = 7
)

var starNames = [10]string{
	1: "一白水星",
	2: "二黒土星",
	3: "三碧木星",
	4: "四緑木星",
	5: "五黄土星",
	6: "六白金星",
	7: "七赤金星",
	8: "八白土星",
	9: "九紫火星",
}

var palaceNames = [10]string{
	1: "坎宮（北）",
	2: "坤宮（南西）",
	3: "震宮（東）",
	4: "巽宮（南東）",
	5: "中宮（中央）",
	6: "乾宮（北西）",
	7: "兌宮（西）",
	8: "艮宮（北東）",
	9: "離宮（南）",
}

var positionDescriptions = [10]string{
	1: "坎宮（冬・水の時期）- 静かに力を蓄える、内省と準備の時",
	2: "坤宮（大地・母性）- 周囲をサポート、基盤を固める時",
	3: "震宮（春・雷）- 新しい挑戦を始める、行動開始の時",
	4: "巽宮（風・調整）- 人間関係を広げ、情報を集める時",
	5: "中宮（中心・停滞）- 慎重に行動、自己を見つめ直す時",
	6: "乾宮（天・権威）- リーダーシップを発揮、目標達成の時",
	7: "兌宮（秋・収穫）- 成果を楽しむ、コミュニケーションの時",
	8: "艮宮（山・変化）- 転換期、新しい方向性を模索する時",
	9: "離宮（夏・頂点）- 最も運気が高まる、表舞台に立つ時",
}

// palaceByOffset maps (star - center) mod 9 to the palace number
var palaceByOffset = [9]int{5, 6, 2, 4, 9, 1, 8, 3, 7}

// mod9 is a modulo that is never negative
func mod9(n int) int {
	return ((n % 9) + 9) % 9
}

// wrap maps a descending 9-cycle value back into 1-9
func wrap(n int) int {
	if n <= 0 {
		n += 9
	}
	return n
}

// HonmeiStar returns the natal star. Dates from January 1 through
// February 3 belong to the previous year.
func HonmeiStar(year, month, day int) int {
	if month == 1 || (month == 2 && day <= 3) {
		year--
	}
	return wrap(baseStar - mod9(year-baseYear))
}

// BoardCenter returns the star at the center of the given year's board
func BoardCenter(year int) int {
	return wrap(boardBaseStar - mod9(year-boardBaseYear))
}

// CurrentPosition returns the palace the natal star occupies in the given year
func CurrentPosition(honmei, currentYear int) int {
	offset := mod9(honmei - BoardCenter(currentYear))
	return palaceByOffset[offset]
}

// StarName returns the name of star 1-9, or "" when out of range
func StarName(star int) string {
	if star < 1 || star > 9 {
		return ""
	}
	return starNames[star]
}

// PalaceName returns the name of palace 1-9, or "" when out of range
func PalaceName(position int) string {
	if position < 1 || position > 9 {
		return ""
	}
	return palaceNames[position]
}

// PositionDescription returns the seasonal reading of a palace
func PositionDescription(position int) string {
	if position < 1 || position > 9 {
		return ""
	}
	return positionDescriptions[position]
}

// Calculate builds the full profile
func Calculate(year, month, day, currentYear int) Profile {
	honmei := HonmeiStar(year, month, day)
	position := CurrentPosition(honmei, currentYear)

	return Profile{
		HonmeiStar:          honmei,
		HonmeiName:          StarName(honmei),
		CurrentPosition:     position,
		PositionName:        PalaceName(position),
		PositionDescription: PositionDescription(position),
	}
}
