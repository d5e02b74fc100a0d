package emoji

import "sync/atomic"

// emojiMap holds [emoji, fallback] pairs
var emojiMap = map[string][2]string{
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"star":       {"🔮", "[*]"},
	"profile":    {"📊", "[PRF]"},
	"numerology": {"🔢", "[NUM]"},
	"kigaku":     {"⭐", "[KI]"},
	"report":     {"📜", "[RPT]"},
	"person":     {"👤", "[NAME]"},
	"calendar":   {"📅", "[DATE]"},
	"loading":    {"⏳", "[...]"},
	"restart":    {"🔄", "[NEW]"},
	"help":       {"❓", "[?]"},
	"target":     {"🎯", "[>]"},
	"door":       {"🚪", "[EXIT]"},
	"server":     {"🌐", "[SRV]"},
	"brain":      {"🧠", "[AI]"},
	"watch":      {"👀", "[WATCH]"},
}

var emojiDisabled atomic.Bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled.Store(disabled)
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled.Load()
}

// GetEmoji returns emoji or fallback based on the no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled.Load() {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// Label prefixes text with the symbol for key
func Label(key, text string) string {
	return GetEmoji(key) + " " + text
}
