package emoji

import "testing"

func TestGetEmoji(t *testing.T) {
	t.Cleanup(func() { SetEmojiDisabled(false) })

	SetEmojiDisabled(false)
	if got := GetEmoji("kigaku"); got != "⭐" {
		t.Errorf("GetEmoji(kigaku) = %q", got)
	}

	SetEmojiDisabled(true)
	if !IsEmojiDisabled() {
		t.Fatal("expected emoji to be disabled")
	}
	if got := GetEmoji("kigaku"); got != "[KI]" {
		t.Errorf("fallback = %q", got)
	}
	if got := Label("restart", "New analysis"); got != "[NEW] New analysis" {
		t.Errorf("Label() = %q", got)
	}
}

func TestGetEmoji_UnknownKey(t *testing.T) {
	if got := GetEmoji("no-such-key"); got != "[?]" {
		t.Errorf("GetEmoji(unknown) = %q", got)
	}
}
