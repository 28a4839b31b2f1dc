package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStripsDiacritics(t *testing.T) {
	tests := map[string]string{
		"Bệnh Đạo Ôn Lá Lúa":  "benh dao on la lua",
		"vàng lá, xoăn ngọn!": "vang la, xoan ngon!",
		"ĐỐM NÂU":             "dom nau",
		"thời tiết":           "thoi tiet",
		"already plain ascii": "already plain ascii",
		"":                    "",
	}

	for input, want := range tests {
		assert.Equal(t, want, Normalize(input), "input %q", input)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Bệnh đạo ôn lá lúa",
		"Chào bác, lúa tôi bị đạo ôn!",
		"đđĐĐ",
		"",
		"asdkj qwru",
	}

	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestTokens(t *testing.T) {
	got := Tokens("lua toi bi dao on.")
	assert.Equal(t, []string{"lua", "toi", "bi", "dao", "on"}, got)

	got = Tokens("  Hinh thoi,  vien NAU!  ")
	assert.Equal(t, []string{"hinh", "thoi", "vien", "nau"}, got)

	assert.Empty(t, Tokens("   "))
}

func TestKeywordsFiltersStopWordsAndShortTokens(t *testing.T) {
	got := Keywords("Lúa tôi bị đạo ôn")
	assert.Equal(t, []string{"lua", "dao"}, got)
}

func TestKeywordsDropsGenericDiseaseWord(t *testing.T) {
	got := Keywords("lá có vết bệnh hình thoi viền nâu")
	assert.Equal(t, []string{"vet", "hinh", "thoi", "vien", "nau"}, got)
}

func TestKeywordsEmptyWhenNothingUsable(t *testing.T) {
	assert.Empty(t, Keywords("tôi bị"))
	assert.Empty(t, Keywords(""))
}

func TestKeywordSet(t *testing.T) {
	set := KeywordSet("lúa bị đạo ôn")
	assert.Contains(t, set, "lua")
	assert.Contains(t, set, "dao")
	assert.NotContains(t, set, "bi")
}
