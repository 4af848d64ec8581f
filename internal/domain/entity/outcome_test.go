package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutcomes_FixedSet(t *testing.T) {
	require.Equal(t, []Outcome{"ดิบ", "พร้อมตัด", "สุก", "ไม่สามารถระบุได้ กรุณาดำเนินการใหม่"}, Outcomes())
	for _, o := range Outcomes() {
		require.True(t, o.Valid())
	}
	require.False(t, Outcome("ripe").Valid())
	require.False(t, Outcome("").Valid())
}

func TestOutcomes_ReturnsCopy(t *testing.T) {
	got := Outcomes()
	got[0] = "x"
	require.Equal(t, OutcomeUnripe, Outcomes()[0])
}

func TestParseLanguage(t *testing.T) {
	l, err := ParseLanguage(" EN ")
	require.NoError(t, err)
	require.Equal(t, LanguageEnglish, l)

	l, err = ParseLanguage("th")
	require.NoError(t, err)
	require.Equal(t, LanguageThai, l)

	_, err = ParseLanguage("fr")
	require.Error(t, err)
}
