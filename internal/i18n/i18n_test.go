package i18n

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	"thurianx/internal/domain/entity"
)

func TestLoad_BothTablesComplete(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, lang := range []entity.Language{entity.LanguageThai, entity.LanguageEnglish} {
		texts := c.For(lang)
		v := reflect.ValueOf(texts)
		for i := 0; i < v.NumField(); i++ {
			require.NotEmpty(t, v.Field(i).String(), "%s: %s is empty", lang, v.Type().Field(i).Name)
		}
	}
}

func TestLoad_LanguageSpecificLabels(t *testing.T) {
	c := MustLoad()
	require.Equal(t, "Durian Ripeness Detection Powered by AI", c.For(entity.LanguageEnglish).Subtitle)
	require.Equal(t, "ระบบตรวจสอบระดับการสุกของทุเรียนด้วย AI", c.For(entity.LanguageThai).Subtitle)
	require.Equal(t, "EN", c.For(entity.LanguageThai).Toggle)
	require.Equal(t, "TH", c.For(entity.LanguageEnglish).Toggle)
}

func TestFor_FallsBackToThai(t *testing.T) {
	c := MustLoad()
	require.Equal(t, c.For(entity.LanguageThai), c.For(entity.Language("fr")))
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("th: {title: x}\n"))
	require.ErrorContains(t, err, "missing string table")

	_, err = Parse([]byte("th: {}\nen: {}\nfr: {}\n"))
	require.Error(t, err)

	_, err = Parse([]byte(":::"))
	require.Error(t, err)
}
