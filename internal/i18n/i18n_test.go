package i18n_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"katalog/internal/i18n"
)

func TestT(t *testing.T) {
	testCases := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{"turkish", "tr", i18n.ProductNotFound, "Ürün bulunamadı"},
		{"english", "en", i18n.ProductNotFound, "Product not found"},
		{"region tag", "en-US", i18n.InvalidID, "Invalid product id"},
		{"unknown language falls back to turkish", "de", i18n.FileTooLarge, "Dosya boyutu çok büyük"},
		{"empty language", "", i18n.FetchFailed, "Ürünler getirilemedi"},
		{"unknown key", "en", "noSuchKey", "noSuchKey"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, i18n.T(tc.lang, tc.key))
		})
	}
}

func TestTablesHaveSameKeys(t *testing.T) {
	keys := []string{
		i18n.ProductNotFound, i18n.InvalidBody, i18n.InvalidID, i18n.FetchFailed,
		i18n.SaveFailed, i18n.UpdateFailed, i18n.DeleteFailed, i18n.ValidationFailed,
		i18n.FileMissing, i18n.FileUnsupported, i18n.FileTooLarge, i18n.UploadFailed,
		i18n.InternalError, i18n.FieldInvalid, i18n.NameError, i18n.BrandError,
		i18n.ModelError, i18n.ColorError, i18n.CategoryError, i18n.PriceError,
		i18n.PriceMaxError, i18n.StockError, i18n.StockMaxError, i18n.DescriptionError,
		i18n.ImageError, i18n.RouteNotFound,
	}
	for _, lang := range i18n.Languages() {
		for _, key := range keys {
			assert.NotEqual(t, key, i18n.T(lang, key), "missing %s message for %s", lang, key)
		}
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "en", i18n.Normalize(" EN_gb "))
	assert.Equal(t, "tr", i18n.Normalize("tr-TR"))
	assert.Equal(t, "tr", i18n.Normalize("fr"))
}

func TestFromAcceptLanguage(t *testing.T) {
	assert.Equal(t, "en", i18n.FromAcceptLanguage("en-US,en;q=0.9,tr;q=0.8"))
	assert.Equal(t, "tr", i18n.FromAcceptLanguage("de-DE, tr;q=0.7, en;q=0.5"))
	assert.Equal(t, "tr", i18n.FromAcceptLanguage("fr, de"))
	assert.Equal(t, "tr", i18n.FromAcceptLanguage(""))
}
