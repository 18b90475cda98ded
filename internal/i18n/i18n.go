// Package i18n holds the static Turkish and English message tables used in API responses.
package i18n

import "strings"

// Supported languages.
const (
	Turkish = "tr"
	English = "en"

	Default = Turkish
)

// Message keys.
const (
	ProductNotFound  = "productNotFound"
	InvalidBody      = "invalidBody"
	InvalidID        = "invalidId"
	FetchFailed      = "fetchFailed"
	SaveFailed       = "saveFailed"
	UpdateFailed     = "updateFailed"
	DeleteFailed     = "deleteFailed"
	ValidationFailed = "validationFailed"
	FileMissing      = "fileMissing"
	FileUnsupported  = "fileUnsupported"
	FileTooLarge     = "fileTooLarge"
	UploadFailed     = "uploadFailed"
	InternalError    = "internalError"
	FieldInvalid     = "fieldInvalid"
	NameError        = "productNameError"
	BrandError       = "brandError"
	ModelError       = "modelError"
	ColorError       = "colorError"
	CategoryError    = "productCategoryError"
	PriceError       = "productPriceError"
	PriceMaxError    = "priceMaxError"
	StockError       = "stockError"
	StockMaxError    = "stockMaxError"
	DescriptionError = "descriptionError"
	ImageError       = "imageError"
	RouteNotFound    = "routeNotFound"
)

var messages = map[string]map[string]string{
	Turkish: {
		ProductNotFound:  "Ürün bulunamadı",
		InvalidBody:      "Geçersiz istek gövdesi",
		InvalidID:        "Geçersiz ürün kimliği",
		FetchFailed:      "Ürünler getirilemedi",
		SaveFailed:       "Ürün kaydedilemedi",
		UpdateFailed:     "Güncelleme başarısız",
		DeleteFailed:     "Silme başarısız",
		ValidationFailed: "Doğrulama başarısız",
		FileMissing:      "Dosya bulunamadı",
		FileUnsupported:  "Desteklenmeyen dosya tipi",
		FileTooLarge:     "Dosya boyutu çok büyük",
		UploadFailed:     "Upload hatası",
		InternalError:    "Sunucu hatası",
		FieldInvalid:     "Geçersiz değer",
		NameError:        "Ürün adı gerekli",
		BrandError:       "Marka gerekli",
		ModelError:       "Model gerekli",
		ColorError:       "Renk gerekli",
		CategoryError:    "Kategori seçiniz",
		PriceError:       "Geçerli bir fiyat giriniz",
		PriceMaxError:    "Fiyat çok yüksek",
		StockError:       "Geçerli bir stok giriniz",
		StockMaxError:    "Stok çok yüksek",
		DescriptionError: "Açıklama çok uzun",
		ImageError:       "Geçersiz görsel adresi",
		RouteNotFound:    "Kaynak bulunamadı",
	},
	English: {
		ProductNotFound:  "Product not found",
		InvalidBody:      "Invalid request body",
		InvalidID:        "Invalid product id",
		FetchFailed:      "Could not fetch products",
		SaveFailed:       "Could not save product",
		UpdateFailed:     "Update failed",
		DeleteFailed:     "Delete failed",
		ValidationFailed: "Validation failed",
		FileMissing:      "No file uploaded",
		FileUnsupported:  "Unsupported file type",
		FileTooLarge:     "File is too large",
		UploadFailed:     "Upload failed",
		InternalError:    "Internal server error",
		FieldInvalid:     "Invalid value",
		NameError:        "Product name is required",
		BrandError:       "Brand is required",
		ModelError:       "Model is required",
		ColorError:       "Color is required",
		CategoryError:    "Please select a category",
		PriceError:       "Enter a valid price",
		PriceMaxError:    "Price is too high",
		StockError:       "Enter a valid stock",
		StockMaxError:    "Stock is too high",
		DescriptionError: "Description is too long",
		ImageError:       "Invalid image path",
		RouteNotFound:    "Resource not found",
	},
}

// Languages returns the supported language codes, default first.
func Languages() []string {
	return []string{Turkish, English}
}

// Supported reports whether lang (or its primary subtag) has a message table.
func Supported(lang string) bool {
	_, ok := messages[primary(lang)]
	return ok
}

// FromAcceptLanguage picks the first supported language listed in an
// Accept-Language header value, in the order the client listed them.
func FromAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.SplitN(part, ";", 2)[0]
		if Supported(tag) {
			return primary(tag)
		}
	}
	return Default
}

func primary(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i >= 0 {
		lang = lang[:i]
	}
	return lang
}

// Normalize maps a language tag such as "en-US" to a supported language,
// or returns Default.
func Normalize(lang string) string {
	if Supported(lang) {
		return primary(lang)
	}
	return Default
}

// T looks key up in the table for lang, falling back to the default language
// and finally to the key itself.
func T(lang, key string) string {
	if msg, ok := messages[Normalize(lang)][key]; ok {
		return msg
	}
	if msg, ok := messages[Default][key]; ok {
		return msg
	}
	return key
}
