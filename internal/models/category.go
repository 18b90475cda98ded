package models

// Categories lists the product categories offered by the catalog forms.
// The store does not enforce membership.
var Categories = []string{
	"Mobilya",
	"Dekorasyon",
	"Aydınlatma",
	"Giyim",
	"Elektronik",
	"Ev & Yaşam",
	"Spor & Outdoor",
	"Kitap & Hobi",
	"Otomotiv",
	"Bahçe & Tarım",
}
