package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslatorFormatsArguments(t *testing.T) {
	translate := NewTranslator("en")

	assert.Equal(t, "Bill of lading number: BOL-7", translate("bill_of_lading.message.number", "BOL-7"))
	assert.Equal(t, "Attached 2 bill of lading image(s)", translate("bill_of_lading.message.images", 2))
}

func TestTranslatorVietnamese(t *testing.T) {
	translate := NewTranslator("vi-VN")

	assert.Equal(t, "Số phiếu gửi hàng: BOL-7", translate("bill_of_lading.message.number", "BOL-7"))
	assert.Equal(t, "Đã nhận phiếu gửi hàng", translate("bill_of_lading.message.received"))
}

func TestTranslatorFallsBackToEnglish(t *testing.T) {
	for _, locale := range []string{"", "fr", "de-DE", "garbage"} {
		translate := NewTranslator(locale)
		assert.Equal(t, "Bill of lading has been received", translate("bill_of_lading.message.received"), "locale %q", locale)
	}
}

func TestTranslatorUnknownKeyPassesThrough(t *testing.T) {
	translate := NewTranslator("en")
	assert.Equal(t, "no.such.key", translate("no.such.key"))
}
