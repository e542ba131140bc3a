package i18n

var catalogs = map[string]map[string]string{
	"en": {
		"bill_of_lading.message.number":   "Bill of lading number: %s",
		"bill_of_lading.message.notes":    "Notes: %s",
		"bill_of_lading.message.received": "Bill of lading has been received",
		"bill_of_lading.message.images":   "Attached %d bill of lading image(s)",
	},
	"vi": {
		"bill_of_lading.message.number":   "Số phiếu gửi hàng: %s",
		"bill_of_lading.message.notes":    "Ghi chú: %s",
		"bill_of_lading.message.received": "Đã nhận phiếu gửi hàng",
		"bill_of_lading.message.images":   "Đính kèm %d hình phiếu gửi hàng",
	},
}
