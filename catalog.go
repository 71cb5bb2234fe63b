package receiptprefs

// Catalog categories.
const (
	CategoryGeneral  = "General"
	CategoryReceipts = "Receipts"
	CategoryOutput   = "Output"
	CategoryEmail    = "Email"
	CategoryLayout   = "Layout"
	CategoryDistance = "Distance"
	CategoryPdf      = "Pdf"
)

// Keys of the receipt preference catalog. They match the keys used in
// organization preference payloads.
const (
	KeyDefaultReportDuration         = "TripDuration"
	KeyDefaultCurrency               = "isocurr"
	KeyDateSeparator                 = "dateseparator"
	KeyIncludeCostCenter             = "trackcostcenter"
	KeyPredictCategories             = "PredictCats"
	KeyMatchNameToCategory           = "MatchNameCats"
	KeyMatchCommentToCategory        = "MatchCommentCats"
	KeyOnlyIncludeReimbursable       = "OnlyIncludeExpensable"
	KeyReceiptsDefaultAsReimbursable = "ExpensableDefault"
	KeyIncludeTaxField               = "IncludeTaxField"
	KeyDefaultTaxPercentage          = "TaxPercentage"
	KeyUsePreTaxPrice                = "PreTax"
	KeyEnableAutoCompleteSuggestions = "EnableAutoCompleteSuggestions"
	KeyMinimumReceiptPrice           = "MinReceiptPrice"
	KeyDefaultToFirstReportDate      = "DefaultToFirstReportDate"
	KeyShowReceiptID                 = "ShowReceiptID"
	KeyUseFullPage                   = "UseFullPage"
	KeyUsePaymentMethods             = "UsePaymentMethods"
	KeyIncludeCSVHeaders             = "IncludeCSVHeaders"
	KeyPrintByIDPhotoKey             = "PrintByIDPhotoKey"
	KeyPrintCommentByPhoto           = "PrintCommentByPhoto"
	KeyEmailTo                       = "EmailTo"
	KeyEmailCC                       = "EmailCC"
	KeyEmailBCC                      = "EmailBCC"
	KeyEmailSubject                  = "EmailSubject"
	KeySaveBW                        = "SaveBW"
	KeyLayoutIncludeReceiptDate      = "LayoutIncludeReceiptDate"
	KeyLayoutIncludeReceiptCategory  = "LayoutIncludeReceiptCategory"
	KeyLayoutIncludeReceiptPicture   = "LayoutIncludeReceiptPicture"
	KeyMileageTotalInReport          = "MileageTotalInReport"
	KeyMileageRate                   = "MileageRate"
	KeyMileagePrintTable             = "MileagePrintTable"
	KeyMileageAddToPDF               = "MileageAddToPDF"
	KeyPdfFooterString               = "PdfFooterString"
)

var catalog = []PreferenceDefinition{
	{Key: KeyDefaultReportDuration, Type: IntType, DefaultValue: 3, Category: CategoryGeneral, ValidateFunc: nonNegativeInt},
	{Key: KeyDefaultCurrency, Type: StringType, DefaultValue: "USD", Category: CategoryGeneral},
	{Key: KeyDateSeparator, Type: StringType, DefaultValue: "/", Category: CategoryGeneral},
	{Key: KeyIncludeCostCenter, Type: BoolType, DefaultValue: false, Category: CategoryGeneral},
	{Key: KeyPredictCategories, Type: BoolType, DefaultValue: true, Category: CategoryReceipts},
	{Key: KeyMatchNameToCategory, Type: BoolType, DefaultValue: false, Category: CategoryReceipts},
	{Key: KeyMatchCommentToCategory, Type: BoolType, DefaultValue: false, Category: CategoryReceipts},
	{Key: KeyOnlyIncludeReimbursable, Type: BoolType, DefaultValue: false, Category: CategoryReceipts},
	{Key: KeyReceiptsDefaultAsReimbursable, Type: BoolType, DefaultValue: true, Category: CategoryReceipts},
	{Key: KeyIncludeTaxField, Type: BoolType, DefaultValue: false, Category: CategoryReceipts},
	{Key: KeyDefaultTaxPercentage, Type: FloatType, DefaultValue: 0.0, Category: CategoryReceipts},
	{Key: KeyUsePreTaxPrice, Type: BoolType, DefaultValue: true, Category: CategoryReceipts},
	{Key: KeyEnableAutoCompleteSuggestions, Type: BoolType, DefaultValue: true, Category: CategoryReceipts},
	{Key: KeyMinimumReceiptPrice, Type: FloatType, DefaultValue: 0.0, Category: CategoryReceipts},
	{Key: KeyDefaultToFirstReportDate, Type: BoolType, DefaultValue: false, Category: CategoryReceipts},
	{Key: KeyShowReceiptID, Type: BoolType, DefaultValue: false, Category: CategoryReceipts},
	{Key: KeyUseFullPage, Type: BoolType, DefaultValue: false, Category: CategoryReceipts},
	{Key: KeyUsePaymentMethods, Type: BoolType, DefaultValue: false, Category: CategoryReceipts},
	{Key: KeyIncludeCSVHeaders, Type: BoolType, DefaultValue: true, Category: CategoryOutput},
	{Key: KeyPrintByIDPhotoKey, Type: BoolType, DefaultValue: false, Category: CategoryOutput},
	{Key: KeyPrintCommentByPhoto, Type: BoolType, DefaultValue: false, Category: CategoryOutput},
	{Key: KeyEmailTo, Type: StringType, DefaultValue: "", Category: CategoryEmail, Sensitive: true},
	{Key: KeyEmailCC, Type: StringType, DefaultValue: "", Category: CategoryEmail, Sensitive: true},
	{Key: KeyEmailBCC, Type: StringType, DefaultValue: "", Category: CategoryEmail, Sensitive: true},
	{Key: KeyEmailSubject, Type: StringType, DefaultValue: "SmartReceipts - %REPORT_NAME%", Category: CategoryEmail},
	{Key: KeySaveBW, Type: BoolType, DefaultValue: false, Category: CategoryOutput},
	{Key: KeyLayoutIncludeReceiptDate, Type: BoolType, DefaultValue: true, Category: CategoryLayout},
	{Key: KeyLayoutIncludeReceiptCategory, Type: BoolType, DefaultValue: false, Category: CategoryLayout},
	{Key: KeyLayoutIncludeReceiptPicture, Type: BoolType, DefaultValue: true, Category: CategoryLayout},
	{Key: KeyMileageTotalInReport, Type: BoolType, DefaultValue: false, Category: CategoryDistance},
	{Key: KeyMileageRate, Type: FloatType, DefaultValue: 0.0, Category: CategoryDistance},
	{Key: KeyMileagePrintTable, Type: BoolType, DefaultValue: false, Category: CategoryDistance},
	{Key: KeyMileageAddToPDF, Type: BoolType, DefaultValue: false, Category: CategoryDistance},
	{Key: KeyPdfFooterString, Type: StringType, DefaultValue: "Report generated using Smart Receipts", Category: CategoryPdf},
}

// Catalog returns the receipt preference definitions in display order.
// The returned slice is a copy.
func Catalog() []PreferenceDefinition {
	defs := make([]PreferenceDefinition, len(catalog))
	copy(defs, catalog)
	return defs
}

func nonNegativeInt(v interface{}) error {
	if n, ok := v.(int); ok && n < 0 {
		return errNegative
	}
	return nil
}
