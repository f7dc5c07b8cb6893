// Package endpoints knows the Inventio smartapi endpoint catalogue and how
// endpoint names are compared.
package endpoints

import "strings"

// All read endpoints ('types') defined for the Inventio smartapi.
var All = []string{
	"AccountScheduleNames-GET",
	"AccountScheduleResult-GET",
	"AccountingPeriod-GET",
	"BankAccount-GET",
	"CL-GET",
	"CashReceiptJournalList-GET",
	"ColumnLayoutNames-GET",
	"CompanyInformation-GET",
	"ConfigTemplateHeader-GET",
	"Currency-GET",
	"Customer-GET",
	"CustomerLedgerEntry-GET",
	"CustomerNumberList-GET",
	"CustomerPostingGroup-GET",
	"DeferralTemplates-GET",
	"DimensionMandatory-GET",
	"DimensionSetEntry-GET",
	"DimensionValue-GET",
	"GLAccount-GET",
	"GLBudgetEntry-GET",
	"GLEntry-GET",
	"GenBusinessPostingGroup-GET",
	"GenProductPostingGroup-GET",
	"GeneralJournal-GET",
	"GeneralJournalBatchName-GET",
	"GeneralJournalTemplateName-GET",
	"GeneralLedgerSetup-GET",
	"InventoryPostingGroup-GET",
	"Item-GET",
	"ItemCrossReference-GET",
	"ItemLedgerEntry-GET",
	"ItemPicture-GET",
	"ItemStock-GET",
	"ItemUnitOfMeasure-GET",
	"Job-GET",
	"JobTask-GET",
	"PaymentMethod-GET",
	"PaymentTerms-GET",
	"PurchOrder-GET",
	"PurchOrderLine-GET",
	"PurchasePrice-GET",
	"Resource-GET",
	"ResourceCost-GET",
	"ResourcePrice-GET",
	"SLD-GET",
	"SMARTexpense-GET",
	"SMARTexpenseApproval-GET",
	"SalesCrMem-GET",
	"SalesCrMemPDF-GET",
	"SalesInvoiceNumberList-GET",
	"SalesInvoiceOIOUBL-GET",
	"SalesInvoicePDF-GET",
	"SalesInvoices-GET",
	"SalesOrder-GET",
	"SalesOrderLine-GET",
	"SalesPrice-GET",
	"ShipmentMethod-GET",
	"UnitsOfMeasure-GET",
	"Variant-GET",
	"Vat-GET",
	"Vendor-GET",
	"VendorBankAcc-GET",
	"VendorLedgerEntry-GET",
	"VendorPostingGroup-GET",
	"Worktype-GET",
}

// Normalize maps an endpoint name to its canonical comparison key.
//
//	"GLEntry-GET" -> "GLENTRY", true
//	"glentry"     -> "GLENTRY", true
//	"Item-POST"   -> "", false (write endpoints are not supported)
func Normalize(name string) (string, bool) {
	upper := strings.ToUpper(name)
	if strings.HasSuffix(upper, "-POST") {
		return "", false
	}
	return strings.TrimSuffix(upper, "-GET"), true
}

// Known reports whether name refers to an endpoint in the catalogue.
func Known(name string) bool {
	key, ok := Normalize(name)
	if !ok {
		return false
	}
	for _, e := range All {
		k, _ := Normalize(e)
		if k == key {
			return true
		}
	}
	return false
}
