package parsers

import (
	"io"
	"strings"

	"bank-gl-reconciliation-service/internal/models"
	"bank-gl-reconciliation-service/pkg/errors"
	"bank-gl-reconciliation-service/pkg/logger"
)

// Ledger export column names, matching the upload file layout.
const (
	ColVendorID            = "Vendor ID"
	ColVendorName          = "Vendor Name"
	ColCheckName           = "Check Name"
	ColCheckAddressLine1   = "Check Address-Line One"
	ColCheckAddressLine2   = "Check Address-Line Two"
	ColCheckCity           = "Check City"
	ColCheckState          = "Check State"
	ColCheckZipcode        = "Check Zipcode"
	ColCheckCountry        = "Check Country"
	ColCheckNumber         = "Check Number"
	ColDate                = "Date"
	ColMemo                = "Memo"
	ColCashAccount         = "Cash Account"
	ColTotalPaid           = "Total Paid on Invoice(s)"
	ColDiscountAccount     = "Discount Account"
	ColPrepayment          = "Prepayment"
	ColCustomerPayment     = "Customer Payment"
	ColAPDateCleared       = "AP Date Cleared in Bank Rec"
	ColDetailedPayments    = "Detailed Payments"
	ColNumDistributions    = "Number of Distributions"
	ColInvoicePaid         = "Invoice Paid"
	ColDiscountAmount      = "Discount Amount"
	ColQuantity            = "Quantity"
	ColStockingQuantity    = "Stocking Quantity"
	ColItemID              = "Item ID"
	ColSerialNumber        = "Serial Number"
	ColUMID                = "U/M ID"
	ColUMStockingUnits     = "U/M No. of Stocking Units"
	ColDescription         = "Description"
	ColGLAccount           = "G/L Account"
	ColUnitPrice           = "Unit Price"
	ColStockingUnitPrice   = "Stocking Unit Price"
	ColUPCSKU              = "UPC / SKU"
	ColWeight              = "Weight"
	ColAmount              = "Amount"
	ColJobID               = "Job ID"
	ColUsedForReimbursable = "Used for Reimbursable Expense"
	ColTransactionPeriod   = "Transaction Period"
	ColTransactionNumber   = "Transaction Number"
	ColVoidedByTransaction = "Voided by Transaction"
	ColRecurNumber         = "Recur Number"
	ColRecurFrequency      = "Recur Frequency"
	ColPaymentMethod       = "Payment Method"
)

// LedgerParser reads general ledger CSV exports.
type LedgerParser struct {
	*BaseParser
}

// NewLedgerParser creates a LedgerParser with the given parse configuration.
func NewLedgerParser(config *ParseConfig) *LedgerParser {
	return &LedgerParser{BaseParser: NewBaseParser(config)}
}

// requiredLedgerHeaders is the minimal column set a ledger export must carry.
// Every other column degrades to an empty field when absent.
func requiredLedgerHeaders() []string {
	return []string{ColVendorID, ColDescription, ColAmount, ColDate}
}

// ParseLedgerFile parses a ledger CSV export from disk.
func (lp *LedgerParser) ParseLedgerFile(filePath string) ([]models.LedgerTransaction, *ParseStats, error) {
	file, reader, err := lp.OpenFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	parseCtx := NewParseContext()
	stats := &ParseStats{}

	if err := lp.ReadHeaders(reader, parseCtx, filePath, requiredLedgerHeaders()); err != nil {
		return nil, stats, err
	}

	var transactions []models.LedgerTransaction
	for {
		record, err := lp.ReadRecord(reader, parseCtx)
		if err != nil {
			if err == io.EOF {
				break
			}
			stats.AddError(errors.ParseError(errors.CodeInvalidData, filePath,
				parseCtx.LineNumber+1, "", "", err))
			continue
		}

		stats.RecordsParsed++
		transactions = append(transactions, ledgerTransactionFromRecord(record, parseCtx))
		stats.RecordsValid++
	}
	stats.TotalLines = parseCtx.LineNumber

	if len(transactions) == 0 {
		return nil, stats, errors.ParseError(errors.CodeInvalidData, filePath,
			parseCtx.LineNumber, "", "", nil).
			WithSuggestion("ensure the ledger file contains data rows below the header")
	}

	lp.logger.WithFields(logger.Fields{
		"file_path": filePath,
		"records":   len(transactions),
	}).Info("Parsed ledger file")

	return transactions, stats, nil
}

func ledgerTransactionFromRecord(record []string, parseCtx *ParseContext) models.LedgerTransaction {
	get := func(col string) string { return parseCtx.GetFieldValue(record, col) }

	return models.LedgerTransaction{
		VendorID:            get(ColVendorID),
		VendorName:          get(ColVendorName),
		CheckName:           get(ColCheckName),
		CheckAddressLine1:   get(ColCheckAddressLine1),
		CheckAddressLine2:   get(ColCheckAddressLine2),
		CheckCity:           get(ColCheckCity),
		CheckState:          get(ColCheckState),
		CheckZipcode:        get(ColCheckZipcode),
		CheckCountry:        get(ColCheckCountry),
		CheckNumber:         get(ColCheckNumber),
		Date:                get(ColDate),
		Memo:                get(ColMemo),
		CashAccount:         get(ColCashAccount),
		TotalPaid:           get(ColTotalPaid),
		DiscountAccount:     get(ColDiscountAccount),
		Prepayment:          get(ColPrepayment),
		CustomerPayment:     get(ColCustomerPayment),
		APDateCleared:       get(ColAPDateCleared),
		DetailedPayments:    get(ColDetailedPayments),
		NumDistributions:    get(ColNumDistributions),
		InvoicePaid:         get(ColInvoicePaid),
		DiscountAmount:      get(ColDiscountAmount),
		Quantity:            get(ColQuantity),
		StockingQuantity:    get(ColStockingQuantity),
		ItemID:              get(ColItemID),
		SerialNumber:        get(ColSerialNumber),
		UMID:                get(ColUMID),
		UMStockingUnits:     get(ColUMStockingUnits),
		Description:         get(ColDescription),
		GLAccount:           get(ColGLAccount),
		UnitPrice:           get(ColUnitPrice),
		StockingUnitPrice:   get(ColStockingUnitPrice),
		UPCSKU:              get(ColUPCSKU),
		Weight:              get(ColWeight),
		Amount:              models.ParseAmountOrZero(get(ColAmount)),
		JobID:               get(ColJobID),
		UsedForReimbursable: get(ColUsedForReimbursable),
		TransactionPeriod:   get(ColTransactionPeriod),
		TransactionNumber:   get(ColTransactionNumber),
		VoidedByTransaction: get(ColVoidedByTransaction),
		RecurNumber:         get(ColRecurNumber),
		RecurFrequency:      get(ColRecurFrequency),
		PaymentMethod:       get(ColPaymentMethod),
		OriginalRow:         strings.Join(record, ","),
	}
}
