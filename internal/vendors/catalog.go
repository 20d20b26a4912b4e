package vendors

import "bank-gl-reconciliation-service/internal/models"

// VendorProfile aggregates what the ledger says about one vendor ID.
type VendorProfile struct {
	ID         string
	Name       string
	GLAccounts map[string]bool
	EntryCount int
}

// Catalog is the vendor population observed in a ledger batch, keyed by
// vendor ID. Entries without a vendor ID are not cataloged.
type Catalog map[string]*VendorProfile

// BuildCatalog scans ledger entries and collects the distinct vendors they
// reference. The first entry for a vendor fixes its name; every entry
// contributes its G/L account.
func BuildCatalog(ledger []models.LedgerTransaction) Catalog {
	catalog := make(Catalog)
	for i := range ledger {
		tx := &ledger[i]
		if tx.VendorID == "" {
			continue
		}
		profile, ok := catalog[tx.VendorID]
		if !ok {
			name := tx.VendorName
			if name == "" {
				name = tx.VendorID
			}
			profile = &VendorProfile{
				ID:         tx.VendorID,
				Name:       name,
				GLAccounts: make(map[string]bool),
			}
			catalog[tx.VendorID] = profile
		}
		if tx.GLAccount != "" {
			profile.GLAccounts[tx.GLAccount] = true
		}
		profile.EntryCount++
	}
	return catalog
}

// Size returns the number of distinct vendors in the catalog.
func (c Catalog) Size() int {
	return len(c)
}
