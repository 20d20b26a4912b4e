package matcher

import (
	"testing"

	"bank-gl-reconciliation-service/internal/models"
)

func TestAssignDocumentNumber(t *testing.T) {
	engine := testEngine(t)

	withCheck := func(number string) *models.LedgerTransaction {
		return &models.LedgerTransaction{CheckNumber: number}
	}

	tests := []struct {
		name        string
		description string
		index       int
		best        *models.LedgerTransaction
		want        string
	}{
		{
			name:        "check payee with explicit number",
			description: "Sunil check 1692",
			index:       5,
			want:        "1692",
		},
		{
			name:        "check payee uses reserved number",
			description: "Maria Torres",
			index:       1,
			want:        "1696",
		},
		{
			name:        "reserved numbers cycle",
			description: "Maria Torres",
			index:       6,
			want:        "1696",
		},
		{
			name:        "check payee without reserved numbers",
			description: "payment to tch services",
			index:       3,
			want:        "1342",
		},
		{
			name:        "check mention without ledger entry",
			description: "monthly check run",
			index:       4,
			want:        "CHK005",
		},
		{
			name:        "physical check number reused from ledger",
			description: "vendor settlement",
			index:       0,
			best:        withCheck("1702"),
			want:        "1702",
		},
		{
			name:        "check mention with direct deposit reference",
			description: "check payment",
			index:       2,
			best:        withCheck("DD123"),
			want:        "CHK003",
		},
		{
			name:        "direct deposit reference reused",
			description: "vendor settlement",
			index:       0,
			best:        withCheck("DD123"),
			want:        "DD123",
		},
		{
			name:        "no evidence falls back to synthetic reference",
			description: "vendor settlement",
			index:       3,
			want:        "DD004",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.assignDocumentNumber(tt.description, tt.index, tt.best)
			if got != tt.want {
				t.Errorf("assignDocumentNumber(%q, %d) = %q, want %q", tt.description, tt.index, got, tt.want)
			}
		})
	}
}
