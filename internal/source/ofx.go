package source

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/Veraticus/painel/internal/model"
)

// Columns produced for bank statements, matching the headers the bank
// reconciliation page expects from spreadsheet extracts.
const (
	OFXDate        = "Data"
	OFXDescription = "Descrição"
	OFXAmount      = "Valor"
	OFXAccount     = "Conta Bancária"
	OFXType        = "Tipo"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagRegex  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in bank OFX exports.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// SGML tags missing their closing bracket
	return openTagRegex.ReplaceAllString(content, "$1>")
}

// ReadOFX parses an OFX/QFX statement into one row per transaction.
// Amounts keep their sign: credits positive, debits negative.
func ReadOFX(r io.Reader) (model.Dataset, error) {
	content, err := readAll(r)
	if err != nil {
		return model.Dataset{}, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(content)))
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	ds := model.Dataset{Columns: []string{OFXDate, OFXDescription, OFXAmount, OFXAccount, OFXType}}
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		for _, tx := range stmt.BankTranList.Transactions {
			ds.Rows = append(ds.Rows, ofxRow(tx, string(stmt.BankAcctFrom.AcctID)))
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		for _, tx := range stmt.BankTranList.Transactions {
			ds.Rows = append(ds.Rows, ofxRow(tx, string(stmt.CCAcctFrom.AcctID)))
		}
	}

	slog.Debug("Parsed OFX file",
		"transactions", ds.Len(),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return ds, nil
}

func ofxRow(tx ofxgo.Transaction, account string) model.Row {
	amount, _ := tx.TrnAmt.Float64()
	return model.Row{
		OFXDate:        tx.DtPosted.Time,
		OFXDescription: ofxDescription(tx),
		OFXAmount:      amount,
		OFXAccount:     account,
		OFXType:        tx.TrnType.String(),
	}
}

// ofxDescription prefers PAYEE, then NAME, then MEMO when NAME is generic.
func ofxDescription(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && (name == "" || isGenericDescription(name)) {
		name = strings.TrimSpace(string(tx.Memo))
	}
	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "PAYMENT", "PIX", "TED", "DOC", "TRANSFERENCIA", "PAGAMENTO":
		return true
	}
	return false
}
