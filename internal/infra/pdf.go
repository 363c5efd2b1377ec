package infra

// pdf.go — document generation using go-pdf/fpdf.
// Two A4 documents: the bon de réception (receiving record archived with the
// supplier's delivery note) and the client facture.

import (
	"fmt"
	"os"
	"path/filepath"

	"stationops/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateBonReceptionPDF renders the receiving record for one delivery event.
// Returns the absolute path to the generated file.
func GenerateBonReceptionPDF(reception *model.BonReception, commande *model.BonCommande, stationName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reception_%s.pdf", reception.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, stationName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 7, "Bon de réception", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Commande : %s", commande.Numero), "", 1, "L", false, 0, "")
	if commande.Fournisseur != nil {
		pdf.CellFormat(contentW, 6, fmt.Sprintf("Fournisseur : %s", commande.Fournisseur.RaisonSociale), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 6, fmt.Sprintf("BL transporteur : %s", reception.NumeroBL), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Date : %s", reception.DateReception.Format("02/01/2006")), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	col1 := contentW * 0.55
	col2 := contentW * 0.25
	col3 := contentW * 0.20

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Produit", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Quantité reçue", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, "Sur-réception", "B", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range reception.Lignes {
		flag := ""
		if l.SurReception {
			flag = "oui"
		}
		pdf.CellFormat(col1, 7, l.NomProduit, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 7, l.Quantite.StringFixed(3), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 7, flag, "", 1, "C", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Document généré automatiquement — à archiver avec le BL fournisseur.", "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}

// GenerateFacturePDF renders a client invoice.
func GenerateFacturePDF(facture *model.Facture, stationName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("facture_%s.pdf", facture.Numero)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, stationName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 7, fmt.Sprintf("Facture %s", facture.Numero), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	if facture.Client != nil {
		pdf.CellFormat(contentW, 6, fmt.Sprintf("Client : %s", facture.Client.NomAffichage()), "", 1, "L", false, 0, "")
		if facture.Client.NIU != nil {
			pdf.CellFormat(contentW, 6, fmt.Sprintf("NIU : %s", *facture.Client.NIU), "", 1, "L", false, 0, "")
		}
	}
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Date d'émission : %s", facture.DateEmise.Format("02/01/2006")), "", 1, "L", false, 0, "")
	if facture.Echeance != nil {
		pdf.CellFormat(contentW, 6, fmt.Sprintf("Échéance : %s", facture.Echeance.Format("02/01/2006")), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	col1 := contentW * 0.40
	col2 := contentW * 0.15
	col3 := contentW * 0.20
	col4 := contentW * 0.25

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "Libellé", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Qté", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, "PU HT", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Montant TTC", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range facture.Lignes {
		pdf.CellFormat(col1, 7, l.Libelle, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 7, l.Quantite.StringFixed(3), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 7, l.PrixUnitHT.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 7, l.MontantTTC.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(col1+col2+col3, 7, "Total HT :", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, facture.TotalHT.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 8, "Total TTC :", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, facture.TotalTTC.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
