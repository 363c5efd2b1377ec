package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"stationops/internal/infra"
	"stationops/internal/repository"

	"github.com/google/uuid"
)

// DocumentWorker generates PDFs asynchronously: the receiving record after a
// confirmed delivery, and the client invoice (optionally mailed out).
type DocumentWorker struct {
	receptionRepo repository.ReceptionRepository
	commandeRepo  repository.CommandeRepository
	factureRepo   repository.FactureRepository
	mailer        *infra.Mailer
	stationName   string
	storagePath   string
}

func NewDocumentWorker(
	receptionRepo repository.ReceptionRepository,
	commandeRepo repository.CommandeRepository,
	factureRepo repository.FactureRepository,
	mailer *infra.Mailer,
	stationName, storagePath string,
) *DocumentWorker {
	return &DocumentWorker{
		receptionRepo: receptionRepo,
		commandeRepo:  commandeRepo,
		factureRepo:   factureRepo,
		mailer:        mailer,
		stationName:   stationName,
		storagePath:   storagePath,
	}
}

type ReceptionPDFPayload struct {
	ReceptionID string `json:"reception_id"`
}

type FacturePDFPayload struct {
	FactureID   string  `json:"facture_id"`
	ClientEmail *string `json:"client_email,omitempty"`
}

func (w *DocumentWorker) Process(ctx context.Context, job Job) error {
	switch job.Type {
	case "reception_pdf":
		var p ReceptionPDFPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return fmt.Errorf("reception_pdf: unmarshal payload: %w", err)
		}
		return w.genererBonReception(ctx, p)
	case "facture_pdf":
		var p FacturePDFPayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			return fmt.Errorf("facture_pdf: unmarshal payload: %w", err)
		}
		return w.genererFacture(ctx, p)
	default:
		return fmt.Errorf("document worker: unknown job type %q", job.Type)
	}
}

func (w *DocumentWorker) genererBonReception(ctx context.Context, p ReceptionPDFPayload) error {
	id, err := uuid.Parse(p.ReceptionID)
	if err != nil {
		return fmt.Errorf("reception_pdf: invalid id: %w", err)
	}
	reception, err := w.receptionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	commande, err := w.commandeRepo.FindByID(ctx, reception.CommandeID)
	if err != nil {
		return err
	}

	path, err := infra.GenerateBonReceptionPDF(reception, commande, w.stationName, w.storagePath)
	if err != nil {
		return err
	}
	return w.receptionRepo.UpdatePDFPath(ctx, id, path)
}

func (w *DocumentWorker) genererFacture(ctx context.Context, p FacturePDFPayload) error {
	id, err := uuid.Parse(p.FactureID)
	if err != nil {
		return fmt.Errorf("facture_pdf: invalid id: %w", err)
	}
	facture, err := w.factureRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	path, err := infra.GenerateFacturePDF(facture, w.stationName, w.storagePath)
	if err != nil {
		return err
	}
	if err := w.factureRepo.UpdatePDFPath(ctx, id, path); err != nil {
		return err
	}

	if p.ClientEmail != nil && *p.ClientEmail != "" && w.mailer != nil {
		subject := fmt.Sprintf("Facture %s — %s", facture.Numero, w.stationName)
		body := fmt.Sprintf("Bonjour,\n\nVeuillez trouver ci-joint la facture %s.\n\nCordialement,\n%s",
			facture.Numero, w.stationName)
		return w.mailer.Send(*p.ClientEmail, subject, body, path)
	}
	return nil
}
