package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"stationops/internal/infra"
)

// NotifyWorker mails the manager when a reconciliation produced a critical
// écart. Best effort — the close itself already succeeded.
type NotifyWorker struct {
	mailer      *infra.Mailer
	alertEmail  string
	stationName string
}

func NewNotifyWorker(mailer *infra.Mailer, alertEmail, stationName string) *NotifyWorker {
	return &NotifyWorker{mailer: mailer, alertEmail: alertEmail, stationName: stationName}
}

type AlertePayload struct {
	Entite  string `json:"entite"`  // "session_caisse" | "releve_citerne"
	Libelle string `json:"libelle"` // drawer or tank name
	Montant string `json:"montant"`
	Niveau  string `json:"niveau"`
	Quart   string `json:"quart,omitempty"`
}

func (w *NotifyWorker) Process(_ context.Context, job Job) error {
	var p AlertePayload
	if err := json.Unmarshal(job.Payload, &p); err != nil {
		return fmt.Errorf("alerte: unmarshal payload: %w", err)
	}
	if w.mailer == nil {
		return nil
	}

	subject := fmt.Sprintf("[%s] Écart %s — %s", w.stationName, p.Niveau, p.Libelle)
	body := fmt.Sprintf(
		"Un écart %s a été constaté.\n\nÉlément : %s (%s)\nMontant : %s\nQuart : %s\n\nMerci de vérifier le rapprochement.",
		p.Niveau, p.Libelle, p.Entite, p.Montant, p.Quart)
	return w.mailer.Send(w.alertEmail, subject, body, "")
}
