package jobqueue

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/docstore"
	"github.com/rentcourt/ftpr/internal/pkg/documents"
	"github.com/rentcourt/ftpr/internal/pkg/mail"
)

// processSendEmailJob delivers a rendered email
func processSendEmailJob(ctx context.Context, job *Job) error {
	payload, err := SendEmailJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid send_email payload: %w", err)
	}
	if payload.To == "" {
		return errors.New("send_email job has no recipient")
	}
	return mail.SendMail(payload.To, payload.Subject, payload.Body)
}

// processArchiveDocumentJob renders a per-case document and stores it in
// the archive. It is a no-op when archiving is disabled.
func processArchiveDocumentJob(ctx context.Context, job *Job) error {
	payload, err := ArchiveDocumentJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid archive_document payload: %w", err)
	}

	store := docstore.Get()
	if store == nil {
		log.Debugf("[JobQueue] Archive disabled, skipping %s for case %s", payload.DocType, payload.CaseID)
		return nil
	}

	tmpl, err := documents.Lookup(payload.DocType)
	if err != nil {
		return err
	}

	repos := repository.GetGlobalRepositories()
	body, err := renderCaseDocument(repos, tmpl, payload.CaseID)
	if err != nil {
		return err
	}
	return store.Put(ctx, docstore.ObjectKey(payload.CaseID, tmpl.Key), body, "application/pdf")
}

func renderCaseDocument(repos *repository.Repositories, tmpl documents.Template, caseID string) ([]byte, error) {
	c, err := repos.LegalCase.GetByID(repository.AdminScope(), caseID)
	if err != nil {
		return nil, fmt.Errorf("load case %s: %w", caseID, err)
	}
	landlord, err := repos.Profile.GetByID(c.LandlordID)
	if err != nil {
		return nil, fmt.Errorf("load landlord %s: %w", c.LandlordID, err)
	}
	return documents.RenderCase(tmpl, c, landlord)
}
